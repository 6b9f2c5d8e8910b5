// Command ramdisk builds a memory backed device, drives a random workload
// through it from several goroutines and dumps the resulting activity log.
package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"sync"

	"github.com/zeebo/ramdisk"
	"github.com/zeebo/ramdisk/digest"
	"github.com/zeebo/ramdisk/internal/workload"
	"github.com/zeebo/ramdisk/store"
)

func ferr(f string, s ...interface{}) {
	fmt.Fprintf(os.Stderr, f, s...)
}

func main() {
	var (
		size      = flag.Uint64("size", ramdisk.DefaultCapacity, "device capacity in bytes")
		debug     = flag.Bool("debug", false, "log every serviced request to stderr")
		logSize   = flag.Int("log-size", 100, "number of events kept in the activity log")
		ops       = flag.Int("ops", 1000, "number of random operations to issue")
		workers   = flag.Int("workers", 4, "number of concurrent producers")
		seed      = flag.Uint64("seed", 1, "workload seed")
		maxBytes  = flag.Uint64("max-bytes", 1024, "largest single access in bytes")
		digestArg = flag.String("digest", "xxhash", "digest of the final contents: xxhash or highway")
		keyArg    = flag.String("digest-key", "", "hex encoded 32 byte key for the highway digest")
	)
	flag.Parse()

	if err := run(config{
		size:     *size,
		debug:    *debug,
		logSize:  *logSize,
		ops:      *ops,
		workers:  *workers,
		seed:     *seed,
		maxBytes: *maxBytes,
		digest:   *digestArg,
		key:      *keyArg,
	}); err != nil {
		ferr("%+v\n", err)
		os.Exit(1)
	}
}

type config struct {
	size     uint64
	debug    bool
	logSize  int
	ops      int
	workers  int
	seed     uint64
	maxBytes uint64
	digest   string
	key      string
}

func run(cfg config) error {
	kind, err := digest.ParseKind(cfg.digest)
	if err != nil {
		return err
	}
	key := make([]byte, digest.KeySize)
	if cfg.key != "" {
		key, err = hex.DecodeString(cfg.key)
		if err != nil {
			return digest.Error.Wrap(err)
		}
	}
	if cfg.workers < 1 {
		cfg.workers = 1
	}

	dev, err := ramdisk.New(ramdisk.Options{
		Capacity: cfg.size,
		LogSize:  cfg.logSize,
		Debug:    cfg.debug,
	})
	if err != nil {
		return err
	}
	defer dev.Close()

	if err := drive(dev, cfg); err != nil {
		return err
	}

	if _, err := dev.Pager().WriteTo(os.Stdout); err != nil {
		return err
	}

	stats := dev.Stats()
	sum, err := dev.Digest(kind, key, 0, dev.Capacity())
	if err != nil {
		return err
	}
	ferr("serviced=%d rejected=%d mean=%v sectors=%d %s=%016x\n",
		stats.Serviced, stats.Rejected, stats.MeanService, dev.Sectors(), kind, sum)

	return dev.Close()
}

// drive issues cfg.ops random accesses split across cfg.workers goroutines.
// Accesses start on a sector boundary, as the block layer would issue
// them, and keep their generated length.
func drive(dev *ramdisk.Device, cfg config) error {
	ctx := context.Background()

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		first error
	)
	for w := 0; w < cfg.workers; w++ {
		n := cfg.ops / cfg.workers
		if w < cfg.ops%cfg.workers {
			n++
		}

		wg.Add(1)
		go func(w, n int) {
			defer wg.Done()

			gen := workload.New(cfg.seed+uint64(w), dev.Capacity(), cfg.maxBytes)
			buf := make([]byte, cfg.maxBytes)

			for i := 0; i < n; i++ {
				op := gen.Next()
				sector := op.Offset / store.SectorSize
				data := buf[:op.Length]

				var err error
				if op.Write {
					gen.Fill(data)
					err = dev.WriteSectors(ctx, sector, data)
				} else {
					err = dev.ReadSectors(ctx, sector, data)
				}

				// rounding down to the sector can only move the access
				// earlier, so every generated op fits.
				if err != nil {
					mu.Lock()
					if first == nil {
						first = err
					}
					mu.Unlock()
					return
				}
			}
		}(w, n)
	}
	wg.Wait()

	return first
}
