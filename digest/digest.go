// Package digest fingerprints byte ranges of a device so that contents can
// be compared cheaply across runs.
package digest

import (
	"hash"

	"github.com/cespare/xxhash"
	"github.com/minio/highwayhash"
	"github.com/zeebo/errs"
)

// Error is the class that contains all the errors from this package.
var Error = errs.Class("digest")

// KeySize is the length of a highway hash key.
const KeySize = highwayhash.Size

// Kind selects a hash function.
type Kind uint8

const (
	// XXHash is unkeyed and the fastest choice.
	XXHash Kind = iota

	// Highway is keyed with a KeySize byte key.
	Highway
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case XXHash:
		return "xxhash"
	case Highway:
		return "highway"
	default:
		return "unknown"
	}
}

// ParseKind returns the kind named by s.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "xxhash", "":
		return XXHash, nil
	case "highway":
		return Highway, nil
	default:
		return 0, Error.New("unknown digest %q", s)
	}
}

// NewHasher returns a streaming hash of the given kind. The key is ignored
// for XXHash.
func NewHasher(kind Kind, key []byte) (hash.Hash64, error) {
	switch kind {
	case XXHash:
		return xxhash.New(), nil
	case Highway:
		if len(key) != KeySize {
			return nil, Error.New("highway key must be %d bytes, got %d", KeySize, len(key))
		}
		h, err := highwayhash.New64(key)
		if err != nil {
			return nil, Error.Wrap(err)
		}
		return h, nil
	default:
		return nil, Error.New("unknown digest kind %d", kind)
	}
}

// Sum returns the 64 bit digest of data.
func Sum(kind Kind, key, data []byte) (uint64, error) {
	switch kind {
	case XXHash:
		return xxhash.Sum64(data), nil
	case Highway:
		if len(key) != KeySize {
			return 0, Error.New("highway key must be %d bytes, got %d", KeySize, len(key))
		}
		return highwayhash.Sum64(data, key), nil
	default:
		return 0, Error.New("unknown digest kind %d", kind)
	}
}
