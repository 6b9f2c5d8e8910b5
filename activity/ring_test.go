package activity

import (
	"testing"

	"github.com/zeebo/assert"
)

func sectors(evs []Event) []uint64 {
	out := make([]uint64, 0, len(evs))
	for _, ev := range evs {
		out = append(out, ev.StartSector)
	}
	return out
}

func TestRing(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		r := newRing(3)
		assert.Equal(t, r.len(), uint32(0))
		_, ok := r.at(0)
		assert.That(t, !ok)
		assert.Equal(t, len(r.appendTo(nil)), 0)
	})

	t.Run("Ordering", func(t *testing.T) {
		r := newRing(5)
		for i := uint64(0); i < 4; i++ {
			r.append(Event{StartSector: i})
		}
		assert.Equal(t, r.len(), uint32(4))
		assert.DeepEqual(t, sectors(r.appendTo(nil)), []uint64{0, 1, 2, 3})

		for i := uint32(0); i < 4; i++ {
			ev, ok := r.at(i)
			assert.That(t, ok)
			assert.Equal(t, ev.StartSector, uint64(i))
		}
	})

	t.Run("Overwrite", func(t *testing.T) {
		r := newRing(3)
		for i := uint64(0); i < 3; i++ {
			r.append(Event{StartSector: i})
		}
		assert.Equal(t, r.cursor, slot(0))

		r.append(Event{StartSector: 3})
		assert.Equal(t, r.len(), uint32(3))
		assert.Equal(t, r.cursor, slot(1))
		assert.DeepEqual(t, sectors(r.appendTo(nil)), []uint64{1, 2, 3})
	})

	t.Run("Bounding", func(t *testing.T) {
		r := newRing(7)
		for i := uint64(0); i < 100; i++ {
			r.append(Event{StartSector: i})

			want := []uint64{}
			for j := uint64(0); j <= i; j++ {
				if i-j < 7 {
					want = append(want, j)
				}
			}
			assert.DeepEqual(t, sectors(r.appendTo(nil)), want)
		}
	})

	t.Run("FixedStart", func(t *testing.T) {
		r := newRing(3)
		for i := uint64(0); i < 3; i++ {
			r.append(Event{StartSector: i})
		}
		start := r.oldest()
		r.append(Event{StartSector: 5})

		// slot 0 now holds 5, the rest are untouched.
		var got []uint64
		for i := uint32(0); ; i++ {
			ev, ok := r.from(start, i)
			if !ok {
				break
			}
			got = append(got, ev.StartSector)
		}
		assert.DeepEqual(t, got, []uint64{5, 1, 2})
	})

	t.Run("Single", func(t *testing.T) {
		r := newRing(1)
		r.append(Event{StartSector: 1})
		r.append(Event{StartSector: 2})
		assert.Equal(t, r.len(), uint32(1))
		ev, ok := r.at(0)
		assert.That(t, ok)
		assert.Equal(t, ev.StartSector, uint64(2))
	})
}

func BenchmarkRing(b *testing.B) {
	r := newRing(DefaultCapacity)
	ev := Event{Direction: Write, StartSector: 1, ByteCount: 512}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		r.append(ev)
	}
}
