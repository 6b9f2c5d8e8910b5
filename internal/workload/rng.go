package workload

import "math/bits"

const mul = 6364136223846793005

// rng is a pcg32 generator. The zero value is invalid.
type rng struct {
	state uint64
	inc   uint64
}

// newRNG seeds a generator on the given stream.
func newRNG(seed, stream uint64) rng {
	// equivalent to starting from a zero state, stepping once, adding the
	// seed and stepping again.
	inc := stream<<1 | 1
	return rng{
		state: (inc+seed)*mul + inc,
		inc:   inc,
	}
}

// uint32 returns a random uint32.
func (r *rng) uint32() uint32 {
	old := r.state
	r.state = old*mul + r.inc

	// a left rotate instead of the reference right rotate. any rotate is
	// fine for the output permutation and the compiler emits this one.
	xorshift := uint32(((old >> 18) ^ old) >> 27)
	return bits.RotateLeft32(xorshift, int(old>>59))
}

// uint64n returns a value uniformly in [0, n). n must be non-zero.
func (r *rng) uint64n(n uint64) uint64 {
	if n <= 1<<32 {
		return (uint64(r.uint32()) * n) >> 32
	}
	v := uint64(r.uint32())<<32 | uint64(r.uint32())
	return v % n
}
