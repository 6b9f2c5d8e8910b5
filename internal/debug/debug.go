//go:build !release

// Package debug holds invariant checks that are compiled out of release
// builds.
package debug

// Enabled reports if assertions are being evaluated.
const Enabled = true

// Assert panics with info if fn returns false.
func Assert(info string, fn func() bool) {
	if !fn() {
		panic("assertion failed: " + info)
	}
}
