package ramdisk

import (
	"github.com/zeebo/errs"
	"github.com/zeebo/ramdisk/store"
)

var (
	// Error is the class that contains all the errors from this package.
	Error = errs.Class("ramdisk")

	// UnsupportedRequest is returned for requests that are not plain
	// storage reads or writes.
	UnsupportedRequest = errs.Class("unsupported request")

	// OutOfRange is returned for requests that do not fit on the device.
	OutOfRange = &store.OutOfRange

	// AllocationFailed is returned by New when the backing store cannot be
	// obtained.
	AllocationFailed = &store.AllocationFailed

	// Closed is returned for requests issued after Close.
	Closed = &store.Closed
)
