package ramdisk

// Driver is the set of callbacks a host block layer invokes on a device.
type Driver interface {
	Open() error
	Release() error
	ServeRequest(req *Request)
	MediaChanged() bool
	Revalidate() error
	ControlCode(cmd uint32, arg uint64) error
}

// Open does nothing.
func (d *Device) Open() error { return nil }

// Release does nothing.
func (d *Device) Release() error { return nil }

// ServeRequest hands req to the engine. It is Submit under the name the
// host layer expects.
func (d *Device) ServeRequest(req *Request) { d.Submit(req) }

// MediaChanged always reports false: the memory never changes underneath
// the device.
func (d *Device) MediaChanged() bool { return false }

// Revalidate does nothing.
func (d *Device) Revalidate() error { return nil }

// ControlCode accepts and ignores every command.
func (d *Device) ControlCode(cmd uint32, arg uint64) error { return nil }
