package activity

import "strconv"

// Direction is the data direction of a serviced request. The numeric
// values are part of the text export format.
type Direction uint8

const (
	Read  Direction = 0
	Write Direction = 1
)

// String implements fmt.Stringer.
func (d Direction) String() string {
	switch d {
	case Read:
		return "read"
	case Write:
		return "write"
	default:
		return "Direction(" + strconv.Itoa(int(d)) + ")"
	}
}

// Event records one serviced request.
type Event struct {
	Direction   Direction
	StartSector uint64
	ByteCount   uint64
	Timestamp   uint64 // milliseconds on the device's monotonic clock
}

// FormatEvent returns the export line for ev, including the trailing
// newline.
func FormatEvent(ev Event) string {
	return string(appendEvent(nil, ev))
}

func appendEvent(buf []byte, ev Event) []byte {
	buf = strconv.AppendUint(buf, ev.Timestamp, 10)
	buf = append(buf, '\t')
	buf = strconv.AppendUint(buf, uint64(ev.Direction), 10)
	buf = append(buf, '\t')
	buf = strconv.AppendUint(buf, ev.StartSector, 10)
	buf = append(buf, '\t')
	buf = strconv.AppendUint(buf, ev.ByteCount, 10)
	return append(buf, '\n')
}
