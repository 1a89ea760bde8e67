package codec

import (
	"encoding/binary"
	"math"

	"github.com/wippyai/gameres/resource"
)

// ByteOrder of every multi-byte value in a resource.
//
// Pointer slots follow this package's own convention: a non-null slot
// holds the target body offset plus one and zero is null. Files that
// store the bare offset decode one byte short.
var ByteOrder = binary.LittleEndian

// entrySize is the size of one reference section record:
// site (ptr), type tag (u32), [pad u32 on 64-bit], id (ptr).
func entrySize(w resource.Width) int {
	if w == resource.Width64 {
		return 24
	}
	return 12
}

// SectionSize returns the size of a reference section holding n entries.
func SectionSize(w resource.Width, n int) int {
	return w.Bytes() + n*entrySize(w)
}

func getWord(b []byte, w resource.Width) uint64 {
	if w == resource.Width64 {
		return ByteOrder.Uint64(b)
	}
	return uint64(ByteOrder.Uint32(b))
}

func putWord(b []byte, w resource.Width, v uint64) {
	if w == resource.Width64 {
		ByteOrder.PutUint64(b, v)
		return
	}
	ByteOrder.PutUint32(b, uint32(v))
}

func fitsWord(w resource.Width, v uint64) bool {
	return w == resource.Width64 || v <= math.MaxUint32
}

// A non-null pointer slot stores target offset + 1 so that a reference
// to offset 0 is distinguishable from null.
func slotValue(offset int64) uint64 {
	return uint64(offset) + 1
}

func slotOffset(raw uint64) int64 {
	return int64(raw - 1)
}

func alignTo(offset int64, align int) int64 {
	if align <= 1 {
		return offset
	}
	a := int64(align)
	return (offset + a - 1) / a * a
}
