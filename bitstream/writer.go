package bitstream

import (
	"encoding/binary"

	"github.com/wippyai/gameres/errors"
	"golang.org/x/exp/slices"
)

// Writer packs values of arbitrary bit width most-significant-bit first
// into 64-bit big-endian words.
type Writer struct {
	out []byte
	acc uint64 // pending bits, left-aligned
	n   uint   // number of pending bits in acc
}

// NewWriter returns a Writer with room for sizeHint bits.
func NewWriter(sizeHint int) *Writer {
	w := &Writer{}
	if sizeHint > 0 {
		w.out = slices.Grow(w.out, (sizeHint+63)/64*8)
	}
	return w
}

// Write appends the low width bits of v. width must be in [1, 64].
func (w *Writer) Write(v uint64, width uint) error {
	if width == 0 || width > 64 {
		return errors.New(errors.PhaseBitstream, errors.KindInvalidInput).
			Detail("bit width %d outside [1, 64]", width).
			Build()
	}
	if width < 64 {
		v &= 1<<width - 1
	}

	free := 64 - w.n
	if width <= free {
		w.acc |= v << (free - width)
		w.n += width
		return nil
	}

	rest := width - free
	w.acc |= v >> rest
	w.emit()
	w.acc = v << (64 - rest)
	w.n = rest
	return nil
}

// WriteBool appends a single bit.
func (w *Writer) WriteBool(b bool) error {
	var v uint64
	if b {
		v = 1
	}
	return w.Write(v, 1)
}

// Flush emits any partially filled word, zero-padded in the low bits.
func (w *Writer) Flush() {
	if w.n > 0 {
		w.emit()
	}
}

// Bytes flushes and returns the encoded words.
func (w *Writer) Bytes() []byte {
	w.Flush()
	return w.out
}

// Len returns the number of bits written so far.
func (w *Writer) Len() int {
	return len(w.out)*8 + int(w.n)
}

func (w *Writer) emit() {
	w.out = binary.BigEndian.AppendUint64(w.out, w.acc)
	w.acc = 0
	w.n = 0
}
