package bitstream

import (
	"encoding/binary"

	"github.com/wippyai/gameres/errors"
)

// Reader extracts values written by Writer. It consumes the input one
// 64-bit big-endian word at a time.
type Reader struct {
	buf   []byte
	pos   int    // next word to load
	win   uint64 // unread bits, left-aligned
	avail uint   // unread bits in win
}

// NewReader returns a Reader over buf. A trailing partial word is read as
// if zero-padded.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Read returns the next width bits. width must be in [1, 64]. A read may
// straddle two words.
func (r *Reader) Read(width uint) (uint64, error) {
	if width == 0 || width > 64 {
		return 0, errors.New(errors.PhaseBitstream, errors.KindInvalidInput).
			Detail("bit width %d outside [1, 64]", width).
			Build()
	}

	if width <= r.avail {
		return r.take(width), nil
	}

	need := width - r.avail
	hi := r.take(r.avail)
	if err := r.refill(); err != nil {
		return 0, err
	}
	lo := r.take(need)
	return hi<<need | lo, nil
}

// ReadBool reads a single bit.
func (r *Reader) ReadBool() (bool, error) {
	v, err := r.Read(1)
	return v == 1, err
}

// Remaining returns the number of unread bits, including padding.
func (r *Reader) Remaining() int {
	return int(r.avail) + (len(r.buf)-r.pos)*8
}

func (r *Reader) take(width uint) uint64 {
	if width == 0 {
		return 0
	}
	v := r.win >> (64 - width)
	r.win <<= width
	r.avail -= width
	return v
}

func (r *Reader) refill() error {
	if r.pos >= len(r.buf) {
		return errors.OutOfBounds(errors.PhaseBitstream, nil, int64(r.pos), 8, int64(len(r.buf)))
	}
	var word [8]byte
	n := copy(word[:], r.buf[r.pos:])
	r.pos += n
	r.win = binary.BigEndian.Uint64(word[:])
	r.avail = 64
	return nil
}
