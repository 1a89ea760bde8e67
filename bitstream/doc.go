// Package bitstream provides packed bit I/O over 64-bit big-endian words.
//
// Writer accumulates bits most-significant first in a 64-bit word. When a
// value does not fit in the remaining bits the full word is emitted as 8
// bytes and the rest of the value starts the next word. Flush emits a
// partial word padded with zeros in its low bits; there is no padding
// between consecutive values.
//
//	w := bitstream.NewWriter(0)
//	_ = w.Write(5, 3)
//	_ = w.Write(0x1FF, 12)
//	data := w.Bytes()
//
//	r := bitstream.NewReader(data)
//	a, _ := r.Read(3)  // 5
//	b, _ := r.Read(12) // 0x1FF
//
// Widths from 1 to 64 bits are supported on every call. The encoded size
// is always a multiple of 8 bytes.
package bitstream
