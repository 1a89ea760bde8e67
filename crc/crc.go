// Package crc implements the 32-bit name hash used by the resource formats.
//
// The algorithm is a most-significant-bit-first table-driven CRC-32 with
// polynomial 0x04C11DB7, an initial value of 0xFFFFFFFF and a final XOR of
// 0xFFFFFFFF (the CRC-32/BZIP2 parameter set). The table is indexed by the
// top byte of the running value. Outputs are persisted in files as name
// tokens, so they must never change.
package crc

import (
	"encoding/binary"
	"fmt"
	"hash"
)

// Polynomial is the generator polynomial in normal (non-reflected) form.
const Polynomial = 0x04C11DB7

// Size of a checksum in bytes.
const Size = 4

var table = makeTable(Polynomial)

func makeTable(poly uint32) *[256]uint32 {
	t := new([256]uint32)
	for i := range t {
		c := uint32(i) << 24
		for j := 0; j < 8; j++ {
			if c&0x80000000 != 0 {
				c = c<<1 ^ poly
			} else {
				c <<= 1
			}
		}
		t[i] = c
	}
	return t
}

func update(crc uint32, p []byte) uint32 {
	for _, b := range p {
		crc = crc<<8 ^ table[byte(crc>>24)^b]
	}
	return crc
}

// Checksum returns the hash of data.
func Checksum(data []byte) uint32 {
	return ^update(^uint32(0), data)
}

// String returns the hash of the bytes of s.
func String(s string) uint32 {
	crc := ^uint32(0)
	for i := 0; i < len(s); i++ {
		crc = crc<<8 ^ table[byte(crc>>24)^s[i]]
	}
	return ^crc
}

// Token is a hashed name as stored in resource bodies.
type Token uint32

// Name hashes a name into a Token.
func Name(name string) Token {
	return Token(String(name))
}

func (t Token) String() string {
	return fmt.Sprintf("%08x", uint32(t))
}

type digest struct {
	crc uint32
}

// New returns a streaming hash.Hash32 computing the same value as Checksum.
func New() hash.Hash32 {
	d := &digest{}
	d.Reset()
	return d
}

func (d *digest) Size() int { return Size }

func (d *digest) BlockSize() int { return 1 }

func (d *digest) Reset() { d.crc = ^uint32(0) }

func (d *digest) Write(p []byte) (int, error) {
	d.crc = update(d.crc, p)
	return len(p), nil
}

func (d *digest) Sum32() uint32 { return ^d.crc }

func (d *digest) Sum(in []byte) []byte {
	return binary.BigEndian.AppendUint32(in, d.Sum32())
}
