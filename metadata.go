// Copyright (C) 2020 Michael J. Fromberger. All Rights Reserved.

package compaqt

import (
	"bytes"
	"math/bits"
)

// byteWidth returns the number of bytes needed to hold v in an unsigned
// little-endian field, i.e. ceil(bitlen(v)/8), with a floor of 1.
func byteWidth(v uint64) int {
	n := bits.Len64(v)
	if n == 0 {
		return 1
	}
	return (n + 7) / 8
}

// putUintLE writes v into buf using exactly width little-endian bytes.
// width must be large enough to hold v (1..8).
func putUintLE(buf *bytes.Buffer, v uint64, width int) {
	var tmp [8]byte
	for i := 0; i < width; i++ {
		tmp[i] = byte(v >> (8 * i))
	}
	buf.Write(tmp[:width])
}

func readUintLE(data []byte) uint64 {
	var v uint64
	for i, b := range data {
		v |= uint64(b) << (8 * i)
	}
	return v
}

// writeMetadata packs tag (must fit in the low 3 bits) and length into the
// mainline metadata encoding: a single byte for length < 16, two bytes for
// length < 2048, or a byte plus a 1..8 byte little-endian length field
// otherwise.
func writeMetadata(buf *bytes.Buffer, tag byte, length uint64) {
	switch {
	case length < 16:
		buf.WriteByte(tag | byte(length<<4))
	case length < 2048:
		buf.WriteByte(tag | 0b01000 | byte((length&0x7)<<5))
		buf.WriteByte(byte((length >> 3) & 0xFF))
	default:
		width := byteWidth(length)
		buf.WriteByte(tag | 0b11000 | byte((width-1)<<5))
		putUintLE(buf, length, width)
	}
}

// writeStreamTopHeader emits the fixed 9-byte stream-top header for tag
// (sequence or mapping) with the given initial item count, always using
// the long form with width pinned to 8 bytes so later in-place rewrites
// never need to shift the payload.
func writeStreamTopHeader(buf *bytes.Buffer, tag byte, count uint64) {
	buf.WriteByte(tag | streamTopMarker)
	putUintLE(buf, count, 8)
}

// readMetadata reads a length-prefixed metadata header starting at the
// cursor's current byte (which also carries the tag in its low 3 bits) and
// advances the cursor past it.
func readMetadata(c *cursor) (uint64, error) {
	if err := c.ensure(1); err != nil {
		return 0, err
	}
	b := c.buf[c.off]
	mode := b & metaModeMask

	switch mode {
	case 0b00000, 0b10000:
		c.off++
		length := uint64(b >> 4)
		if err := c.ensure(int(length)); err != nil {
			return 0, err
		}
		return length, nil
	case 0b01000:
		if err := c.ensure(2); err != nil {
			return 0, err
		}
		length := uint64(b>>5) | uint64(c.buf[c.off+1])<<3
		c.off += 2
		if err := c.ensure(int(length)); err != nil {
			return 0, err
		}
		return length, nil
	default: // 0b11000, long form
		c.off++
		width := int(b>>5) + 1
		data, err := c.readN(width)
		if err != nil {
			return 0, err
		}
		length := readUintLE(data)
		if err := c.ensure(int(length)); err != nil {
			return 0, err
		}
		return length, nil
	}
}
