// Copyright (C) 2020 Michael J. Fromberger. All Rights Reserved.

package compaqt

import (
	"bytes"
	"encoding/binary"
	"math"
	"math/big"
)

// --- bytes ---

func writeBytesItem(buf *bytes.Buffer, v []byte) {
	writeMetadata(buf, tagBytes, uint64(len(v)))
	buf.Write(v)
}

func decodeBytesItem(c *cursor) ([]byte, error) {
	length, err := readMetadata(c)
	if err != nil {
		return nil, err
	}
	data, err := c.readN(int(length))
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// --- string ---

func writeStringItem(buf *bytes.Buffer, v string) {
	writeMetadata(buf, tagString, uint64(len(v)))
	buf.WriteString(v)
}

func decodeStringItem(c *cursor) (string, error) {
	length, err := readMetadata(c)
	if err != nil {
		return "", err
	}
	data, err := c.readN(int(length))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// --- integer ---

// intWidth returns the number of little-endian payload bytes needed to
// represent v in two's complement form, per spec's (bit_length(v)+8)>>3
// formula, special-cased to 0 for the zero value (see DESIGN.md's Open
// Question decision on the zero-width integer).
func intWidth(v *big.Int) int {
	if v.Sign() == 0 {
		return 0
	}
	return (v.BitLen() + 8) >> 3
}

// putSignedLE writes v as width little-endian, two's-complement bytes.
func putSignedLE(v *big.Int, width int) []byte {
	out := make([]byte, width)
	if width == 0 {
		return out
	}
	src := v
	if v.Sign() < 0 {
		mod := new(big.Int).Lsh(big.NewInt(1), uint(width*8))
		src = new(big.Int).Add(mod, v)
	}
	be := src.Bytes() // big-endian magnitude, no leading zero padding
	for i, b := range be {
		out[len(be)-1-i] = b
	}
	return out
}

// readSignedLE interprets data as width-byte little-endian, two's-complement.
func readSignedLE(data []byte) *big.Int {
	if len(data) == 0 {
		return big.NewInt(0)
	}
	be := make([]byte, len(data))
	for i, b := range data {
		be[len(data)-1-i] = b
	}
	v := new(big.Int).SetBytes(be)
	if be[0]&0x80 != 0 {
		mod := new(big.Int).Lsh(big.NewInt(1), uint(len(data)*8))
		v.Sub(v, mod)
	}
	return v
}

func writeIntegerItem(buf *bytes.Buffer, v *big.Int) {
	width := intWidth(v)
	writeMetadata(buf, tagInteger, uint64(width))
	buf.Write(putSignedLE(v, width))
}

// decodeIntegerItem decodes an integer item, returning an int64 when the
// value fits and a *big.Int otherwise.
func decodeIntegerItem(c *cursor) (any, error) {
	length, err := readMetadata(c)
	if err != nil {
		return nil, err
	}
	data, err := c.readN(int(length))
	if err != nil {
		return nil, err
	}
	v := readSignedLE(data)
	if v.IsInt64() {
		return v.Int64(), nil
	}
	return v, nil
}

// nativeIntToBigInt converts one of the built-in Go integer kinds to a
// *big.Int. It reports false for any other type.
func nativeIntToBigInt(v any) (*big.Int, bool) {
	switch t := v.(type) {
	case int:
		return big.NewInt(int64(t)), true
	case int8:
		return big.NewInt(int64(t)), true
	case int16:
		return big.NewInt(int64(t)), true
	case int32:
		return big.NewInt(int64(t)), true
	case int64:
		return big.NewInt(t), true
	case uint:
		return new(big.Int).SetUint64(uint64(t)), true
	case uint8:
		return big.NewInt(int64(t)), true
	case uint16:
		return big.NewInt(int64(t)), true
	case uint32:
		return big.NewInt(int64(t)), true
	case uint64:
		return new(big.Int).SetUint64(t), true
	}
	return nil, false
}

// --- float ---

func writeFloatItem(buf *bytes.Buffer, v float64) {
	buf.WriteByte(subFloat)
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], math.Float64bits(v))
	buf.Write(tmp[:])
}

func decodeFloatItem(c *cursor) (float64, error) {
	data, err := c.readN(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(data)), nil
}

// --- bool / null ---

func writeBoolItem(buf *bytes.Buffer, v bool) {
	if v {
		buf.WriteByte(subBoolTrue)
	} else {
		buf.WriteByte(subBoolFalse)
	}
}

func writeNullItem(buf *bytes.Buffer) {
	buf.WriteByte(subNull)
}

// decodeGroupItem reads a one-byte group sub-tag (and, for a float, the
// following 8-byte payload) and returns the corresponding Go value.
func decodeGroupItem(c *cursor) (any, error) {
	offset := c.off
	b, err := c.readByte()
	if err != nil {
		return nil, err
	}
	switch b {
	case subBoolFalse:
		return false, nil
	case subBoolTrue:
		return true, nil
	case subNull:
		return nil, nil
	case subFloat:
		return decodeFloatItem(c)
	default:
		return nil, newDecodingError(offset, "unknown group sub-tag 0x%02x", b)
	}
}
