// Copyright (C) 2020 Michael J. Fromberger. All Rights Reserved.

package compaqt

import (
	"bytes"
	"math/big"
)

// writeValue dispatches v to the matching scalar codec or container
// recursion by its dynamic Go type, falling through to wt (which may be
// nil) for any type with no built-in representation.
func writeValue(buf *bytes.Buffer, v any, wt *WriteTable) error {
	switch t := v.(type) {
	case nil:
		writeNullItem(buf)
		return nil
	case bool:
		writeBoolItem(buf, t)
		return nil
	case []byte:
		writeBytesItem(buf, t)
		return nil
	case string:
		writeStringItem(buf, t)
		return nil
	case float64:
		writeFloatItem(buf, t)
		return nil
	case float32:
		writeFloatItem(buf, float64(t))
		return nil
	case *big.Int:
		if t == nil {
			writeNullItem(buf)
			return nil
		}
		writeIntegerItem(buf, t)
		return nil
	case big.Int:
		writeIntegerItem(buf, &t)
		return nil
	case Sequence:
		return writeSequence(buf, t, wt)
	case []any:
		return writeSequence(buf, Sequence(t), wt)
	case Mapping:
		return writeMapping(buf, t, wt)
	case map[string]any:
		return writeMapping(buf, mappingFromStringMap(t), wt)
	case map[any]any:
		return writeMapping(buf, mappingFromAnyMap(t), wt)
	}

	if bi, ok := nativeIntToBigInt(v); ok {
		writeIntegerItem(buf, bi)
		return nil
	}

	return wt.encodeValue(buf, v)
}

func mappingFromStringMap(m map[string]any) Mapping {
	out := make(Mapping, 0, len(m))
	for k, v := range m {
		out = append(out, Pair{Key: k, Value: v})
	}
	return out
}

func mappingFromAnyMap(m map[any]any) Mapping {
	out := make(Mapping, 0, len(m))
	for k, v := range m {
		out = append(out, Pair{Key: k, Value: v})
	}
	return out
}

func writeSequence(buf *bytes.Buffer, seq Sequence, wt *WriteTable) error {
	writeMetadata(buf, tagSequence, uint64(len(seq)))
	return writeSequenceItems(buf, seq, wt)
}

func writeMapping(buf *bytes.Buffer, m Mapping, wt *WriteTable) error {
	writeMetadata(buf, tagMapping, uint64(len(m)))
	return writeMappingItems(buf, m, wt)
}

// maxPreallocItems bounds how large a container's backing slice may be
// preallocated from an untrusted declared length; the slice still grows
// past this via append for legitimately large containers.
const maxPreallocItems = 4096

// decodeValue reads one item at the cursor and dispatches on its tag byte.
func decodeValue(c *cursor, rt *ReadTable) (any, error) {
	offset := c.off
	b, err := c.peekByte()
	if err != nil {
		return nil, err
	}
	switch b & 0b111 {
	case tagSequence:
		return decodeSequence(c, rt)
	case tagMapping:
		return decodeMapping(c, rt)
	case tagBytes:
		return decodeBytesItem(c)
	case tagString:
		return decodeStringItem(c)
	case tagInteger:
		return decodeIntegerItem(c)
	case tagGroup:
		return decodeGroupItem(c)
	case tagExtension:
		return decodeExtensionItem(c, rt)
	default:
		return nil, newDecodingError(offset, "unknown type tag %d", b&0b111)
	}
}

func decodeSequence(c *cursor, rt *ReadTable) (Sequence, error) {
	n, err := readMetadata(c)
	if err != nil {
		return nil, err
	}
	prealloc := int(n)
	if prealloc > maxPreallocItems {
		prealloc = maxPreallocItems
	}
	out := make(Sequence, 0, prealloc)
	for i := uint64(0); i < n; i++ {
		item, err := decodeValue(c, rt)
		if err != nil {
			return nil, wrapDecodingError(err, c.off, "decoding sequence index %d", i)
		}
		out = append(out, item)
	}
	return out, nil
}

func decodeMapping(c *cursor, rt *ReadTable) (Mapping, error) {
	n, err := readMetadata(c)
	if err != nil {
		return nil, err
	}
	prealloc := int(n)
	if prealloc > maxPreallocItems {
		prealloc = maxPreallocItems
	}
	out := make(Mapping, 0, prealloc)
	for i := uint64(0); i < n; i++ {
		key, err := decodeValue(c, rt)
		if err != nil {
			return nil, wrapDecodingError(err, c.off, "decoding mapping key %d", i)
		}
		val, err := decodeValue(c, rt)
		if err != nil {
			return nil, wrapDecodingError(err, c.off, "decoding mapping value %d", i)
		}
		out = append(out, Pair{Key: key, Value: val})
	}
	return out, nil
}
