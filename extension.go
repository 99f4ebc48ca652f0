// Copyright (C) 2020 Michael J. Fromberger. All Rights Reserved.

package compaqt

import (
	"bytes"
	"reflect"
)

const maxExtensionIndex = 31

// ExtensionEncoder serializes a registered custom-type value into raw
// bytes for the extension framing.
type ExtensionEncoder func(v any) ([]byte, error)

// ExtensionDecoder reconstructs a value of a registered custom type from
// its raw extension payload.
type ExtensionDecoder func(payload []byte) (any, error)

type writeEntry struct {
	index  uint8
	encode ExtensionEncoder
}

// WriteTable is the encode-side half of the 32-slot extension registry: a
// mapping from a host Go type to the extension index and serializer used
// to encode values of that type.
type WriteTable struct {
	byType map[reflect.Type]writeEntry
	used   [32]bool
}

// NewWriteTable returns an empty write-side extension table.
func NewWriteTable() *WriteTable {
	return &WriteTable{byType: make(map[reflect.Type]writeEntry)}
}

// Register binds index (0..31) to the dynamic type of sample, using encode
// to serialize values of that exact type. It is a UsageError to register
// an out-of-range index, reuse an index, or register the same type twice.
func (t *WriteTable) Register(index int, sample any, encode ExtensionEncoder) error {
	if index < 0 || index > maxExtensionIndex {
		return newUsageError("extension index out of range: got %d, max is %d", index, maxExtensionIndex)
	}
	if t.used[index] {
		return newUsageError("extension index %d is already registered", index)
	}
	typ := reflect.TypeOf(sample)
	if _, ok := t.byType[typ]; ok {
		return newUsageError("type %v is already registered under a different index", typ)
	}
	t.used[index] = true
	t.byType[typ] = writeEntry{index: uint8(index), encode: encode}
	return nil
}

// encodeValue looks up v's dynamic type and, if registered, writes its
// extension framing (tag+index byte, width byte, length bytes, payload).
func (t *WriteTable) encodeValue(buf *bytes.Buffer, v any) error {
	if t == nil {
		return newEncodingError("value of type %T has no built-in codec and no extension table was supplied", v)
	}
	entry, ok := t.byType[reflect.TypeOf(v)]
	if !ok {
		return newEncodingError("value of type %T has no built-in codec and no matching extension entry", v)
	}
	payload, err := entry.encode(v)
	if err != nil {
		return wrapEncodingError(err, "extension %d serializer failed", entry.index)
	}
	buf.WriteByte(tagExtension | (entry.index << 3))
	writeExtensionPayload(buf, payload)
	return nil
}

// writeExtensionPayload writes the extension framing's width byte, length
// bytes, and payload. This framing is distinct from the mainline metadata
// codec: it is always the "width byte + width length bytes" form, never
// the short inline form, and an empty payload writes only a zero width
// byte with no length bytes or payload (see DESIGN.md's Open Question
// decision on the dead msg.append(0) branch in the original source).
func writeExtensionPayload(buf *bytes.Buffer, payload []byte) {
	if len(payload) == 0 {
		buf.WriteByte(0)
		return
	}
	width := byteWidth(uint64(len(payload)))
	buf.WriteByte(byte(width))
	putUintLE(buf, uint64(len(payload)), width)
	buf.Write(payload)
}

// ReadTable is the decode-side half of the extension registry: 32 slots,
// each optionally holding a deserializer.
type ReadTable struct {
	decoders [32]ExtensionDecoder
}

// NewReadTable returns an empty read-side extension table.
func NewReadTable() *ReadTable {
	return &ReadTable{}
}

// Register binds index (0..31) to decode.
func (t *ReadTable) Register(index int, decode ExtensionDecoder) error {
	if index < 0 || index > maxExtensionIndex {
		return newUsageError("extension index out of range: got %d, max is %d", index, maxExtensionIndex)
	}
	t.decoders[index] = decode
	return nil
}

// decodeExtensionItem reads an extension item's framing and invokes the
// registered decoder for its index.
func decodeExtensionItem(c *cursor, t *ReadTable) (any, error) {
	offset := c.off
	first, err := c.readByte()
	if err != nil {
		return nil, err
	}
	index := int(first >> 3)

	widthByte, err := c.readByte()
	if err != nil {
		return nil, err
	}
	length, err := readExtensionLength(c, int(widthByte))
	if err != nil {
		return nil, err
	}
	payload, err := c.readN(int(length))
	if err != nil {
		return nil, err
	}

	if t == nil {
		return nil, newDecodingError(offset, "received an extension item but no read table was supplied")
	}
	decode := t.decoders[index]
	if decode == nil {
		return nil, newDecodingError(offset, "no extension decoder registered for index %d", index)
	}
	out := make([]byte, len(payload))
	copy(out, payload)
	value, err := decode(out)
	if err != nil {
		return nil, wrapDecodingError(err, offset, "extension %d decoder failed", index)
	}
	return value, nil
}

func readExtensionLength(c *cursor, width int) (uint64, error) {
	if width == 0 {
		return 0, nil
	}
	data, err := c.readN(width)
	if err != nil {
		return 0, err
	}
	return readUintLE(data), nil
}

// skipExtensionItem advances the cursor past an extension item's framing
// and payload without decoding it, for the structural validator.
func skipExtensionItem(c *cursor) error {
	offset := c.off
	first, err := c.readByte()
	if err != nil {
		return err
	}
	index := int(first >> 3)
	if index > maxExtensionIndex {
		return newValidationError(offset, "extension index %d out of range", index)
	}
	widthByte, err := c.readByte()
	if err != nil {
		return err
	}
	length, err := readExtensionLength(c, int(widthByte))
	if err != nil {
		return err
	}
	if _, err := c.readN(int(length)); err != nil {
		return err
	}
	return nil
}
