// Copyright (C) 2020 Michael J. Fromberger. All Rights Reserved.

package compaqt

import (
	"bytes"
	"os"
)

// Encode serializes v to the Compaqt wire format. By default it returns the
// encoded bytes; ToFile(name) instead writes them to name and returns nil.
//
// If v is a Sequence, []any, Mapping, map[string]any, or map[any]any and
// StreamCompatible() is given, the fixed 9-byte stream-top header is
// written before the payload so the result is valid input to
// NewStreamDecoder. StreamCompatible on any other value type is a
// UsageError, since only a top-level sequence or mapping can be streamed.
func Encode(v any, opts ...EncodeOption) ([]byte, error) {
	var cfg encodeConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	buf := new(bytes.Buffer)
	if cfg.streamCompatible {
		if err := encodeStreamTop(buf, v, cfg.writeTable); err != nil {
			return nil, err
		}
	} else if err := writeValue(buf, v, cfg.writeTable); err != nil {
		return nil, err
	}

	if cfg.fileName != "" {
		if err := os.WriteFile(cfg.fileName, buf.Bytes(), 0o644); err != nil {
			return nil, wrapEncodingError(err, "writing %s", cfg.fileName)
		}
		return nil, nil
	}
	return buf.Bytes(), nil
}

func encodeStreamTop(buf *bytes.Buffer, v any, wt *WriteTable) error {
	if seq, ok := toSequence(v); ok {
		writeStreamTopHeader(buf, tagSequence, uint64(len(seq)))
		return writeSequenceItems(buf, seq, wt)
	}
	if m, ok := toMapping(v); ok {
		writeStreamTopHeader(buf, tagMapping, uint64(len(m)))
		return writeMappingItems(buf, m, wt)
	}
	return newUsageError("stream_compatible requires a top-level sequence or mapping value, got %T", v)
}

// writeSequenceItems/writeMappingItems encode only a container's elements,
// without its own length header — used once the stream-top (or
// stream-encoder) header has already been written separately.
func writeSequenceItems(buf *bytes.Buffer, seq Sequence, wt *WriteTable) error {
	for i, item := range seq {
		if err := writeValue(buf, item, wt); err != nil {
			return wrapEncodingError(err, "encoding sequence index %d", i)
		}
	}
	return nil
}

func writeMappingItems(buf *bytes.Buffer, m Mapping, wt *WriteTable) error {
	for i, p := range m {
		if err := writeValue(buf, p.Key, wt); err != nil {
			return wrapEncodingError(err, "encoding mapping key %d", i)
		}
		if err := writeValue(buf, p.Value, wt); err != nil {
			return wrapEncodingError(err, "encoding mapping value %d", i)
		}
	}
	return nil
}

// Decode reads a single root item from the source supplied via FromBytes
// or FromFile (exactly one of the two must be given) and returns it.
func Decode(opts ...DecodeOption) (any, error) {
	var cfg decodeConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	switch {
	case cfg.haveBuf && cfg.fileName != "":
		return nil, newUsageError("expected either FromBytes or FromFile, got both")
	case cfg.haveBuf:
		c := newBufferCursor(cfg.encoded, bufferEnsure)
		return decodeValue(c, cfg.readTable)
	case cfg.fileName != "":
		data, err := os.ReadFile(cfg.fileName)
		if err != nil {
			return nil, wrapDecodingError(err, 0, "reading %s", cfg.fileName)
		}
		c := newBufferCursor(data, bufferEnsure)
		return decodeValue(c, cfg.readTable)
	default:
		return nil, newUsageError("expected either FromBytes or FromFile, got neither")
	}
}
