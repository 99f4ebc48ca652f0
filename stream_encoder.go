// Copyright (C) 2020 Michael J. Fromberger. All Rights Reserved.

package compaqt

import (
	"bytes"
	"os"
)

// StreamValueType selects the top-level container type a StreamEncoder
// declares, and is what StreamDecoder.ValueType reports.
type StreamValueType int

const (
	// StreamSequence declares the stream's top-level value as a sequence.
	StreamSequence StreamValueType = iota
	// StreamMapping declares the stream's top-level value as a mapping.
	StreamMapping
)

func (t StreamValueType) tag() byte {
	if t == StreamMapping {
		return tagMapping
	}
	return tagSequence
}

// StreamEncoderOption configures NewStreamEncoder.
type StreamEncoderOption func(*streamEncoderConfig)

type streamEncoderConfig struct {
	valueType    StreamValueType
	resume       bool
	fileOffset   int64
	preserveFile bool
	writeTable   *WriteTable
}

// AsMapping declares the stream's top-level value as a mapping instead of
// the default sequence. Ignored when combined with ResumeStream, which
// instead reads the declared type back from the existing file.
func AsMapping() StreamEncoderOption {
	return func(c *streamEncoderConfig) { c.valueType = StreamMapping }
}

// ResumeStream reopens an existing stream file at fileOffset, verifying
// its stream-top header and picking up the running item count from it,
// instead of starting a fresh stream.
func ResumeStream() StreamEncoderOption {
	return func(c *streamEncoderConfig) { c.resume = true }
}

// PreserveFile opens the file for append instead of truncating it,
// starting a fresh stream-top header at the current end of file.
func PreserveFile() StreamEncoderOption {
	return func(c *streamEncoderConfig) { c.preserveFile = true }
}

// AtFileOffset sets the byte offset of the stream-top header, for a fresh
// stream (default 0) or to locate it on resume.
func AtFileOffset(offset int64) StreamEncoderOption {
	return func(c *streamEncoderConfig) { c.fileOffset = offset }
}

// WithStreamWriteTable supplies the extension write table used to encode
// any item with no built-in representation.
func WithStreamWriteTable(t *WriteTable) StreamEncoderOption {
	return func(c *streamEncoderConfig) { c.writeTable = t }
}

// StreamEncoder appends items to a file-backed top-level sequence or
// mapping, rewriting the stream-top header's item count in place after
// every successful Write. A single StreamEncoder is not safe for
// concurrent use from multiple goroutines.
type StreamEncoder struct {
	path        string
	tag         byte
	startOffset int64 // position of the 9-byte stream-top header
	endOffset   int64 // next byte position to append at
	count       uint64
	writeTable  *WriteTable
	finalized   bool
}

// NewStreamEncoder opens or creates a stream-compatible file at path and
// returns an encoder ready to Write items to it.
func NewStreamEncoder(path string, opts ...StreamEncoderOption) (*StreamEncoder, error) {
	cfg := streamEncoderConfig{valueType: StreamSequence}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.fileOffset < 0 {
		return nil, newUsageError("file offset must not be negative, got %d", cfg.fileOffset)
	}

	e := &StreamEncoder{path: path, writeTable: cfg.writeTable}

	if cfg.resume {
		if err := e.resume(cfg.fileOffset); err != nil {
			return nil, err
		}
		return e, nil
	}

	e.tag = cfg.valueType.tag()

	var f *os.File
	var err error
	if cfg.preserveFile {
		f, err = os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
		if err != nil {
			return nil, newUsageError("opening %s: %v", path, err)
		}
		info, statErr := f.Stat()
		if statErr != nil {
			f.Close()
			return nil, newUsageError("statting %s: %v", path, statErr)
		}
		e.startOffset = info.Size()
	} else {
		f, err = os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
		if err != nil {
			return nil, newUsageError("opening %s: %v", path, err)
		}
		e.startOffset = cfg.fileOffset
	}
	defer f.Close()

	header := new(bytes.Buffer)
	writeStreamTopHeader(header, e.tag, 0)
	if _, err := f.WriteAt(header.Bytes(), e.startOffset); err != nil {
		return nil, wrapEncodingError(err, "writing stream-top header to %s", path)
	}
	e.endOffset = e.startOffset + 9
	return e, nil
}

func (e *StreamEncoder) resume(fileOffset int64) error {
	f, err := os.OpenFile(e.path, os.O_RDWR, 0o644)
	if err != nil {
		return newUsageError("opening %s: %v", e.path, err)
	}
	defer f.Close()

	header := make([]byte, 9)
	if _, err := f.ReadAt(header, fileOffset); err != nil {
		return newUsageError("reading stream-top header from %s: %v", e.path, err)
	}
	if header[0]&streamTopMarker != streamTopMarker {
		return newUsageError("the existing file data does not match the encoding stream expectations")
	}
	tag := header[0] & 0b111
	if tag != tagSequence && tag != tagMapping {
		return newUsageError("the existing file data does not match the encoding stream expectations")
	}

	info, err := f.Stat()
	if err != nil {
		return newUsageError("statting %s: %v", e.path, err)
	}

	e.tag = tag
	e.startOffset = fileOffset
	e.count = readUintLE(header[1:])
	e.endOffset = info.Size()
	return nil
}

// Write appends value's items (or key/value pairs, for a mapping stream)
// to the file and rewrites the running item count in the stream-top
// header. value must match the encoder's declared top-level type.
func (e *StreamEncoder) Write(value any) error {
	if e.finalized {
		return newUsageError("stream encoder is finalized")
	}

	buf := new(bytes.Buffer)
	var items int
	switch e.tag {
	case tagSequence:
		seq, ok := toSequence(value)
		if !ok {
			return newUsageError("streaming mode requires values to continue as a sequence, got %T", value)
		}
		if err := writeSequenceItems(buf, seq, e.writeTable); err != nil {
			return err
		}
		items = len(seq)
	case tagMapping:
		m, ok := toMapping(value)
		if !ok {
			return newUsageError("streaming mode requires values to continue as a mapping, got %T", value)
		}
		if err := writeMappingItems(buf, m, e.writeTable); err != nil {
			return err
		}
		items = len(m)
	}

	f, err := os.OpenFile(e.path, os.O_RDWR, 0o644)
	if err != nil {
		return wrapEncodingError(err, "opening %s", e.path)
	}
	defer f.Close()

	if _, err := f.WriteAt(buf.Bytes(), e.endOffset); err != nil {
		return wrapEncodingError(err, "appending to %s", e.path)
	}
	e.endOffset += int64(buf.Len())
	e.count += uint64(items)

	countBuf := new(bytes.Buffer)
	putUintLE(countBuf, e.count, 8)
	if _, err := f.WriteAt(countBuf.Bytes(), e.startOffset+1); err != nil {
		return wrapEncodingError(err, "rewriting item count in %s", e.path)
	}
	return nil
}

// Finalize releases the encoder's references. A finalized encoder rejects
// further writes.
func (e *StreamEncoder) Finalize() {
	e.finalized = true
	e.writeTable = nil
}
