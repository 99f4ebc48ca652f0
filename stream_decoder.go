// Copyright (C) 2020 Michael J. Fromberger. All Rights Reserved.

package compaqt

import (
	"io"
	"os"
)

const defaultStreamChunkSize = 256 * 1024

// StreamDecoderOption configures NewStreamDecoder.
type StreamDecoderOption func(*streamDecoderConfig)

type streamDecoderConfig struct {
	fileOffset int64
	chunkSize  int
	readTable  *ReadTable
}

// DecoderFileOffset sets the byte offset of the stream-top header to parse;
// default 0.
func DecoderFileOffset(offset int64) StreamDecoderOption {
	return func(c *streamDecoderConfig) { c.fileOffset = offset }
}

// DecoderChunkSize sets the number of bytes read from the file per window
// refill; default 256KiB.
func DecoderChunkSize(size int) StreamDecoderOption {
	return func(c *streamDecoderConfig) { c.chunkSize = size }
}

// WithStreamReadTable supplies the extension read table used to decode any
// extension item encountered.
func WithStreamReadTable(t *ReadTable) StreamDecoderOption {
	return func(c *streamDecoderConfig) { c.readTable = t }
}

// ReadOption configures a call to StreamDecoder.Read.
type ReadOption func(*readConfig)

type readConfig struct {
	numItems      int
	haveNumItems  bool
	chunkSize     int
	haveChunkSize bool
}

// NumItems caps the number of items a Read call returns. If omitted, or if
// it exceeds the items remaining in the stream, it is clamped to the
// number of items remaining.
func NumItems(n int) ReadOption {
	return func(c *readConfig) { c.numItems = n; c.haveNumItems = true }
}

// ChunkSizeOverride overrides the decoder's configured chunk size for a
// single Read call.
func ChunkSizeOverride(size int) ReadOption {
	return func(c *readConfig) { c.chunkSize = size; c.haveChunkSize = true }
}

// StreamDecoder reads items back out of a file written by a StreamEncoder
// (or Encode with StreamCompatible), advancing past what it has already
// returned on every Read call. A single StreamDecoder is not safe for
// concurrent use from multiple goroutines.
type StreamDecoder struct {
	path           string
	tag            byte
	fileOffset     int64 // next unread byte position
	itemsRemaining uint64
	chunkSize      int
	readTable      *ReadTable
}

// NewStreamDecoder opens the stream-top header at path and returns a
// decoder ready to Read items back from it.
func NewStreamDecoder(path string, opts ...StreamDecoderOption) (*StreamDecoder, error) {
	cfg := streamDecoderConfig{chunkSize: defaultStreamChunkSize}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.fileOffset < 0 {
		return nil, newUsageError("file offset must not be negative, got %d", cfg.fileOffset)
	}
	if cfg.chunkSize < 9 {
		return nil, newUsageError("chunk size must be at least 9, got %d", cfg.chunkSize)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, newUsageError("opening %s: %v", path, err)
	}
	defer f.Close()

	header := make([]byte, 9)
	if _, err := io.ReadFull(io.NewSectionReader(f, cfg.fileOffset, 9), header); err != nil {
		return nil, newDecodingError(int(cfg.fileOffset), "reading stream-top header from %s: %v", path, err)
	}
	if header[0]&streamTopMarker != streamTopMarker {
		return nil, newDecodingError(int(cfg.fileOffset), "%s does not start with a stream-top header", path)
	}
	tag := header[0] & 0b111
	if tag != tagSequence && tag != tagMapping {
		return nil, newDecodingError(int(cfg.fileOffset), "%s does not start with a stream-top header", path)
	}

	return &StreamDecoder{
		path:           path,
		tag:            tag,
		fileOffset:     cfg.fileOffset + 9,
		itemsRemaining: readUintLE(header[1:]),
		chunkSize:      cfg.chunkSize,
		readTable:      cfg.readTable,
	}, nil
}

// ValueType reports whether the stream's top-level value is a sequence or
// a mapping.
func (d *StreamDecoder) ValueType() StreamValueType {
	if d.tag == tagMapping {
		return StreamMapping
	}
	return StreamSequence
}

// ItemsRemaining reports how many items (or key/value pairs, for a mapping
// stream) have not yet been returned by Read.
func (d *StreamDecoder) ItemsRemaining() uint64 {
	return d.itemsRemaining
}

// Read decodes up to NumItems items (or all items remaining, if NumItems is
// omitted or exceeds what remains) from the stream and returns them as a
// Sequence or Mapping matching ValueType. It opens the file for the
// duration of the call only.
func (d *StreamDecoder) Read(opts ...ReadOption) (any, error) {
	var rc readConfig
	for _, opt := range opts {
		opt(&rc)
	}

	n := d.itemsRemaining
	if rc.haveNumItems && uint64(rc.numItems) < n {
		n = uint64(rc.numItems)
	}
	chunkSize := d.chunkSize
	if rc.haveChunkSize {
		chunkSize = rc.chunkSize
	}

	f, err := os.Open(d.path)
	if err != nil {
		return nil, wrapDecodingError(err, int(d.fileOffset), "opening %s", d.path)
	}
	defer f.Close()

	first := make([]byte, chunkSize)
	read, err := f.ReadAt(first, d.fileOffset)
	if err != nil && err != io.EOF {
		return nil, wrapDecodingError(err, int(d.fileOffset), "reading %s", d.path)
	}

	offsetInFile := d.fileOffset
	diskPos := offsetInFile + int64(read)
	c := &cursor{
		buf:       first[:read],
		max:       read,
		ensureFn:  windowEnsure,
		chunkSize: chunkSize,
	}
	c.refill = func(p []byte) (int, error) {
		n, err := f.ReadAt(p, diskPos)
		diskPos += int64(n)
		if err == io.EOF {
			err = nil
		}
		return n, err
	}

	prealloc := int(n)
	if prealloc > maxPreallocItems {
		prealloc = maxPreallocItems
	}

	var result any
	switch d.tag {
	case tagSequence:
		out := make(Sequence, 0, prealloc)
		for i := uint64(0); i < n; i++ {
			item, err := decodeValue(c, d.readTable)
			if err != nil {
				return nil, wrapDecodingError(err, int(offsetInFile)+c.off, "decoding stream item %d", i)
			}
			out = append(out, item)
		}
		result = out
	case tagMapping:
		out := make(Mapping, 0, prealloc)
		for i := uint64(0); i < n; i++ {
			key, err := decodeValue(c, d.readTable)
			if err != nil {
				return nil, wrapDecodingError(err, int(offsetInFile)+c.off, "decoding stream key %d", i)
			}
			val, err := decodeValue(c, d.readTable)
			if err != nil {
				return nil, wrapDecodingError(err, int(offsetInFile)+c.off, "decoding stream value %d", i)
			}
			out = append(out, Pair{Key: key, Value: val})
		}
		result = out
	}

	d.fileOffset += c.consumedTotal()
	d.itemsRemaining -= n
	return result, nil
}

// Finalize releases the decoder's references.
func (d *StreamDecoder) Finalize() {
	d.readTable = nil
}
