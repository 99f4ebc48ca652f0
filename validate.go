// Copyright (C) 2020 Michael J. Fromberger. All Rights Reserved.

package compaqt

import (
	"fmt"
	"io"
	"os"
)

// Validate checks that the source supplied via ValidateBytes or
// ValidateFile (exactly one of the two must be given) holds a
// structurally well-formed item, without materializing any decoded
// values.
//
// In buffer mode (ValidateBytes) the whole buffer must be consumed by
// exactly one item; any trailing or missing bytes make it invalid. In
// file mode (ValidateFile) only the first root item starting at
// AtOffset is checked; bytes beyond it are not examined, matching the
// original source's stream-oriented validator.
//
// Validate normally reports (false, nil) for a structurally invalid
// source. RaiseOnInvalid instead turns that verdict into a raised
// ValidationError, for callers that want to treat validation failure as
// exceptional.
func Validate(opts ...ValidateOption) (bool, error) {
	cfg := validateConfig{chunkSize: defaultStreamChunkSize}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.chunkSize < 9 {
		cfg.chunkSize = defaultStreamChunkSize
	}

	switch {
	case cfg.haveBuf && cfg.fileName != "":
		return false, newUsageError("expected either ValidateBytes or ValidateFile, got both")
	case cfg.haveBuf:
		return validateBuffer(cfg.encoded, cfg.errOnInvalid)
	case cfg.fileName != "":
		return validateFile(cfg, cfg.errOnInvalid)
	default:
		return false, newUsageError("expected either ValidateBytes or ValidateFile, got neither")
	}
}

func validateBuffer(data []byte, raise bool) (bool, error) {
	c := newBufferCursor(data, validateBufferEnsure)
	if err := skipValue(c); err != nil {
		return invalidVerdict(err, raise)
	}
	if c.off != c.max {
		err := newValidationError(c.off, "trailing data after root item: %d unread bytes", c.max-c.off)
		return invalidVerdict(err, raise)
	}
	return true, nil
}

func validateFile(cfg validateConfig, raise bool) (bool, error) {
	if cfg.fileOffset < 0 {
		return false, newUsageError("file offset must not be negative, got %d", cfg.fileOffset)
	}

	f, err := os.Open(cfg.fileName)
	if err != nil {
		return false, newUsageError("opening %s: %v", cfg.fileName, err)
	}
	defer f.Close()

	first := make([]byte, cfg.chunkSize)
	read, err := f.ReadAt(first, cfg.fileOffset)
	if err != nil && err != io.EOF {
		return false, wrapDecodingError(err, int(cfg.fileOffset), "reading %s", cfg.fileName)
	}

	diskPos := cfg.fileOffset + int64(read)
	c := &cursor{
		buf:       first[:read],
		max:       read,
		ensureFn:  validateWindowEnsure,
		chunkSize: cfg.chunkSize,
	}
	c.refill = func(p []byte) (int, error) {
		n, err := f.ReadAt(p, diskPos)
		diskPos += int64(n)
		if err == io.EOF {
			err = nil
		}
		return n, err
	}

	if err := skipValue(c); err != nil {
		return invalidVerdict(err, raise)
	}
	return true, nil
}

func invalidVerdict(err error, raise bool) (bool, error) {
	if raise {
		return false, err
	}
	return false, nil
}

// skipValue advances c past one well-formed item without materializing
// its value, returning a ValidationError at the first structural defect.
// It mirrors decodeValue's tag dispatch in engine.go.
func skipValue(c *cursor) error {
	offset := c.off
	b, err := c.peekByte()
	if err != nil {
		return err
	}
	switch b & 0b111 {
	case tagSequence:
		return skipSequence(c)
	case tagMapping:
		return skipMapping(c)
	case tagBytes, tagString:
		return skipLengthPrefixed(c)
	case tagInteger:
		return skipLengthPrefixed(c)
	case tagGroup:
		return skipGroupItem(c)
	case tagExtension:
		return skipExtensionItem(c)
	default:
		return newValidationError(offset, "unknown type tag %d", b&0b111)
	}
}

func skipLengthPrefixed(c *cursor) error {
	length, err := readMetadata(c)
	if err != nil {
		return err
	}
	_, err = c.readN(int(length))
	return err
}

func skipSequence(c *cursor) error {
	n, err := readMetadata(c)
	if err != nil {
		return err
	}
	for i := uint64(0); i < n; i++ {
		if err := skipValue(c); err != nil {
			return wrapValidationOffset(err, c.off, "validating sequence index %d", i)
		}
	}
	return nil
}

func skipMapping(c *cursor) error {
	n, err := readMetadata(c)
	if err != nil {
		return err
	}
	for i := uint64(0); i < n; i++ {
		if err := skipValue(c); err != nil {
			return wrapValidationOffset(err, c.off, "validating mapping key %d", i)
		}
		if err := skipValue(c); err != nil {
			return wrapValidationOffset(err, c.off, "validating mapping value %d", i)
		}
	}
	return nil
}

func skipGroupItem(c *cursor) error {
	offset := c.off
	b, err := c.readByte()
	if err != nil {
		return err
	}
	switch b {
	case subBoolFalse, subBoolTrue, subNull:
		return nil
	case subFloat:
		_, err := c.readN(8)
		return err
	default:
		return newValidationError(offset, "unknown group sub-tag 0x%02x", b)
	}
}

// wrapValidationOffset wraps err (a nested item's validation failure) with
// additional context, preserving err in the chain via Unwrap.
func wrapValidationOffset(err error, offset int, format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...), Offset: offset, Err: err}
}
