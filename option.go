// Copyright (C) 2020 Michael J. Fromberger. All Rights Reserved.

package compaqt

// This file defines small, per-call-site functional option types for the
// package's public constructors. The shape follows the generic
// options.Option[T] helper in arloliu/mebo's internal/options package,
// specialized by hand for each config struct rather than imported, since
// mebo is not otherwise a dependency of this module.

// EncodeOption configures a call to Encode.
type EncodeOption func(*encodeConfig)

type encodeConfig struct {
	fileName         string
	streamCompatible bool
	writeTable       *WriteTable
}

// ToFile directs Encode to write its output to the named file instead of
// returning a buffer.
func ToFile(name string) EncodeOption {
	return func(c *encodeConfig) { c.fileName = name }
}

// StreamCompatible directs Encode to prefix a top-level sequence or
// mapping with the fixed 9-byte stream-top header, so the result is valid
// input to NewStreamDecoder.
func StreamCompatible() EncodeOption {
	return func(c *encodeConfig) { c.streamCompatible = true }
}

// WithWriteTable supplies the extension write table used to encode any
// value with no built-in representation.
func WithWriteTable(t *WriteTable) EncodeOption {
	return func(c *encodeConfig) { c.writeTable = t }
}

// DecodeOption configures a call to Decode.
type DecodeOption func(*decodeConfig)

type decodeConfig struct {
	encoded   []byte
	haveBuf   bool
	fileName  string
	readTable *ReadTable
}

// FromBytes supplies the encoded buffer to decode.
func FromBytes(encoded []byte) DecodeOption {
	return func(c *decodeConfig) { c.encoded = encoded; c.haveBuf = true }
}

// FromFile supplies the path of the file to decode.
func FromFile(name string) DecodeOption {
	return func(c *decodeConfig) { c.fileName = name }
}

// WithReadTable supplies the extension read table used to decode any
// extension item encountered.
func WithReadTable(t *ReadTable) DecodeOption {
	return func(c *decodeConfig) { c.readTable = t }
}

// ValidateOption configures a call to Validate.
type ValidateOption func(*validateConfig)

type validateConfig struct {
	encoded      []byte
	haveBuf      bool
	fileName     string
	fileOffset   int64
	chunkSize    int
	errOnInvalid bool
}

// ValidateBytes supplies the encoded buffer to validate.
func ValidateBytes(encoded []byte) ValidateOption {
	return func(c *validateConfig) { c.encoded = encoded; c.haveBuf = true }
}

// ValidateFile supplies the path of the file to validate.
func ValidateFile(name string) ValidateOption {
	return func(c *validateConfig) { c.fileName = name }
}

// AtOffset sets the starting file offset for ValidateFile.
func AtOffset(offset int64) ValidateOption {
	return func(c *validateConfig) { c.fileOffset = offset }
}

// WithChunkSize sets the file-mode read chunk size.
func WithChunkSize(size int) ValidateOption {
	return func(c *validateConfig) { c.chunkSize = size }
}

// RaiseOnInvalid turns a "false" verdict into a raised ValidationError.
func RaiseOnInvalid() ValidateOption {
	return func(c *validateConfig) { c.errOnInvalid = true }
}
