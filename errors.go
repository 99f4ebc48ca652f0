// Copyright (C) 2020 Michael J. Fromberger. All Rights Reserved.

package compaqt

import "fmt"

// EncodingError reports that a value could not be encoded: its type has no
// built-in codec and no matching extension entry, a custom type's
// serializer returned an error, or writing the encoded output failed.
type EncodingError struct {
	Msg string
	Err error
}

func (e *EncodingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("compaqt: encoding error: %s: %v", e.Msg, e.Err)
	}
	return fmt.Sprintf("compaqt: encoding error: %s", e.Msg)
}

func (e *EncodingError) Unwrap() error { return e.Err }

func newEncodingError(format string, args ...any) *EncodingError {
	return &EncodingError{Msg: fmt.Sprintf(format, args...)}
}

func wrapEncodingError(err error, format string, args ...any) *EncodingError {
	return &EncodingError{Msg: fmt.Sprintf(format, args...), Err: err}
}

// DecodingError reports truncation, an unknown tag, an unknown group
// sub-tag, an unknown extension index, or a corrupt header encountered
// while decoding. Offset is the byte position of the item that failed,
// relative to the start of the buffer or stream window being read.
type DecodingError struct {
	Msg    string
	Offset int
	Err    error
}

func (e *DecodingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("compaqt: decoding error at offset %d: %s: %v", e.Offset, e.Msg, e.Err)
	}
	return fmt.Sprintf("compaqt: decoding error at offset %d: %s", e.Offset, e.Msg)
}

func (e *DecodingError) Unwrap() error { return e.Err }

func newDecodingError(offset int, format string, args ...any) *DecodingError {
	return &DecodingError{Msg: fmt.Sprintf(format, args...), Offset: offset}
}

func wrapDecodingError(err error, offset int, format string, args ...any) *DecodingError {
	return &DecodingError{Msg: fmt.Sprintf(format, args...), Offset: offset, Err: err}
}

// ValidationError reports a structural defect found while validating an
// encoded buffer or file, or wraps an explicit strict-mode "invalid"
// verdict.
type ValidationError struct {
	Msg    string
	Offset int
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("compaqt: validation error at offset %d: %s: %v", e.Offset, e.Msg, e.Err)
	}
	return fmt.Sprintf("compaqt: validation error at offset %d: %s", e.Offset, e.Msg)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func newValidationError(offset int, format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...), Offset: offset}
}

// UsageError reports a bad argument combination at a public entry point:
// both or neither of encoded/file name supplied, a negative offset, a
// chunk size below the 9-byte minimum, a value type that is not sequence
// or mapping, or a type mismatch on stream resume.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("compaqt: usage error: %s", e.Msg)
}

func newUsageError(format string, args ...any) *UsageError {
	return &UsageError{Msg: fmt.Sprintf(format, args...)}
}
