// Copyright (C) 2020 Michael J. Fromberger. All Rights Reserved.

package compaqt

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateBufferAgreesWithDecode(t *testing.T) {
	values := []any{
		nil, true, int64(42), "hello", []byte{1, 2, 3},
		Sequence{int64(1), "x", Sequence{true}},
		Mapping{{Key: "a", Value: int64(1)}},
	}
	for _, v := range values {
		var buf bytes.Buffer
		require.NoError(t, writeValue(&buf, v, nil))

		ok, err := Validate(ValidateBytes(buf.Bytes()))
		require.NoError(t, err)
		require.True(t, ok, "Validate should accept the output of writeValue for %#v", v)

		_, err = Decode(FromBytes(buf.Bytes()))
		require.NoError(t, err)
	}
}

func TestValidateBufferRejectsTrailingData(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeValue(&buf, int64(1), nil))
	buf.WriteByte(0xFF)

	ok, err := Validate(ValidateBytes(buf.Bytes()))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestValidateBufferRejectsSingleByteFlips(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeValue(&buf, Sequence{int64(1), "two", []byte{3, 4}}, nil))
	original := buf.Bytes()

	sawInvalid := false
	for i := range original {
		corrupt := make([]byte, len(original))
		copy(corrupt, original)
		corrupt[i] ^= 0xFF

		ok, err := Validate(ValidateBytes(corrupt))
		if err != nil || !ok {
			sawInvalid = true
		}
	}
	require.True(t, sawInvalid, "expected at least one single-byte flip to be rejected")
}

func TestValidateRaiseOnInvalid(t *testing.T) {
	_, err := Validate(ValidateBytes([]byte{0xFF}), RaiseOnInvalid())
	require.Error(t, err)
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
}

func TestValidateFileChecksOnlyFirstRootItem(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.compaqt")

	var buf bytes.Buffer
	require.NoError(t, writeValue(&buf, int64(7), nil))
	buf.WriteByte(0xFF) // trailing garbage, ignored in file mode

	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	ok, err := Validate(ValidateFile(path))
	require.NoError(t, err)
	require.True(t, ok)
}

func TestValidateFileAtOffset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.compaqt")

	var buf bytes.Buffer
	buf.Write([]byte{0x00, 0x00, 0x00}) // leading padding
	require.NoError(t, writeValue(&buf, "payload", nil))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	ok, err := Validate(ValidateFile(path), AtOffset(3))
	require.NoError(t, err)
	require.True(t, ok)
}
