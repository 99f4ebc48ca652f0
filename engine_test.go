// Copyright (C) 2020 Michael J. Fromberger. All Rights Reserved.

package compaqt

import (
	"bytes"
	"errors"
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func roundTrip(t *testing.T, v any) any {
	t.Helper()
	var buf bytes.Buffer
	if err := writeValue(&buf, v, nil); err != nil {
		t.Fatalf("writeValue(%#v): %v", v, err)
	}
	c := newBufferCursor(buf.Bytes(), bufferEnsure)
	got, err := decodeValue(c, nil)
	if err != nil {
		t.Fatalf("decodeValue: %v", err)
	}
	if c.off != c.max {
		t.Fatalf("decodeValue left %d trailing bytes", c.max-c.off)
	}
	return got
}

func TestEngineRoundTripScalars(t *testing.T) {
	tests := []any{
		nil,
		true,
		false,
		"hello, world",
		[]byte{1, 2, 3},
		int64(42),
		int64(-1),
		3.5,
	}
	for _, v := range tests {
		got := roundTrip(t, v)
		if diff := cmp.Diff(v, got); diff != "" {
			t.Errorf("round trip of %#v (-want +got):\n%s", v, diff)
		}
	}
}

func TestEngineRoundTripSequence(t *testing.T) {
	v := Sequence{int64(1), "two", Sequence{true, nil}, []byte{0xFF}}
	got := roundTrip(t, v)
	if diff := cmp.Diff(v, got); diff != "" {
		t.Errorf("sequence round trip (-want +got):\n%s", diff)
	}
}

func TestEngineRoundTripMapping(t *testing.T) {
	v := Mapping{
		{Key: "a", Value: int64(1)},
		{Key: "b", Value: Sequence{int64(2), int64(3)}},
	}
	got := roundTrip(t, v)
	if diff := cmp.Diff(v, got); diff != "" {
		t.Errorf("mapping round trip (-want +got):\n%s", diff)
	}
}

func TestEngineAcceptsPlainGoContainers(t *testing.T) {
	v := map[string]any{"x": int64(1)}
	got := roundTrip(t, v)
	want := Mapping{{Key: "x", Value: int64(1)}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("map[string]any round trip (-want +got):\n%s", diff)
	}
}

func TestEngineDeepNesting(t *testing.T) {
	var v any = int64(0)
	for i := 0; i < 12; i++ {
		v = Sequence{v}
	}
	got := roundTrip(t, v)
	if diff := cmp.Diff(v, got); diff != "" {
		t.Errorf("deeply nested round trip (-want +got):\n%s", diff)
	}
}

func TestEncodeIsStableAcrossReencode(t *testing.T) {
	v := Sequence{int64(1), "x", Mapping{{Key: "k", Value: int64(2)}}}

	var first bytes.Buffer
	if err := writeValue(&first, v, nil); err != nil {
		t.Fatalf("first encode: %v", err)
	}
	decoded, err := decodeValue(newBufferCursor(first.Bytes(), bufferEnsure), nil)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	var second bytes.Buffer
	if err := writeValue(&second, decoded, nil); err != nil {
		t.Fatalf("second encode: %v", err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Errorf("re-encode is not stable:\nfirst:  % x\nsecond: % x", first.Bytes(), second.Bytes())
	}
}

func TestEngineLiteralByteVectors(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want []byte
	}{
		{"zero", int64(0), []byte{0x04}},
		{"null", nil, []byte{subNull}},
		{"true", true, []byte{subBoolTrue}},
		{"false", false, []byte{subBoolFalse}},
		{"empty string", "", []byte{tagString}},
		{"empty bytes", []byte{}, []byte{tagBytes}},
		{"empty sequence", Sequence{}, []byte{tagSequence}},
		{"empty mapping", Mapping{}, []byte{tagMapping}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := writeValue(&buf, tc.v, nil); err != nil {
				t.Fatalf("writeValue: %v", err)
			}
			if !bytes.Equal(buf.Bytes(), tc.want) {
				t.Errorf("encode(%#v) = % x, want % x", tc.v, buf.Bytes(), tc.want)
			}
		})
	}
}

func TestEngineRoundTripBigInt(t *testing.T) {
	huge := new(big.Int)
	huge.SetString("123456789012345678901234567890", 10)
	got := roundTrip(t, huge)
	gotBig, ok := got.(*big.Int)
	if !ok {
		t.Fatalf("decoded %T, want *big.Int", got)
	}
	if gotBig.Cmp(huge) != 0 {
		t.Errorf("round trip mismatch: got %s, want %s", gotBig, huge)
	}
}

func TestEngineUnsupportedTypeWithoutWriteTable(t *testing.T) {
	var buf bytes.Buffer
	err := writeValue(&buf, struct{ X int }{X: 1}, nil)
	if err == nil {
		t.Fatal("expected an EncodingError for an unregistered type, got nil")
	}
	var encErr *EncodingError
	if !errors.As(err, &encErr) {
		t.Errorf("expected *EncodingError, got %T (%v)", err, err)
	}
}
