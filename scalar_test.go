// Copyright (C) 2020 Michael J. Fromberger. All Rights Reserved.

package compaqt

import (
	"bytes"
	"math"
	"math/big"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestIntegerEncodeBoundaryCases(t *testing.T) {
	huge, ok := new(big.Int).SetString("1"+strings.Repeat("0", 300), 10)
	if !ok {
		t.Fatal("constructing 10^300 literal")
	}
	negHuge := new(big.Int).Neg(huge)

	tests := []struct {
		name string
		v    *big.Int
	}{
		{"zero", big.NewInt(0)},
		{"one", big.NewInt(1)},
		{"minus one", big.NewInt(-1)},
		{"2^7-1", big.NewInt(127)},
		{"-2^7", big.NewInt(-128)},
		{"2^63-1", new(big.Int).SetInt64(math.MaxInt64)},
		{"-2^63", new(big.Int).SetInt64(math.MinInt64)},
		{"10^300", huge},
		{"-10^300", negHuge},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			writeIntegerItem(&buf, tc.v)

			c := newBufferCursor(buf.Bytes(), bufferEnsure)
			got, err := decodeIntegerItem(c)
			if err != nil {
				t.Fatalf("decodeIntegerItem: %v", err)
			}

			var gotBig *big.Int
			switch v := got.(type) {
			case int64:
				gotBig = big.NewInt(v)
			case *big.Int:
				gotBig = v
			default:
				t.Fatalf("decodeIntegerItem returned %T", got)
			}
			if gotBig.Cmp(tc.v) != 0 {
				t.Errorf("round trip of %s: got %s, want %s", tc.name, gotBig, tc.v)
			}
		})
	}
}

func TestZeroEncodesToSingleByte(t *testing.T) {
	var buf bytes.Buffer
	writeIntegerItem(&buf, big.NewInt(0))
	want := []byte{0x04}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("encode(0) = % x, want % x", buf.Bytes(), want)
	}
}

func TestBytesStringRoundTrip(t *testing.T) {
	lengths := []int{0, 15, 16, 2047, 2048, 100000}
	for _, n := range lengths {
		data := bytes.Repeat([]byte{0xAB}, n)

		var buf bytes.Buffer
		writeBytesItem(&buf, data)
		c := newBufferCursor(buf.Bytes(), bufferEnsure)
		got, err := decodeBytesItem(c)
		if err != nil {
			t.Fatalf("decodeBytesItem(n=%d): %v", n, err)
		}
		if !bytes.Equal(got, data) {
			t.Errorf("bytes round trip at length %d mismatched", n)
		}

		str := string(data)
		buf.Reset()
		writeStringItem(&buf, str)
		c = newBufferCursor(buf.Bytes(), bufferEnsure)
		gotStr, err := decodeStringItem(c)
		if err != nil {
			t.Fatalf("decodeStringItem(n=%d): %v", n, err)
		}
		if gotStr != str {
			t.Errorf("string round trip at length %d mismatched", n)
		}
	}
}

func TestFloatRoundTrip(t *testing.T) {
	values := []float64{0.0, math.Copysign(0, -1), math.Inf(1), math.Inf(-1), math.NaN(), math.SmallestNonzeroFloat64, 3.14159}
	for _, v := range values {
		var buf bytes.Buffer
		writeFloatItem(&buf, v)
		c := newBufferCursor(buf.Bytes(), bufferEnsure)
		got, err := decodeGroupItem(c)
		if err != nil {
			t.Fatalf("decodeGroupItem(%v): %v", v, err)
		}
		gotF, ok := got.(float64)
		if !ok {
			t.Fatalf("decodeGroupItem(%v) returned %T", v, got)
		}
		if math.IsNaN(v) {
			if !math.IsNaN(gotF) {
				t.Errorf("NaN did not round trip: got %v", gotF)
			}
			continue
		}
		if math.Signbit(v) != math.Signbit(gotF) || gotF != v {
			t.Errorf("float round trip of %v: got %v", v, gotF)
		}
	}
}

func TestBoolNullRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	writeBoolItem(&buf, true)
	writeBoolItem(&buf, false)
	writeNullItem(&buf)

	c := newBufferCursor(buf.Bytes(), bufferEnsure)
	for _, want := range []any{true, false, nil} {
		got, err := decodeGroupItem(c)
		if err != nil {
			t.Fatalf("decodeGroupItem: %v", err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("decodeGroupItem mismatch (-want +got):\n%s", diff)
		}
	}
}
