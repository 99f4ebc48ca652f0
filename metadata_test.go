// Copyright (C) 2020 Michael J. Fromberger. All Rights Reserved.

package compaqt

import (
	"bytes"
	"testing"
)

func TestWriteMetadataShortForm(t *testing.T) {
	tests := []struct {
		length uint64
		want   []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x10}},
		{15, []byte{0xF0}},
	}
	for _, tc := range tests {
		var buf bytes.Buffer
		writeMetadata(&buf, tagSequence, tc.length)
		if !bytes.Equal(buf.Bytes(), tc.want) {
			t.Errorf("writeMetadata(seq, %d) = % x, want % x", tc.length, buf.Bytes(), tc.want)
		}
	}
}

func TestMetadataRoundTrip(t *testing.T) {
	lengths := []uint64{0, 1, 15, 16, 100, 2047, 2048, 100000, 1 << 32, 1<<32 + 7}
	for _, length := range lengths {
		var buf bytes.Buffer
		writeMetadata(&buf, tagBytes, length)
		buf.Write(make([]byte, length)) // readMetadata's eager ensure needs the payload present
		c := newBufferCursor(buf.Bytes(), bufferEnsure)
		got, err := readMetadata(c)
		if err != nil {
			t.Fatalf("readMetadata(%d): %v", length, err)
		}
		if got != length {
			t.Errorf("readMetadata round trip: got %d, want %d", got, length)
		}
	}
}

func TestWriteStreamTopHeader(t *testing.T) {
	var buf bytes.Buffer
	writeStreamTopHeader(&buf, tagSequence, 0)
	if buf.Len() != 9 {
		t.Fatalf("stream-top header length = %d, want 9", buf.Len())
	}
	if buf.Bytes()[0]&streamTopMarker != streamTopMarker {
		t.Errorf("stream-top header first byte %#08b does not carry the marker bits", buf.Bytes()[0])
	}
	if got := readUintLE(buf.Bytes()[1:]); got != 0 {
		t.Errorf("stream-top header count = %d, want 0", got)
	}
}

func TestByteWidth(t *testing.T) {
	tests := []struct {
		v    uint64
		want int
	}{
		{0, 1},
		{1, 1},
		{255, 1},
		{256, 2},
		{1 << 16, 3},
		{1 << 32, 5},
	}
	for _, tc := range tests {
		if got := byteWidth(tc.v); got != tc.want {
			t.Errorf("byteWidth(%d) = %d, want %d", tc.v, got, tc.want)
		}
	}
}

func TestPutReadUintLERoundTrip(t *testing.T) {
	values := []uint64{0, 1, 255, 65535, 1 << 40, ^uint64(0)}
	for _, v := range values {
		width := 8
		var buf bytes.Buffer
		putUintLE(&buf, v, width)
		if got := readUintLE(buf.Bytes()); got != v {
			t.Errorf("putUintLE/readUintLE round trip for %d: got %d", v, got)
		}
	}
}
