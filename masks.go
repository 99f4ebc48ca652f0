// Copyright (C) 2020 Michael J. Fromberger. All Rights Reserved.

package compaqt

// Primary type tags occupy the low 3 bits of an item's first byte.
const (
	tagSequence  byte = 0
	tagMapping   byte = 1
	tagBytes     byte = 2
	tagString    byte = 3
	tagInteger   byte = 4
	tagGroup     byte = 5
	tagExtension byte = 6
)

// Group sub-tags live in the same byte as tagGroup, in bits 3-7.
const (
	subBoolFalse byte = tagGroup | (0 << 3)
	subBoolTrue  byte = tagGroup | (1 << 3)
	subFloat     byte = tagGroup | (2 << 3)
	subNull      byte = tagGroup | (3 << 3)
)

// streamTopMarker is the bit pattern (bits 3-7) that identifies a fixed
// 9-byte stream-top header: the long metadata form with width fixed at 8.
const streamTopMarker byte = 0b11111_000

// metadata mode bits, occupying bits 3-4 of the first byte. A mode value of
// 0b00000 or 0b10000 means short form, 0b01000 means medium, 0b11000 means
// long; see readMetadata/writeMetadata in metadata.go.
const metaModeMask byte = 0b11000

