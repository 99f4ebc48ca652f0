// Copyright (C) 2020 Michael J. Fromberger. All Rights Reserved.

// Package compaqt implements the Compaqt binary encoding: a compact,
// self-describing wire format for a fixed set of dynamic value types
// (null, bool, integer, float, bytes, string, sequence, mapping, and
// user-registered extension types).
//
// A Compaqt item always starts with a single tag byte whose low three bits
// select the primary type:
//
//	0 sequence   4 integer
//	1 mapping    5 group (float / bool / null)
//	2 bytes      6 extension
//	3 string     7 reserved
//
// Containers and scalar items (other than the fixed-size group items) carry
// a length-prefixed metadata header packed into the same leading byte; see
// metadata.go for the three width modes. Package compaqt exposes both a
// whole-buffer API (Encode/Decode, see codec.go) and a file-backed streaming
// API for appending to and reading from a top-level sequence or mapping one
// chunk at a time (see stream_encoder.go and stream_decoder.go), plus a
// structural Validate that walks an encoded buffer or file without building
// a value tree (see validate.go).
//
// The value universe maps onto native Go types as follows: nil, bool,
// []byte, string, float64 (float32 is accepted on encode and widened),
// the built-in integer kinds plus *big.Int for values that don't fit an
// int64, Sequence ([]any under the hood) and Mapping (an explicit ordered
// list of key/value Pairs, see value.go). Anything else must be registered
// in a WriteTable/ReadTable pair under one of the 32 extension indices
// (see extension.go).
package compaqt
