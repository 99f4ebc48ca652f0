// Copyright (C) 2020 Michael J. Fromberger. All Rights Reserved.

package compaqt

// Sequence is an ordered, heterogeneous list of values, encoded under
// tagSequence. A plain []any is also accepted wherever Sequence is, both on
// encode and as a literal.
type Sequence []any

// Pair is one key/value entry of a Mapping.
type Pair struct {
	Key   any
	Value any
}

// Mapping is an ordered list of key/value pairs, encoded under tagMapping.
// Keys may be any supported value type; duplicate keys are not rejected by
// the codec (decoding returns every pair, in emission order, and it is the
// caller's choice whether to fold them into a Go map).
//
// Mapping is an explicit ordered type rather than a Go map so that encode
// order — and therefore the exact encoded bytes — is under the caller's
// control. A plain map[string]any or map[any]any is also accepted on
// encode, with the same caveat the original source notes for dict values:
// entries are emitted in the map's iteration order, which Go (like Python)
// does not guarantee is stable across runs.
type Mapping []Pair

// Get returns the value of the first pair whose key equals k, and whether
// one was found.
func (m Mapping) Get(k any) (any, bool) {
	for _, p := range m {
		if p.Key == k {
			return p.Value, true
		}
	}
	return nil, false
}

// toSequence normalizes any of the accepted sequence representations to a
// Sequence, reporting false for anything else.
func toSequence(v any) (Sequence, bool) {
	switch t := v.(type) {
	case Sequence:
		return t, true
	case []any:
		return Sequence(t), true
	}
	return nil, false
}

// toMapping normalizes any of the accepted mapping representations to a
// Mapping, reporting false for anything else.
func toMapping(v any) (Mapping, bool) {
	switch t := v.(type) {
	case Mapping:
		return t, true
	case map[string]any:
		return mappingFromStringMap(t), true
	case map[any]any:
		return mappingFromAnyMap(t), true
	}
	return nil, false
}
