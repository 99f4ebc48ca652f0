// Copyright (C) 2020 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/creachadair/compaqt"
)

// decodeJSON parses JSON text into a value tree compaqt.Encode accepts
// directly: nil/bool/string/[]any/map[string]any come through as-is from
// encoding/json, and a json.Number holding an integer literal is promoted
// to int64 or *big.Int so it round-trips exactly instead of losing
// precision through float64; any other json.Number becomes a float64.
func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parsing JSON input: %w", err)
	}
	return promoteNumbers(raw), nil
}

func promoteNumbers(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, ok := new(big.Int).SetString(string(t), 10); ok {
			if i.IsInt64() {
				return i.Int64()
			}
			return i
		}
		f, _ := t.Float64()
		return f
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = promoteNumbers(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = promoteNumbers(e)
		}
		return out
	default:
		return v
	}
}

// valueToJSON converts a decoded compaqt value tree into something
// encoding/json can marshal: compaqt.Mapping becomes a JSON object when
// every key is a string, or an array of [key, value] pairs otherwise,
// since a wire mapping's keys are not restricted to strings the way a
// JSON object's must be.
func valueToJSON(v any) any {
	switch t := v.(type) {
	case compaqt.Sequence:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = valueToJSON(e)
		}
		return out
	case compaqt.Mapping:
		allStringKeys := true
		for _, p := range t {
			if _, ok := p.Key.(string); !ok {
				allStringKeys = false
				break
			}
		}
		if allStringKeys {
			out := make(map[string]any, len(t))
			for _, p := range t {
				out[p.Key.(string)] = valueToJSON(p.Value)
			}
			return out
		}
		out := make([]any, len(t))
		for i, p := range t {
			out[i] = []any{valueToJSON(p.Key), valueToJSON(p.Value)}
		}
		return out
	case *big.Int:
		return t
	default:
		return t
	}
}
