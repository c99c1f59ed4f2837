// Package query loads a pattern/input/RLE-width triple from a JSON
// file, the CLI's "-f file.json" mode described in spec.md §6.
//
// Grounded on main.c's cJSON-based query loading; this engine reaches
// for the standard library's encoding/json instead of a third-party
// JSON library because the only JSON-adjacent repo in the example
// pack (a from-scratch JSON parser reference implementation) is not
// an adoptable ecosystem dependency, and no other example repo in the
// pack imports one either.
package query

import (
	"encoding/json"
	"fmt"
	"io"
)

// Query is the decoded contents of a "-f file.json" query file.
type Query struct {
	Pattern   string `json:"pattern"`
	Input     string `json:"input"`
	RLEKValue int    `json:"rleKValue"`
}

// Load decodes a Query from r. Both "pattern" and "input" must be
// present and non-empty; "rleKValue" defaults to 0 (meaning "unused")
// if omitted.
func Load(r io.Reader) (*Query, error) {
	var q Query
	dec := json.NewDecoder(r)
	if err := dec.Decode(&q); err != nil {
		return nil, &DecodeError{Err: err}
	}
	if q.Pattern == "" {
		return nil, fmt.Errorf("query: %w: missing \"pattern\"", ErrMissingField)
	}
	if q.Input == "" {
		return nil, fmt.Errorf("query: %w: missing \"input\"", ErrMissingField)
	}
	return &q, nil
}
