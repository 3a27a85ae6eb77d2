package lessons

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoCoverage is returned in Coverage.Err when the field is empty.
var ErrNoCoverage = errors.New("lesson has no outcome coverage")

// Coverage is the parsed outcome-coverage field of a lesson template. When
// Err is set the field could not be read and Outcomes is empty.
type Coverage struct {
	Outcomes []string
	Err      error
}

// Malformed reports whether the coverage field could not be parsed.
func (c Coverage) Malformed() bool { return c.Err != nil }

// Covered returns a coverage value for a known list of references.
func Covered(refs ...string) Coverage {
	return Coverage{Outcomes: refs}
}

// ParseCoverage reads a stored outcome-coverage field. Both a bare JSON array
// (["O1","AS1.1"]) and a wrapper object ({"outcomes": [...]}) are accepted.
// Non-string and blank entries are dropped.
func ParseCoverage(raw string) Coverage {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return Coverage{Err: ErrNoCoverage}
	}

	var items []json.RawMessage
	switch raw[0] {
	case '[':
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			return Coverage{Err: fmt.Errorf("decode coverage array: %w", err)}
		}
	case '{':
		var wrapper struct {
			Outcomes []json.RawMessage `json:"outcomes"`
		}
		if err := json.Unmarshal([]byte(raw), &wrapper); err != nil {
			return Coverage{Err: fmt.Errorf("decode coverage object: %w", err)}
		}
		if wrapper.Outcomes == nil {
			return Coverage{Err: fmt.Errorf("coverage object has no outcomes field")}
		}
		items = wrapper.Outcomes
	default:
		return Coverage{Err: fmt.Errorf("unsupported coverage value %q", truncate(raw, 24))}
	}

	var c Coverage
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		var ref string
		if err := json.Unmarshal(it, &ref); err != nil {
			continue
		}
		ref = strings.TrimSpace(ref)
		if ref == "" || seen[ref] {
			continue
		}
		seen[ref] = true
		c.Outcomes = append(c.Outcomes, ref)
	}
	return c
}

// EncodeCoverage serializes references in the bare-array storage form.
func EncodeCoverage(refs []string) (string, error) {
	if refs == nil {
		refs = []string{}
	}
	b, err := json.Marshal(refs)
	if err != nil {
		return "", fmt.Errorf("encode coverage: %w", err)
	}
	return string(b), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
