package outcome

import (
	"encoding/json"
	"fmt"
	"strings"
)

// AssessmentStandard is a sub-criterion nested under an outcome.
type AssessmentStandard struct {
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
}

// Record is a durable catalog entry for one outcome of a course.
type Record struct {
	ID       string // store-assigned durable id
	CourseID string
	Code     string // human-readable outcome code, e.g. "O1"
	Title    string

	// StandardsJSON is the serialized assessment-standard array exactly as
	// the catalog stores it. Use Standards to read it.
	StandardsJSON string
}

// Standards parses the record's assessment-standard list.
func (r Record) Standards() StandardsResult {
	return ParseStandards(r.StandardsJSON)
}

// StandardsResult is the outcome of parsing a serialized assessment-standard
// list. A malformed list has Err set and no standards; individually malformed
// entries inside an otherwise valid list are counted in Skipped.
type StandardsResult struct {
	Standards []AssessmentStandard
	Skipped   int
	Err       error
}

// Malformed reports whether the list as a whole could not be parsed.
func (r StandardsResult) Malformed() bool { return r.Err != nil }

// Contains reports whether code is one of the parsed standards.
func (r StandardsResult) Contains(code string) bool {
	for _, s := range r.Standards {
		if s.Code == code {
			return true
		}
	}
	return false
}

// ParseStandards decodes a JSON array of assessment standards. Entries may be
// objects with a "code" field or bare code strings; anything else is skipped.
// An empty input is a valid empty list.
func ParseStandards(raw string) StandardsResult {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return StandardsResult{}
	}

	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return StandardsResult{Err: fmt.Errorf("decode assessment standards: %w", err)}
	}

	var res StandardsResult
	for _, e := range entries {
		var std AssessmentStandard
		if err := json.Unmarshal(e, &std); err == nil && strings.TrimSpace(std.Code) != "" {
			std.Code = strings.TrimSpace(std.Code)
			res.Standards = append(res.Standards, std)
			continue
		}
		var code string
		if err := json.Unmarshal(e, &code); err == nil && strings.TrimSpace(code) != "" {
			res.Standards = append(res.Standards, AssessmentStandard{Code: strings.TrimSpace(code)})
			continue
		}
		res.Skipped++
	}
	return res
}

// EncodeStandards serializes standards in the catalog's storage format.
func EncodeStandards(stds []AssessmentStandard) (string, error) {
	if len(stds) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(stds)
	if err != nil {
		return "", fmt.Errorf("encode assessment standards: %w", err)
	}
	return string(b), nil
}
