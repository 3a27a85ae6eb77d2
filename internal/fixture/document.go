// Package fixture loads seed documents describing a course catalog and
// learner history, and writes them through the store.
package fixture

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/schoolofai/lessonreview/internal/outcome"
)

// Document is one course's seed data.
type Document struct {
	Course   string    `json:"course"`
	Outcomes []Outcome `json:"outcomes"`
	Lessons  []Lesson  `json:"lessons"`
	Learners []Learner `json:"learners"`
}

// Outcome is a catalog outcome. A missing ID is generated on import.
type Outcome struct {
	ID        string                       `json:"id"`
	Code      string                       `json:"code"`
	Title     string                       `json:"title"`
	Standards []outcome.AssessmentStandard `json:"standards"`
}

// Lesson is a lesson template. Status defaults to published.
type Lesson struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Status           string   `json:"status"`
	Coverage         []string `json:"coverage"`
	EstimatedMinutes int      `json:"estimated_minutes"`
}

// Learner is one student's history in the course.
type Learner struct {
	Student  string    `json:"student"`
	Sessions []Session `json:"sessions"`
	Due      []Due     `json:"due"`
	Mastery  []Mastery `json:"mastery"`
}

// Session is a lesson run. Exactly one of CompletedAt (RFC 3339) or
// CompletedDaysAgo dates a completed session.
type Session struct {
	ID               string `json:"id"`
	Lesson           string `json:"lesson"`
	Status           string `json:"status"`
	CompletedAt      string `json:"completed_at"`
	CompletedDaysAgo *int   `json:"completed_days_ago"`
}

// Due schedules an outcome reference. DueInDays is relative to the import
// time; negative values are already overdue.
type Due struct {
	Outcome   string `json:"outcome"`
	DueAt     string `json:"due_at"`
	DueInDays *int   `json:"due_in_days"`
}

// Mastery is a score for an outcome code, or for one of its assessment
// standards when Standard is set.
type Mastery struct {
	Outcome  string  `json:"outcome"`
	Standard string  `json:"standard"`
	Score    float64 `json:"score"`
}

// Format is a seed document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks the format from a file extension. Unknown extensions are
// read as YAML, which also accepts JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	default:
		return FormatYAML
	}
}

// Load reads and parses the seed document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	doc, err := Parse(data, FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes and validates a seed document.
func Parse(data []byte, format Format) (*Document, error) {
	raw := data
	if format == FormatYAML {
		var v any
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("convert yaml: %w", err)
		}
		raw = b
	}

	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	if err := validate(generic); err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return &doc, nil
}
