package outcome

import (
	"context"

	"github.com/schoolofai/lessonreview/internal/logger"
)

// Catalog looks up outcome records for a course in one batched call.
// A nil codes slice asks for every outcome of the course.
type Catalog interface {
	GetOutcomesByCodes(ctx context.Context, courseID string, codes []string) ([]Record, error)
}

// Mapper reconciles outcome references with the durable keys of the mastery
// store.
type Mapper struct {
	catalog Catalog
	log     *logger.Logger
}

// NewMapper creates a Mapper. A nil log discards diagnostics.
func NewMapper(catalog Catalog, log *logger.Logger) *Mapper {
	if log == nil {
		log = logger.Nop()
	}
	return &Mapper{catalog: catalog, log: log}
}

// BuildIDMapping maps each reference to its mastery key: plain outcome codes
// map to the outcome's durable id, assessment-standard codes map to
// "<durableId>#<code>" for the first outcome whose standards list them.
//
// Mapping is best-effort. References that cannot be resolved are left out of
// the result, and a failed catalog lookup yields an empty map. Callers treat
// missing entries as unknown mastery.
func (m *Mapper) BuildIDMapping(ctx context.Context, refs []string, courseID string) map[string]string {
	mapping := make(map[string]string)
	plain, standards := Partition(refs)
	if len(plain) == 0 && len(standards) == 0 {
		return mapping
	}

	// Standards can only be resolved by scanning their owning outcome, which
	// need not be referenced itself, so widen the lookup to the whole course.
	codes := plain
	if len(standards) > 0 {
		codes = nil
	}

	records, err := m.catalog.GetOutcomesByCodes(ctx, courseID, codes)
	if err != nil {
		m.log.Warn("outcome lookup failed, falling back to default mastery",
			"course_id", courseID, "refs", len(refs), "error", err)
		return make(map[string]string)
	}

	wanted := make(map[string]bool, len(plain))
	for _, p := range plain {
		wanted[p] = true
	}
	for _, rec := range records {
		if wanted[rec.Code] {
			if _, dup := mapping[rec.Code]; !dup {
				mapping[rec.Code] = rec.ID
			}
		}
	}

	if len(standards) == 0 {
		return mapping
	}

	parsed := make([]StandardsResult, len(records))
	for i, rec := range records {
		parsed[i] = rec.Standards()
		if parsed[i].Malformed() {
			m.log.Debug("skipping malformed assessment standards",
				"outcome_id", rec.ID, "error", parsed[i].Err)
		} else if parsed[i].Skipped > 0 {
			m.log.Debug("skipped malformed assessment standard entries",
				"outcome_id", rec.ID, "skipped", parsed[i].Skipped)
		}
	}

	for _, code := range standards {
		found := false
		for i, rec := range records {
			if parsed[i].Contains(code) {
				mapping[code] = CompositeKey(rec.ID, code)
				found = true
				break
			}
		}
		if !found {
			m.log.Warn("assessment standard not found in outcome catalog",
				"course_id", courseID, "code", code)
		}
	}
	return mapping
}
