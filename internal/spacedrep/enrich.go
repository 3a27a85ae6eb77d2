package spacedrep

import (
	"time"

	"github.com/schoolofai/lessonreview/internal/mastery"
)

// EnrichedOutcome is a due outcome annotated with its current mastery.
type EnrichedOutcome struct {
	OutcomeRef     string       `json:"outcome_ref"`
	DueAt          time.Time    `json:"due_at"`
	DaysOverdue    int          `json:"days_overdue"`
	DaysUntilDue   int          `json:"days_until_due"`
	CurrentMastery float64      `json:"current_mastery"`
	MasteryTier    mastery.Tier `json:"mastery_tier"`
	// Tracked is false when CurrentMastery is the unknown default.
	Tracked bool `json:"tracked"`
}

// EnrichOverdue annotates overdue records with mastery scores. mapping takes
// outcome references to mastery keys; unmapped or unscored references get
// mastery.DefaultScore.
func EnrichOverdue(records []DueRecord, scores mastery.Scores, mapping map[string]string, now time.Time) []EnrichedOutcome {
	out := enrich(records, scores, mapping)
	for i := range out {
		out[i].DaysOverdue = DueRecord{DueAt: out[i].DueAt}.DaysOverdue(now)
	}
	return out
}

// EnrichUpcoming annotates not-yet-due records with mastery scores and the
// number of days until each falls due.
func EnrichUpcoming(records []DueRecord, scores mastery.Scores, mapping map[string]string, now time.Time) []EnrichedOutcome {
	out := enrich(records, scores, mapping)
	for i := range out {
		out[i].DaysUntilDue = DueRecord{DueAt: out[i].DueAt}.DaysUntilDue(now)
	}
	return out
}

// enrich collapses duplicate references to their earliest due date, keeping
// first-seen order.
func enrich(records []DueRecord, scores mastery.Scores, mapping map[string]string) []EnrichedOutcome {
	index := make(map[string]int, len(records))
	out := make([]EnrichedOutcome, 0, len(records))
	for _, r := range records {
		if r.OutcomeRef == "" {
			continue
		}
		if i, ok := index[r.OutcomeRef]; ok {
			if r.DueAt.Before(out[i].DueAt) {
				out[i].DueAt = r.DueAt
			}
			continue
		}
		score, tracked := scores.Resolve(mapping, r.OutcomeRef)
		index[r.OutcomeRef] = len(out)
		out = append(out, EnrichedOutcome{
			OutcomeRef:     r.OutcomeRef,
			DueAt:          r.DueAt,
			CurrentMastery: score,
			MasteryTier:    mastery.TierFor(score),
			Tracked:        tracked,
		})
	}
	return out
}

// Refs returns the outcome references of records in order.
func Refs(records []DueRecord) []string {
	refs := make([]string, len(records))
	for i, r := range records {
		refs[i] = r.OutcomeRef
	}
	return refs
}
