package lessons

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/schoolofai/lessonreview/internal/logger"
	"github.com/schoolofai/lessonreview/internal/mastery"
	"github.com/schoolofai/lessonreview/internal/spacedrep"
)

// Source provides the lesson catalog and a learner's completed sessions.
type Source interface {
	ListPublishedLessons(ctx context.Context, courseID string) ([]Template, error)
	ListCompletedSessions(ctx context.Context, studentID, courseID string) ([]Completion, error)
}

// Matcher finds previously completed lessons covering due outcomes.
type Matcher struct {
	source Source
	log    *logger.Logger
	now    func() time.Time
}

// NewMatcher creates a Matcher. now defaults to time.Now.
func NewMatcher(source Source, log *logger.Logger, now func() time.Time) *Matcher {
	if log == nil {
		log = logger.Nop()
	}
	if now == nil {
		now = time.Now
	}
	return &Matcher{source: source, log: log, now: now}
}

// FindLessonsForOutcomes loads the course's published lessons and the
// student's completions concurrently, then returns candidates in catalog
// order. Lessons never completed by the student are excluded.
func (m *Matcher) FindLessonsForOutcomes(ctx context.Context, enriched []spacedrep.EnrichedOutcome, courseID, studentID string) ([]Candidate, error) {
	if len(enriched) == 0 {
		return nil, nil
	}

	var (
		templates   []Template
		completions []Completion
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		templates, err = m.source.ListPublishedLessons(gctx, courseID)
		if err != nil {
			return fmt.Errorf("list published lessons: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		completions, err = m.source.ListCompletedSessions(gctx, studentID, courseID)
		if err != nil {
			return fmt.Errorf("list completed sessions: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := Match(templates, completions, enriched, m.now())
	for _, s := range res.Skipped {
		m.log.Warn("skipping lesson with unreadable outcome coverage",
			"lesson_id", s.LessonID, "course_id", courseID, "error", s.Err)
	}
	return res.Candidates, nil
}

// Skipped names a lesson left out because its coverage was malformed.
type Skipped struct {
	LessonID string
	Err      error
}

// MatchResult is the output of Match.
type MatchResult struct {
	Candidates []Candidate
	Skipped    []Skipped
}

// Match intersects each published template's coverage with the enriched
// outcomes and keeps templates the learner has completed at least once.
func Match(templates []Template, completions []Completion, enriched []spacedrep.EnrichedOutcome, now time.Time) MatchResult {
	latest := LatestCompletions(completions)

	due := make(map[string]spacedrep.EnrichedOutcome, len(enriched))
	for _, e := range enriched {
		due[e.OutcomeRef] = e
	}

	var res MatchResult
	seen := make(map[string]bool, len(templates))
	for _, tpl := range templates {
		if tpl.Status != StatusPublished || seen[tpl.ID] {
			continue
		}
		if tpl.Coverage.Malformed() {
			res.Skipped = append(res.Skipped, Skipped{LessonID: tpl.ID, Err: tpl.Coverage.Err})
			continue
		}

		var hits []spacedrep.EnrichedOutcome
		for _, ref := range tpl.Coverage.Outcomes {
			if e, ok := due[ref]; ok {
				hits = append(hits, e)
			}
		}
		if len(hits) == 0 {
			continue
		}

		completedAt, ok := latest[tpl.ID]
		if !ok {
			continue
		}
		seen[tpl.ID] = true
		res.Candidates = append(res.Candidates, newCandidate(tpl, hits, completedAt, now))
	}
	return res
}

// LatestCompletions collapses completions to the most recent one per lesson.
func LatestCompletions(completions []Completion) map[string]time.Time {
	latest := make(map[string]time.Time, len(completions))
	for _, c := range completions {
		if c.LessonID == "" || c.CompletedAt.IsZero() {
			continue
		}
		if prev, ok := latest[c.LessonID]; !ok || c.CompletedAt.After(prev) {
			latest[c.LessonID] = c.CompletedAt
		}
	}
	return latest
}

func newCandidate(tpl Template, hits []spacedrep.EnrichedOutcome, completedAt, now time.Time) Candidate {
	scores := make([]float64, len(hits))
	totalDays := 0
	for i, h := range hits {
		scores[i] = h.CurrentMastery
		totalDays += h.DaysOverdue
	}
	avgMastery := mastery.Mean(scores)
	avgDays := float64(totalDays) / float64(len(hits))
	since := spacedrep.DaysSince(completedAt, now)

	return Candidate{
		LessonID:           tpl.ID,
		LessonTitle:        tpl.Title,
		EstimatedMinutes:   tpl.EstimatedMinutes,
		Outcomes:           hits,
		AverageMastery:     avgMastery,
		AverageDaysOverdue: avgDays,
		LastCompletedAt:    completedAt,
		DaysSinceCompleted: &since,
		ReasonText:         ReasonText(avgDays, avgMastery, since),
	}
}
