package lessons

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolofai/lessonreview/internal/mastery"
	"github.com/schoolofai/lessonreview/internal/spacedrep"
)

var testNow = time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)

type fakeSource struct {
	templates      []Template
	completions    []Completion
	lessonsErr     error
	sessionsErr    error
	lessonCalls    atomic.Int32
	completionCall atomic.Int32
}

func (f *fakeSource) ListPublishedLessons(_ context.Context, _ string) ([]Template, error) {
	f.lessonCalls.Add(1)
	return f.templates, f.lessonsErr
}

func (f *fakeSource) ListCompletedSessions(_ context.Context, _, _ string) ([]Completion, error) {
	f.completionCall.Add(1)
	return f.completions, f.sessionsErr
}

func enriched(ref string, daysOverdue int, score float64) spacedrep.EnrichedOutcome {
	return spacedrep.EnrichedOutcome{
		OutcomeRef:     ref,
		DueAt:          testNow.Add(-time.Duration(daysOverdue) * spacedrep.Day),
		DaysOverdue:    daysOverdue,
		CurrentMastery: score,
		MasteryTier:    mastery.TierFor(score),
	}
}

func published(id string, minutes int, refs ...string) Template {
	return Template{ID: id, Title: "Lesson " + id, CourseID: "c1", Status: StatusPublished, Coverage: Covered(refs...), EstimatedMinutes: minutes}
}

func TestMatch_IntersectionAndAverages(t *testing.T) {
	templates := []Template{
		published("L1", 20, "O1", "O2", "O9"),
		published("L2", 15, "O3"),
	}
	completions := []Completion{
		{LessonID: "L1", CompletedAt: testNow.Add(-12 * spacedrep.Day)},
		{LessonID: "L2", CompletedAt: testNow.Add(-1 * spacedrep.Day)},
	}
	due := []spacedrep.EnrichedOutcome{enriched("O1", 10, 0.2), enriched("O2", 4, 0.6), enriched("O7", 30, 0.0)}

	res := Match(templates, completions, due, testNow)

	require.Len(t, res.Candidates, 1)
	c := res.Candidates[0]
	assert.Equal(t, "L1", c.LessonID)
	assert.Equal(t, []string{"O1", "O2"}, c.OutcomeRefs())
	assert.InDelta(t, 0.4, c.AverageMastery, 1e-9, "average over intersecting outcomes only")
	assert.InDelta(t, 7.0, c.AverageDaysOverdue, 1e-9)
	require.NotNil(t, c.DaysSinceCompleted)
	assert.Equal(t, 12, *c.DaysSinceCompleted)
	assert.Equal(t, 20, c.EstimatedMinutes)
	assert.NotEmpty(t, c.ReasonText)
}

func TestMatch_NeverCompletedExcluded(t *testing.T) {
	templates := []Template{published("L1", 10, "O1"), published("L2", 10, "O1")}
	completions := []Completion{{LessonID: "L2", CompletedAt: testNow.Add(-spacedrep.Day)}}

	res := Match(templates, completions, []spacedrep.EnrichedOutcome{enriched("O1", 3, 0.5)}, testNow)

	require.Len(t, res.Candidates, 1)
	assert.Equal(t, "L2", res.Candidates[0].LessonID)
}

func TestMatch_MostRecentCompletionWins(t *testing.T) {
	older := testNow.Add(-40 * spacedrep.Day)
	newer := testNow.Add(-3 * spacedrep.Day)
	completions := []Completion{
		{LessonID: "L1", CompletedAt: newer},
		{LessonID: "L1", CompletedAt: older},
	}
	res := Match([]Template{published("L1", 10, "O1")}, completions, []spacedrep.EnrichedOutcome{enriched("O1", 1, 0.5)}, testNow)

	require.Len(t, res.Candidates, 1)
	assert.True(t, res.Candidates[0].LastCompletedAt.Equal(newer))
	assert.Equal(t, 3, *res.Candidates[0].DaysSinceCompleted)
}

func TestMatch_MalformedCoverageSkipped(t *testing.T) {
	bad := Template{ID: "Lbad", Status: StatusPublished, Coverage: ParseCoverage(`{oops`)}
	templates := []Template{bad, published("L1", 10, "O1")}
	completions := []Completion{
		{LessonID: "Lbad", CompletedAt: testNow.Add(-spacedrep.Day)},
		{LessonID: "L1", CompletedAt: testNow.Add(-spacedrep.Day)},
	}

	res := Match(templates, completions, []spacedrep.EnrichedOutcome{enriched("O1", 1, 0.5)}, testNow)

	require.Len(t, res.Candidates, 1)
	assert.Equal(t, "L1", res.Candidates[0].LessonID)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, "Lbad", res.Skipped[0].LessonID)
	assert.Error(t, res.Skipped[0].Err)
}

func TestMatch_DraftsAndDuplicatesIgnored(t *testing.T) {
	draft := published("L0", 10, "O1")
	draft.Status = StatusDraft
	templates := []Template{draft, published("L1", 10, "O1"), published("L1", 10, "O1")}
	completions := []Completion{
		{LessonID: "L0", CompletedAt: testNow.Add(-spacedrep.Day)},
		{LessonID: "L1", CompletedAt: testNow.Add(-spacedrep.Day)},
	}

	res := Match(templates, completions, []spacedrep.EnrichedOutcome{enriched("O1", 1, 0.5)}, testNow)

	require.Len(t, res.Candidates, 1)
	assert.Equal(t, "L1", res.Candidates[0].LessonID)
}

func TestLatestCompletions_IgnoresZeroValues(t *testing.T) {
	latest := LatestCompletions([]Completion{
		{LessonID: "", CompletedAt: testNow},
		{LessonID: "L1"},
		{LessonID: "L2", CompletedAt: testNow},
	})
	assert.Len(t, latest, 1)
	assert.Contains(t, latest, "L2")
}

func TestFindLessonsForOutcomes_FetchesBoth(t *testing.T) {
	src := &fakeSource{
		templates:   []Template{published("L1", 25, "AS1.1")},
		completions: []Completion{{LessonID: "L1", CompletedAt: testNow.Add(-8 * spacedrep.Day)}},
	}
	m := NewMatcher(src, nil, func() time.Time { return testNow })

	got, err := m.FindLessonsForOutcomes(context.Background(), []spacedrep.EnrichedOutcome{enriched("AS1.1", 2, 0.7)}, "c1", "s1")

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int32(1), src.lessonCalls.Load())
	assert.Equal(t, int32(1), src.completionCall.Load())
	assert.Equal(t, 8, *got[0].DaysSinceCompleted)
}

func TestFindLessonsForOutcomes_NoOutcomesNoIO(t *testing.T) {
	src := &fakeSource{}
	got, err := NewMatcher(src, nil, nil).FindLessonsForOutcomes(context.Background(), nil, "c1", "s1")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Zero(t, src.lessonCalls.Load())
	assert.Zero(t, src.completionCall.Load())
}

func TestFindLessonsForOutcomes_Errors(t *testing.T) {
	boom := errors.New("boom")
	due := []spacedrep.EnrichedOutcome{enriched("O1", 1, 0.5)}

	_, err := NewMatcher(&fakeSource{lessonsErr: boom}, nil, nil).FindLessonsForOutcomes(context.Background(), due, "c1", "s1")
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "list published lessons")

	_, err = NewMatcher(&fakeSource{sessionsErr: boom}, nil, nil).FindLessonsForOutcomes(context.Background(), due, "c1", "s1")
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "list completed sessions")
}
