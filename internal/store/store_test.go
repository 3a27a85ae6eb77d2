package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolofai/lessonreview/internal/lessons"
	"github.com/schoolofai/lessonreview/internal/outcome"
	"github.com/schoolofai/lessonreview/internal/spacedrep"
)

var testNow = time.Date(2025, 5, 12, 9, 30, 0, 0, time.UTC)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	s, err := Open(dsn, WithClock(func() time.Time { return testNow }))
	require.NoError(t, err, "open test store")
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestTablesFromSchema(t *testing.T) {
	tables := Tables()
	require.Len(t, tables, 5)

	byName := map[string]int{}
	for i, tbl := range tables {
		byName[tbl.Name] = i
	}
	sched := tables[byName[tableSchedules]]
	require.Len(t, sched.PrimaryKey, 1)
	assert.Equal(t, "id", sched.PrimaryKey[0].Name)
	assert.True(t, sched.PrimaryKey[0].Increment)

	var unique bool
	for _, ix := range sched.Indexes {
		if ix.Unique && len(ix.Columns) == 3 {
			unique = true
		}
	}
	assert.True(t, unique, "schedule rows are unique per learner and reference")

	out := tables[byName[tableOutcomes]]
	require.Len(t, out.PrimaryKey, 1)
	assert.False(t, out.PrimaryKey[0].Increment)
}

func TestReopenKeepsData(t *testing.T) {
	path := t.TempDir() + "/review.db"
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.UpsertOutcome(ctx, outcome.Record{ID: "out_1", CourseID: "c1", Code: "O1"}))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.GetOutcomesByCodes(ctx, "c1", nil)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestGetOutcomesByCodes(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	stds, err := outcome.EncodeStandards([]outcome.AssessmentStandard{{Code: "AS1.1"}})
	require.NoError(t, err)
	require.NoError(t, s.UpsertOutcome(ctx, outcome.Record{ID: "out_1", CourseID: "c1", Code: "O1", Title: "Fractions", StandardsJSON: stds}))
	require.NoError(t, s.UpsertOutcome(ctx, outcome.Record{ID: "out_2", CourseID: "c1", Code: "O2"}))
	require.NoError(t, s.UpsertOutcome(ctx, outcome.Record{ID: "out_3", CourseID: "c2", Code: "O1"}))

	got, err := s.GetOutcomesByCodes(ctx, "c1", []string{"O1"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "out_1", got[0].ID)
	assert.Equal(t, "Fractions", got[0].Title)
	assert.True(t, got[0].Standards().Contains("AS1.1"))

	all, err := s.GetOutcomesByCodes(ctx, "c1", nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	none, err := s.GetOutcomesByCodes(ctx, "c1", []string{})
	require.NoError(t, err)
	assert.Empty(t, none)

	// Upsert replaces.
	require.NoError(t, s.UpsertOutcome(ctx, outcome.Record{ID: "out_2", CourseID: "c1", Code: "O2", Title: "Decimals"}))
	got, err = s.GetOutcomesByCodes(ctx, "c1", []string{"O2"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Decimals", got[0].Title)
}

func TestListPublishedLessons(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	pub := lessons.Template{ID: "L1", CourseID: "c1", Title: "One", Status: lessons.StatusPublished, EstimatedMinutes: 15}
	require.NoError(t, s.UpsertLesson(ctx, pub, `["O1","AS1.1"]`))
	wrapped := lessons.Template{ID: "L2", CourseID: "c1", Title: "Two", Status: lessons.StatusPublished}
	require.NoError(t, s.UpsertLesson(ctx, wrapped, `{"outcomes":["O2", 7, "O2"]}`))
	broken := lessons.Template{ID: "L3", CourseID: "c1", Title: "Three", Status: lessons.StatusPublished}
	require.NoError(t, s.UpsertLesson(ctx, broken, `{not json`))
	draft := lessons.Template{ID: "L4", CourseID: "c1", Title: "Draft", Status: lessons.StatusDraft}
	require.NoError(t, s.UpsertLesson(ctx, draft, `["O1"]`))

	got, err := s.ListPublishedLessons(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, []string{"O1", "AS1.1"}, got[0].Coverage.Outcomes)
	assert.Equal(t, 15, got[0].EstimatedMinutes)
	assert.Equal(t, []string{"O2"}, got[1].Coverage.Outcomes)
	assert.True(t, got[2].Coverage.Malformed())
}

func TestListCompletedSessions(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sessions := []Session{
		{ID: "s1", StudentID: "stu", CourseID: "c1", LessonID: "L1", Status: SessionCompleted, CompletedAt: testNow.Add(-48 * time.Hour)},
		{ID: "s2", StudentID: "stu", CourseID: "c1", LessonID: "L1", Status: SessionCompleted, CompletedAt: testNow.Add(-24 * time.Hour)},
		{ID: "s3", StudentID: "stu", CourseID: "c1", LessonID: "L2", Status: SessionStarted},
		{ID: "s4", StudentID: "other", CourseID: "c1", LessonID: "L3", Status: SessionCompleted, CompletedAt: testNow},
	}
	for _, sess := range sessions {
		require.NoError(t, s.RecordSession(ctx, sess))
	}

	got, err := s.ListCompletedSessions(ctx, "stu", "c1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	latest := lessons.LatestCompletions(got)
	assert.Equal(t, testNow.Add(-24*time.Hour), latest["L1"])
	_, ok := latest["L2"]
	assert.False(t, ok)
}

func TestRecordSessionRequiresCompletionTime(t *testing.T) {
	s := openTestStore(t)
	err := s.RecordSession(context.Background(), Session{ID: "s1", StudentID: "stu", CourseID: "c1", LessonID: "L1"})
	assert.Error(t, err)
}

func TestDueWindows(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	recs := []spacedrep.DueRecord{
		{OutcomeRef: "O1", DueAt: testNow.Add(-10 * spacedrep.Day)},
		{OutcomeRef: "O2", DueAt: testNow.Add(-time.Minute)},
		{OutcomeRef: "O3", DueAt: testNow.Add(3 * spacedrep.Day)},
		{OutcomeRef: "O4", DueAt: testNow.Add(30 * spacedrep.Day)},
	}
	for _, r := range recs {
		require.NoError(t, s.SetDue(ctx, "stu", "c1", r))
	}
	require.NoError(t, s.SetDue(ctx, "other", "c1", recs[0]))

	overdue, err := s.ListOverdueOutcomes(ctx, "stu", "c1")
	require.NoError(t, err)
	require.Len(t, overdue, 2)
	assert.Equal(t, "O1", overdue[0].OutcomeRef)
	assert.True(t, overdue[0].DueAt.Equal(recs[0].DueAt))
	assert.Equal(t, "O2", overdue[1].OutcomeRef)

	upcoming, err := s.ListUpcomingOutcomes(ctx, "stu", "c1", 14)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, "O3", upcoming[0].OutcomeRef)

	// Rescheduling replaces the earlier due date.
	require.NoError(t, s.SetDue(ctx, "stu", "c1", spacedrep.DueRecord{OutcomeRef: "O1", DueAt: testNow.Add(spacedrep.Day)}))
	overdue, err = s.ListOverdueOutcomes(ctx, "stu", "c1")
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, "O2", overdue[0].OutcomeRef)
}

func TestMasteryMap(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetMastery(ctx, "stu", "c1", "out_1", 0.2))
	require.NoError(t, s.SetMastery(ctx, "stu", "c1", "out_1#AS1.1", 0.7))
	require.NoError(t, s.SetMastery(ctx, "stu", "c1", "out_1", 0.25))
	require.NoError(t, s.SetMastery(ctx, "stu", "c2", "out_9", 0.9))
	assert.Error(t, s.SetMastery(ctx, "stu", "c1", "out_2", 1.5))

	scores, err := s.GetMasteryMap(ctx, "stu", "c1")
	require.NoError(t, err)
	assert.Len(t, scores, 2)
	assert.InDelta(t, 0.25, scores["out_1"], 1e-9)
	assert.InDelta(t, 0.7, scores["out_1#AS1.1"], 1e-9)

	empty, err := s.GetMasteryMap(ctx, "nobody", "c1")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestTimeFormatSortsChronologically(t *testing.T) {
	early := formatTime(time.Date(2025, 1, 2, 3, 4, 5, 0, time.FixedZone("x", 5*3600)))
	late := formatTime(time.Date(2025, 1, 2, 3, 4, 5, 123e6, time.UTC))
	assert.Less(t, early, late)
	assert.Len(t, early, len(late))

	back, err := parseTime(late)
	require.NoError(t, err)
	assert.True(t, back.Equal(time.Date(2025, 1, 2, 3, 4, 5, 123e6, time.UTC)))

	_, err = parseTime("yesterday")
	assert.Error(t, err)
}
