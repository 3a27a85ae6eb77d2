package fixture

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/schoolofai/lessonreview/internal/lessons"
	"github.com/schoolofai/lessonreview/internal/logger"
	"github.com/schoolofai/lessonreview/internal/outcome"
	"github.com/schoolofai/lessonreview/internal/spacedrep"
	"github.com/schoolofai/lessonreview/internal/store"
)

// Writer is the subset of the store the importer writes through.
type Writer interface {
	UpsertOutcome(ctx context.Context, r outcome.Record) error
	UpsertLesson(ctx context.Context, t lessons.Template, rawCoverage string) error
	RecordSession(ctx context.Context, s store.Session) error
	SetDue(ctx context.Context, studentID, courseID string, rec spacedrep.DueRecord) error
	SetMastery(ctx context.Context, studentID, courseID, key string, score float64) error
}

// Summary counts what an import wrote.
type Summary struct {
	Outcomes int `json:"outcomes"`
	Lessons  int `json:"lessons"`
	Sessions int `json:"sessions"`
	Due      int `json:"due"`
	Mastery  int `json:"mastery"`
}

func (s Summary) String() string {
	return fmt.Sprintf("%d outcomes, %d lessons, %d sessions, %d due dates, %d mastery scores",
		s.Outcomes, s.Lessons, s.Sessions, s.Due, s.Mastery)
}

// Importer writes seed documents. Relative dates resolve against now.
type Importer struct {
	w   Writer
	log *logger.Logger
	now func() time.Time
}

// NewImporter creates an Importer. A nil log discards output and a nil
// clock uses time.Now.
func NewImporter(w Writer, log *logger.Logger, now func() time.Time) *Importer {
	if log == nil {
		log = logger.Nop()
	}
	if now == nil {
		now = time.Now
	}
	return &Importer{w: w, log: log, now: now}
}

// Import writes doc and returns what was written. It stops at the first
// failed write.
func (im *Importer) Import(ctx context.Context, doc *Document) (Summary, error) {
	var sum Summary
	now := im.now()
	course := doc.Course

	ids := make(map[string]string, len(doc.Outcomes))
	for _, o := range doc.Outcomes {
		id := o.ID
		if id == "" {
			id = uuid.NewString()
		}
		stds, err := outcome.EncodeStandards(o.Standards)
		if err != nil {
			return sum, fmt.Errorf("outcome %s: %w", o.Code, err)
		}
		rec := outcome.Record{ID: id, CourseID: course, Code: o.Code, Title: o.Title, StandardsJSON: stds}
		if err := im.w.UpsertOutcome(ctx, rec); err != nil {
			return sum, err
		}
		ids[o.Code] = id
		sum.Outcomes++
	}

	for _, l := range doc.Lessons {
		status := lessons.Status(l.Status)
		if status == "" {
			status = lessons.StatusPublished
		}
		coverage, err := lessons.EncodeCoverage(l.Coverage)
		if err != nil {
			return sum, fmt.Errorf("lesson %s: %w", l.ID, err)
		}
		tpl := lessons.Template{
			ID: l.ID, Title: l.Title, CourseID: course,
			Status: status, EstimatedMinutes: l.EstimatedMinutes,
		}
		if err := im.w.UpsertLesson(ctx, tpl, coverage); err != nil {
			return sum, err
		}
		sum.Lessons++
	}

	for _, lr := range doc.Learners {
		if err := im.importLearner(ctx, course, lr, ids, now, &sum); err != nil {
			return sum, fmt.Errorf("learner %s: %w", lr.Student, err)
		}
	}

	im.log.Info("seed imported", "course_id", course,
		"outcomes", sum.Outcomes, "lessons", sum.Lessons, "sessions", sum.Sessions,
		"due", sum.Due, "mastery", sum.Mastery)
	return sum, nil
}

func (im *Importer) importLearner(ctx context.Context, course string, lr Learner, ids map[string]string, now time.Time, sum *Summary) error {
	for _, s := range lr.Sessions {
		sess := store.Session{
			ID: s.ID, StudentID: lr.Student, CourseID: course,
			LessonID: s.Lesson, Status: s.Status,
		}
		if sess.ID == "" {
			sess.ID = uuid.NewString()
		}
		if sess.Status == "" {
			sess.Status = store.SessionCompleted
		}
		if sess.Status == store.SessionCompleted {
			at, err := resolveTime(s.CompletedAt, s.CompletedDaysAgo, now, -1)
			if err != nil {
				return fmt.Errorf("session for %s: %w", s.Lesson, err)
			}
			sess.CompletedAt = at
		}
		if err := im.w.RecordSession(ctx, sess); err != nil {
			return err
		}
		sum.Sessions++
	}

	for _, d := range lr.Due {
		at, err := resolveTime(d.DueAt, d.DueInDays, now, 1)
		if err != nil {
			return fmt.Errorf("due %s: %w", d.Outcome, err)
		}
		if err := im.w.SetDue(ctx, lr.Student, course, spacedrep.DueRecord{OutcomeRef: d.Outcome, DueAt: at}); err != nil {
			return err
		}
		sum.Due++
	}

	for _, m := range lr.Mastery {
		id, ok := ids[m.Outcome]
		if !ok {
			return fmt.Errorf("mastery for unknown outcome %q", m.Outcome)
		}
		key := id
		if m.Standard != "" {
			key = outcome.CompositeKey(id, m.Standard)
		}
		if err := im.w.SetMastery(ctx, lr.Student, course, key, m.Score); err != nil {
			return err
		}
		sum.Mastery++
	}
	return nil
}

// resolveTime reads an absolute RFC 3339 time or a day offset from now in
// direction sign. Exactly one must be given.
func resolveTime(abs string, days *int, now time.Time, sign int) (time.Time, error) {
	switch {
	case abs != "" && days != nil:
		return time.Time{}, fmt.Errorf("give an absolute time or a day offset, not both")
	case abs != "":
		t, err := time.Parse(time.RFC3339, abs)
		if err != nil {
			return time.Time{}, fmt.Errorf("parse time: %w", err)
		}
		return t, nil
	case days != nil:
		return now.Add(time.Duration(sign*(*days)) * spacedrep.Day), nil
	default:
		return time.Time{}, fmt.Errorf("missing time")
	}
}
