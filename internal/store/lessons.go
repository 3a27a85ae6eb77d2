package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/schoolofai/lessonreview/internal/lessons"
)

// Session statuses.
const (
	SessionStarted   = "started"
	SessionCompleted = "completed"
	SessionAbandoned = "abandoned"
)

// Session is one learner's run through a lesson.
type Session struct {
	ID          string
	StudentID   string
	CourseID    string
	LessonID    string
	Status      string
	CompletedAt time.Time // zero unless completed
}

// ListPublishedLessons returns the course's published lesson templates,
// ordered by id. Coverage is normalized here; a lesson whose stored coverage
// cannot be read is returned with Coverage.Err set.
func (s *Store) ListPublishedLessons(ctx context.Context, courseID string) ([]lessons.Template, error) {
	query, args := s.builder().
		Select("id", "course_id", "title", "status", "outcome_coverage", "estimated_minutes").
		From(entsql.Table(tableLessons)).
		Where(entsql.And(
			entsql.EQ("course_id", courseID),
			entsql.EQ("status", string(lessons.StatusPublished)),
		)).
		OrderBy("id").
		Query()
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query lessons: %w", err)
	}
	defer rows.Close()

	var out []lessons.Template
	for rows.Next() {
		var (
			t        lessons.Template
			status   string
			coverage *string
		)
		if err := rows.Scan(&t.ID, &t.CourseID, &t.Title, &status, &coverage, &t.EstimatedMinutes); err != nil {
			return nil, fmt.Errorf("scan lesson: %w", err)
		}
		t.Status = lessons.Status(status)
		t.Coverage = lessons.ParseCoverage(deref(coverage))
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lessons: %w", err)
	}
	return out, nil
}

// UpsertLesson inserts or replaces a lesson template. rawCoverage is stored
// as given so either accepted coverage shape round-trips.
func (s *Store) UpsertLesson(ctx context.Context, t lessons.Template, rawCoverage string) error {
	if t.ID == "" || t.CourseID == "" {
		return fmt.Errorf("upsert lesson: id and course id are required")
	}
	status := t.Status
	if status == "" {
		status = lessons.StatusDraft
	}
	ins := s.builder().
		Insert(tableLessons).
		Columns("id", "course_id", "title", "status", "outcome_coverage", "estimated_minutes").
		Values(t.ID, t.CourseID, t.Title, string(status), rawCoverage, t.EstimatedMinutes).
		OnConflict(entsql.ConflictColumns("id"), entsql.ResolveWithNewValues())
	if err := s.exec(ctx, ins); err != nil {
		return fmt.Errorf("upsert lesson %s: %w", t.ID, err)
	}
	return nil
}

// ListCompletedSessions returns one completion per completed session of
// the student in the course. Rows with an unreadable timestamp are skipped.
func (s *Store) ListCompletedSessions(ctx context.Context, studentID, courseID string) ([]lessons.Completion, error) {
	query, args := s.builder().
		Select("lesson_id", "completed_at").
		From(entsql.Table(tableSessions)).
		Where(entsql.And(
			entsql.EQ("student_id", studentID),
			entsql.EQ("course_id", courseID),
			entsql.EQ("status", SessionCompleted),
		)).
		OrderBy("completed_at").
		Query()
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []lessons.Completion
	for rows.Next() {
		var (
			lessonID string
			at       *string
		)
		if err := rows.Scan(&lessonID, &at); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		completedAt, err := parseTime(deref(at))
		if err != nil {
			s.log.Warn("skipping completed session without a valid timestamp",
				"student_id", studentID, "lesson_id", lessonID, "error", err)
			continue
		}
		out = append(out, lessons.Completion{LessonID: lessonID, CompletedAt: completedAt})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return out, nil
}

// RecordSession inserts or replaces a session.
func (s *Store) RecordSession(ctx context.Context, sess Session) error {
	if sess.ID == "" || sess.StudentID == "" || sess.CourseID == "" || sess.LessonID == "" {
		return fmt.Errorf("record session: id, student, course and lesson are required")
	}
	status := sess.Status
	if status == "" {
		status = SessionCompleted
	}
	completedAt := ""
	if status == SessionCompleted {
		if sess.CompletedAt.IsZero() {
			return fmt.Errorf("record session %s: completed session needs a completion time", sess.ID)
		}
		completedAt = formatTime(sess.CompletedAt)
	}
	ins := s.builder().
		Insert(tableSessions).
		Columns("id", "student_id", "course_id", "lesson_id", "status", "completed_at").
		Values(sess.ID, sess.StudentID, sess.CourseID, sess.LessonID, status, completedAt).
		OnConflict(entsql.ConflictColumns("id"), entsql.ResolveWithNewValues())
	if err := s.exec(ctx, ins); err != nil {
		return fmt.Errorf("record session %s: %w", sess.ID, err)
	}
	return nil
}
