package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/schoolofai/lessonreview/internal/spacedrep"
)

// ListOverdueOutcomes returns the student's outcome schedules whose due date
// has passed, earliest first.
func (s *Store) ListOverdueOutcomes(ctx context.Context, studentID, courseID string) ([]spacedrep.DueRecord, error) {
	now := formatTime(s.now())
	return s.listDue(ctx, studentID, courseID, entsql.LT("due_at", now))
}

// ListUpcomingOutcomes returns schedules not yet due that fall due within
// daysAhead days, earliest first.
func (s *Store) ListUpcomingOutcomes(ctx context.Context, studentID, courseID string, daysAhead int) ([]spacedrep.DueRecord, error) {
	if daysAhead < 0 {
		daysAhead = 0
	}
	now := s.now()
	until := now.Add(time.Duration(daysAhead) * spacedrep.Day)
	return s.listDue(ctx, studentID, courseID, entsql.And(
		entsql.GTE("due_at", formatTime(now)),
		entsql.LTE("due_at", formatTime(until)),
	))
}

func (s *Store) listDue(ctx context.Context, studentID, courseID string, window *entsql.Predicate) ([]spacedrep.DueRecord, error) {
	query, args := s.builder().
		Select("outcome_ref", "due_at").
		From(entsql.Table(tableSchedules)).
		Where(entsql.And(
			entsql.EQ("student_id", studentID),
			entsql.EQ("course_id", courseID),
			window,
		)).
		OrderBy("due_at", "outcome_ref").
		Query()
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query schedules: %w", err)
	}
	defer rows.Close()

	var out []spacedrep.DueRecord
	for rows.Next() {
		var ref, due string
		if err := rows.Scan(&ref, &due); err != nil {
			return nil, fmt.Errorf("scan schedule: %w", err)
		}
		dueAt, err := parseTime(due)
		if err != nil {
			s.log.Warn("skipping outcome schedule with invalid due date",
				"student_id", studentID, "outcome_ref", ref, "error", err)
			continue
		}
		out = append(out, spacedrep.DueRecord{OutcomeRef: ref, DueAt: dueAt})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate schedules: %w", err)
	}
	return out, nil
}

// SetDue schedules the next review of an outcome reference, replacing any
// existing schedule for it.
func (s *Store) SetDue(ctx context.Context, studentID, courseID string, rec spacedrep.DueRecord) error {
	if studentID == "" || courseID == "" || rec.OutcomeRef == "" {
		return fmt.Errorf("set due: student, course and outcome reference are required")
	}
	ins := s.builder().
		Insert(tableSchedules).
		Columns("student_id", "course_id", "outcome_ref", "due_at").
		Values(studentID, courseID, rec.OutcomeRef, formatTime(rec.DueAt)).
		OnConflict(
			entsql.ConflictColumns("student_id", "course_id", "outcome_ref"),
			entsql.ResolveWithNewValues(),
		)
	if err := s.exec(ctx, ins); err != nil {
		return fmt.Errorf("set due %s: %w", rec.OutcomeRef, err)
	}
	return nil
}
