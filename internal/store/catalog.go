package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/schoolofai/lessonreview/internal/outcome"
)

// GetOutcomesByCodes returns the course's outcome records whose code is in
// codes, or every record of the course when codes is nil.
func (s *Store) GetOutcomesByCodes(ctx context.Context, courseID string, codes []string) ([]outcome.Record, error) {
	pred := entsql.EQ("course_id", courseID)
	if codes != nil {
		if len(codes) == 0 {
			return nil, nil
		}
		args := make([]any, len(codes))
		for i, c := range codes {
			args[i] = c
		}
		pred = entsql.And(pred, entsql.In("code", args...))
	}

	query, args := s.builder().
		Select("id", "course_id", "code", "title", "assessment_standards").
		From(entsql.Table(tableOutcomes)).
		Where(pred).
		OrderBy("id").
		Query()
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query outcomes: %w", err)
	}
	defer rows.Close()

	var out []outcome.Record
	for rows.Next() {
		var (
			r           outcome.Record
			title, stds *string
		)
		if err := rows.Scan(&r.ID, &r.CourseID, &r.Code, &title, &stds); err != nil {
			return nil, fmt.Errorf("scan outcome: %w", err)
		}
		r.Title = deref(title)
		r.StandardsJSON = deref(stds)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outcomes: %w", err)
	}
	return out, nil
}

// UpsertOutcome inserts or replaces a catalog outcome.
func (s *Store) UpsertOutcome(ctx context.Context, r outcome.Record) error {
	if r.ID == "" || r.CourseID == "" || r.Code == "" {
		return fmt.Errorf("upsert outcome: id, course id and code are required")
	}
	ins := s.builder().
		Insert(tableOutcomes).
		Columns("id", "course_id", "code", "title", "assessment_standards").
		Values(r.ID, r.CourseID, r.Code, r.Title, r.StandardsJSON).
		OnConflict(entsql.ConflictColumns("id"), entsql.ResolveWithNewValues())
	if err := s.exec(ctx, ins); err != nil {
		return fmt.Errorf("upsert outcome %s: %w", r.ID, err)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
