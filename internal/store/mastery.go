package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/schoolofai/lessonreview/internal/mastery"
)

// GetMasteryMap returns the student's mastery scores for the course keyed
// by mastery key.
func (s *Store) GetMasteryMap(ctx context.Context, studentID, courseID string) (mastery.Scores, error) {
	query, args := s.builder().
		Select("mastery_key", "score").
		From(entsql.Table(tableMastery)).
		Where(entsql.And(
			entsql.EQ("student_id", studentID),
			entsql.EQ("course_id", courseID),
		)).
		Query()
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query mastery: %w", err)
	}
	defer rows.Close()

	scores := mastery.Scores{}
	for rows.Next() {
		var (
			key   string
			score float64
		)
		if err := rows.Scan(&key, &score); err != nil {
			return nil, fmt.Errorf("scan mastery: %w", err)
		}
		scores[key] = score
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate mastery: %w", err)
	}
	return scores, nil
}

// SetMastery records the student's score for a mastery key.
func (s *Store) SetMastery(ctx context.Context, studentID, courseID, key string, score float64) error {
	if studentID == "" || courseID == "" || key == "" {
		return fmt.Errorf("set mastery: student, course and key are required")
	}
	if score < 0 || score > 1 {
		return fmt.Errorf("set mastery %s: score %v outside [0, 1]", key, score)
	}
	ins := s.builder().
		Insert(tableMastery).
		Columns("student_id", "course_id", "mastery_key", "score").
		Values(studentID, courseID, key, score).
		OnConflict(
			entsql.ConflictColumns("student_id", "course_id", "mastery_key"),
			entsql.ResolveWithNewValues(),
		)
	if err := s.exec(ctx, ins); err != nil {
		return fmt.Errorf("set mastery %s: %w", key, err)
	}
	return nil
}
