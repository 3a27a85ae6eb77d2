package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// OutcomeSchedule holds the next review date for one outcome reference.
type OutcomeSchedule struct {
	ent.Schema
}

func (OutcomeSchedule) Mixin() []ent.Mixin {
	return []ent.Mixin{LearnerMixin{}}
}

func (OutcomeSchedule) Fields() []ent.Field {
	return []ent.Field{
		field.String("outcome_ref").NotEmpty(),
		field.String("due_at").NotEmpty().
			Comment("Fixed-width UTC timestamp, compared lexicographically"),
	}
}

func (OutcomeSchedule) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("student_id", "course_id", "outcome_ref").Unique(),
		index.Fields("due_at"),
	}
}
