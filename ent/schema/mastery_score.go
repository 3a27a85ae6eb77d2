package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// MasteryScore is a learner's EMA mastery for one mastery key.
type MasteryScore struct {
	ent.Schema
}

func (MasteryScore) Mixin() []ent.Mixin {
	return []ent.Mixin{LearnerMixin{}}
}

func (MasteryScore) Fields() []ent.Field {
	return []ent.Field{
		field.String("mastery_key").NotEmpty().
			Comment("Outcome id, or <id>#<code> for an assessment standard"),
		field.Float("score").Min(0).Max(1),
	}
}

func (MasteryScore) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("student_id", "course_id", "mastery_key").Unique(),
	}
}
