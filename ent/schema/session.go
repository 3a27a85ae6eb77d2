package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Session records one learner's run through a lesson.
type Session struct {
	ent.Schema
}

func (Session) Mixin() []ent.Mixin {
	return []ent.Mixin{LearnerMixin{}}
}

func (Session) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").NotEmpty(),
		field.String("lesson_id").NotEmpty(),
		field.String("status").NotEmpty().
			Comment("started, completed or abandoned"),
		field.String("completed_at").
			Optional().
			Comment("Fixed-width UTC timestamp; empty unless completed"),
	}
}

func (Session) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("lesson_id"),
	}
}
