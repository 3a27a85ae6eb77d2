package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// LessonTemplate is an authored lesson in a course catalog.
type LessonTemplate struct {
	ent.Schema
}

func (LessonTemplate) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").NotEmpty(),
		field.String("course_id").NotEmpty(),
		field.String("title").NotEmpty(),
		field.String("status").NotEmpty().
			Comment("draft or published"),
		field.Text("outcome_coverage").
			Optional().
			Comment("Covered outcome references as stored by the authoring tool"),
		field.Int("estimated_minutes").NonNegative(),
	}
}

func (LessonTemplate) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("course_id", "status"),
	}
}
