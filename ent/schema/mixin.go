package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
	"entgo.io/ent/schema/mixin"
)

// LearnerMixin scopes a row to one learner in one course. Every
// per-learner entity should include it.
type LearnerMixin struct {
	mixin.Schema
}

func (LearnerMixin) Fields() []ent.Field {
	return []ent.Field{
		field.String("student_id").NotEmpty(),
		field.String("course_id").NotEmpty(),
	}
}

func (LearnerMixin) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("student_id", "course_id"),
	}
}
