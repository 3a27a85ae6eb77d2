package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Outcome is a catalog learning outcome. Its id is the durable
// identifier mastery scores are keyed by.
type Outcome struct {
	ent.Schema
}

func (Outcome) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").NotEmpty(),
		field.String("course_id").NotEmpty(),
		field.String("code").NotEmpty(),
		field.String("title").Optional(),
		field.Text("assessment_standards").
			Optional().
			Comment("JSON array of {code, description} objects"),
	}
}

func (Outcome) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("course_id", "code"),
	}
}
