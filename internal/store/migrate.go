package store

import (
	"context"
	"fmt"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	entschema "github.com/schoolofai/lessonreview/ent/schema"
)

// Table names.
const (
	tableOutcomes  = "outcomes"
	tableLessons   = "lesson_templates"
	tableSessions  = "sessions"
	tableSchedules = "outcome_schedules"
	tableMastery   = "mastery_scores"
)

// Tables returns the migration tables derived from the ent schema
// definitions.
func Tables() []*schema.Table {
	return []*schema.Table{
		tableFor(tableOutcomes, entschema.Outcome{}),
		tableFor(tableLessons, entschema.LessonTemplate{}),
		tableFor(tableSessions, entschema.Session{}),
		tableFor(tableSchedules, entschema.OutcomeSchedule{}),
		tableFor(tableMastery, entschema.MasteryScore{}),
	}
}

func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return err
	}
	return m.Create(ctx, Tables()...)
}

// tableFor builds a table from a schema's mixin and own fields and indexes.
// A string field named "id" becomes the primary key; schemas without one get
// an auto-increment integer id.
func tableFor(name string, s ent.Interface) *schema.Table {
	var (
		fields  []ent.Field
		indexes []ent.Index
	)
	for _, mx := range s.Mixin() {
		fields = append(fields, mx.Fields()...)
		indexes = append(indexes, mx.Indexes()...)
	}
	fields = append(fields, s.Fields()...)
	indexes = append(indexes, s.Indexes()...)

	t := schema.NewTable(name)
	byName := make(map[string]*schema.Column, len(fields)+1)
	for _, f := range fields {
		c := column(f.Descriptor())
		byName[c.Name] = c
		if c.Name == "id" {
			t.AddPrimary(c)
			continue
		}
		t.AddColumn(c)
	}
	if _, ok := byName["id"]; !ok {
		id := &schema.Column{Name: "id", Type: field.TypeInt, Increment: true}
		byName["id"] = id
		t.AddPrimary(id)
	}

	for _, ix := range indexes {
		d := ix.Descriptor()
		cols := make([]*schema.Column, 0, len(d.Fields))
		for _, f := range d.Fields {
			cols = append(cols, byName[f])
		}
		idxName := d.StorageKey
		if idxName == "" {
			idxName = name + "_" + strings.Join(d.Fields, "_")
		}
		t.Indexes = append(t.Indexes, &schema.Index{Name: idxName, Unique: d.Unique, Columns: cols})
	}
	return t
}

func column(d *field.Descriptor) *schema.Column {
	if d.Err != nil {
		panic(fmt.Sprintf("store: field %q: %v", d.Name, d.Err))
	}
	name := d.Name
	if d.StorageKey != "" {
		name = d.StorageKey
	}
	return &schema.Column{
		Name:     name,
		Type:     d.Info.Type,
		Size:     int64(d.Size),
		Unique:   d.Unique,
		Nullable: d.Optional || d.Nillable,
	}
}
