package lessons

import (
	"time"

	"github.com/schoolofai/lessonreview/internal/spacedrep"
)

// Status is a lesson template's publication state.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// Template is the subset of a lesson template used for review matching.
type Template struct {
	ID               string
	Title            string
	CourseID         string
	Status           Status
	Coverage         Coverage
	EstimatedMinutes int
}

// Completion is the most recent completed session for a lesson.
type Completion struct {
	LessonID    string
	CompletedAt time.Time
}

// Candidate is a previously completed lesson that covers at least one due
// outcome.
type Candidate struct {
	LessonID         string
	LessonTitle      string
	EstimatedMinutes int

	// Outcomes holds only the due outcomes this lesson covers, in the order
	// they appear in the lesson's coverage.
	Outcomes []spacedrep.EnrichedOutcome

	AverageMastery     float64
	AverageDaysOverdue float64
	LastCompletedAt    time.Time
	DaysSinceCompleted *int
	ReasonText         string
}

// OutcomeRefs returns the references of the candidate's matched outcomes.
func (c Candidate) OutcomeRefs() []string {
	refs := make([]string, len(c.Outcomes))
	for i, o := range c.Outcomes {
		refs[i] = o.OutcomeRef
	}
	return refs
}
