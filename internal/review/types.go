package review

import (
	"context"

	"github.com/schoolofai/lessonreview/internal/lessons"
	"github.com/schoolofai/lessonreview/internal/mastery"
	"github.com/schoolofai/lessonreview/internal/outcome"
	"github.com/schoolofai/lessonreview/internal/priority"
	"github.com/schoolofai/lessonreview/internal/spacedrep"
)

// DueSource lists outcomes that are due, or about to be, for a learner.
type DueSource interface {
	ListOverdueOutcomes(ctx context.Context, studentID, courseID string) ([]spacedrep.DueRecord, error)
	ListUpcomingOutcomes(ctx context.Context, studentID, courseID string, daysAhead int) ([]spacedrep.DueRecord, error)
}

// MasterySource returns a learner's mastery scores keyed by mastery key.
type MasterySource interface {
	GetMasteryMap(ctx context.Context, studentID, courseID string) (mastery.Scores, error)
}

// Store bundles every collaborator the service reads from.
type Store interface {
	DueSource
	MasterySource
	outcome.Catalog
	lessons.Source
}

// Recommendation is one previously taught lesson suggested for review.
type Recommendation struct {
	LessonID           string                      `json:"lesson_id"`
	LessonTitle        string                      `json:"lesson_title"`
	Priority           int                         `json:"priority"`
	Urgency            priority.Urgency            `json:"urgency_tier"`
	OverdueOutcomes    []spacedrep.EnrichedOutcome `json:"overdue_outcomes"`
	AverageMastery     float64                     `json:"average_mastery"`
	DaysSinceCompleted *int                        `json:"days_since_completed"`
	EstimatedMinutes   int                         `json:"estimated_minutes"`
	ReasonText         string                      `json:"reason_text"`
}

// UpcomingReview is a lesson whose outcomes fall due soon.
type UpcomingReview struct {
	Recommendation
	// EarliestDueAt is the soonest due date among the lesson's outcomes,
	// formatted as RFC 3339 in UTC.
	EarliestDueAt string `json:"earliest_due_at"`
	DaysUntilDue  int    `json:"days_until_due"`
}

// Stats summarizes a learner's review backlog for a course.
type Stats struct {
	TotalOverdueOutcomes   int                      `json:"total_overdue_outcomes"`
	CriticalCount          int                      `json:"critical_count"`
	LessonsToReview        int                      `json:"lessons_to_review"`
	EstimatedReviewMinutes int                      `json:"estimated_review_time"`
	TierBreakdown          map[priority.Urgency]int `json:"tier_breakdown"`
	Recommendations        []Recommendation         `json:"recommendations"`
}
