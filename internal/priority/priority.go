package priority

import (
	"math"
	"sort"
)

// Urgency is the coarse bucket a priority falls into.
type Urgency string

const (
	UrgencyCritical Urgency = "critical"
	UrgencyHigh     Urgency = "high"
	UrgencyMedium   Urgency = "medium"
	UrgencyLow      Urgency = "low"
)

// Priority bounds.
const (
	MinPriority = 1
	MaxPriority = 10
)

// Signal weights and caps.
const (
	perOutcomeWeight = 0.5
	outcomeCap       = 3.0
	overdueWeekScale = 7.0
	overdueWeight    = 2.0
	overdueCap       = 2.0
	masteryWeight    = 5.0
)

// Input carries the three signals a review priority is built from.
type Input struct {
	OverdueOutcomes    int
	AverageDaysOverdue float64
	AverageMastery     float64
}

// Breakdown exposes each weighted component next to the final values.
type Breakdown struct {
	OutcomeScore float64 `json:"outcome_score"`
	OverdueScore float64 `json:"overdue_score"`
	MasteryScore float64 `json:"mastery_score"`
	Raw          float64 `json:"raw"`
	Priority     int     `json:"priority"`
	Urgency      Urgency `json:"urgency"`
}

// Score computes the bounded priority and urgency for a candidate. The
// mastery deficit carries the most weight; breadth and recency are capped.
func Score(in Input) Breakdown {
	var b Breakdown
	b.OutcomeScore = math.Min(perOutcomeWeight*float64(in.OverdueOutcomes), outcomeCap)
	b.OverdueScore = math.Min((in.AverageDaysOverdue/overdueWeekScale)*overdueWeight, overdueCap)
	b.MasteryScore = (1 - in.AverageMastery) * masteryWeight
	b.Raw = b.OutcomeScore + b.OverdueScore + b.MasteryScore
	b.Priority = clamp(int(math.Round(b.Raw)), MinPriority, MaxPriority)
	b.Urgency = UrgencyFor(b.Priority)
	return b
}

// UrgencyFor maps a priority to its urgency tier.
func UrgencyFor(priority int) Urgency {
	switch {
	case priority >= 8:
		return UrgencyCritical
	case priority >= 6:
		return UrgencyHigh
	case priority >= 4:
		return UrgencyMedium
	default:
		return UrgencyLow
	}
}

// Rank sorts items by descending priority. Items with equal priority keep
// their input order.
func Rank[T any](items []T, priorityOf func(T) int) {
	sort.SliceStable(items, func(i, j int) bool {
		return priorityOf(items[i]) > priorityOf(items[j])
	})
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
