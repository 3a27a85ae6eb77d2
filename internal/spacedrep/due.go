package spacedrep

import (
	"math"
	"time"
)

// Day is the unit all spacing arithmetic is done in.
const Day = 24 * time.Hour

// DueRecord is the scheduled next review for one outcome reference.
type DueRecord struct {
	OutcomeRef string    `json:"outcome_ref"`
	DueAt      time.Time `json:"due_at"`
}

// IsOverdue returns true if the due date has passed.
func (d DueRecord) IsOverdue(now time.Time) bool {
	return d.DueAt.Before(now)
}

// IsUpcoming returns true if the record is not yet due and falls due within
// the window.
func (d DueRecord) IsUpcoming(now time.Time, window time.Duration) bool {
	return !d.DueAt.Before(now) && !d.DueAt.After(now.Add(window))
}

// DaysOverdue returns whole days past due, floored. Returns 0 if not yet due.
func (d DueRecord) DaysOverdue(now time.Time) int {
	if !now.After(d.DueAt) {
		return 0
	}
	return int(math.Floor(float64(now.Sub(d.DueAt)) / float64(Day)))
}

// DaysUntilDue returns days until the due date, rounded up. Returns 0 if
// already due.
func (d DueRecord) DaysUntilDue(now time.Time) int {
	if !d.DueAt.After(now) {
		return 0
	}
	return int(math.Ceil(float64(d.DueAt.Sub(now)) / float64(Day)))
}

// DaysSince returns whole days elapsed since t, floored.
func DaysSince(t, now time.Time) int {
	return int(math.Floor(float64(now.Sub(t)) / float64(Day)))
}
