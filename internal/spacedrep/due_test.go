package spacedrep

import (
	"testing"
	"time"
)

func TestIsOverdue(t *testing.T) {
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	if (DueRecord{DueAt: now.Add(time.Hour)}).IsOverdue(now) {
		t.Error("expected not overdue before due date")
	}
	if (DueRecord{DueAt: now}).IsOverdue(now) {
		t.Error("expected not overdue exactly at due date")
	}
	if !(DueRecord{DueAt: now.Add(-time.Minute)}).IsOverdue(now) {
		t.Error("expected overdue after due date")
	}
}

func TestIsUpcoming(t *testing.T) {
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	window := 14 * Day
	tests := []struct {
		name  string
		dueAt time.Time
		want  bool
	}{
		{"past", now.Add(-time.Hour), false},
		{"now", now, true},
		{"inside window", now.Add(3 * Day), true},
		{"window edge", now.Add(window), true},
		{"beyond window", now.Add(window + time.Second), false},
	}
	for _, tt := range tests {
		if got := (DueRecord{DueAt: tt.dueAt}).IsUpcoming(now, window); got != tt.want {
			t.Errorf("%s: IsUpcoming() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestDaysOverdue_Floors(t *testing.T) {
	due := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		now  time.Time
		want int
	}{
		{due.Add(-Day), 0},
		{due, 0},
		{due.Add(23 * time.Hour), 0},
		{due.Add(Day), 1},
		{due.Add(10*Day + 20*time.Hour), 10},
	}
	for _, tt := range tests {
		if got := (DueRecord{DueAt: due}).DaysOverdue(tt.now); got != tt.want {
			t.Errorf("DaysOverdue(%v) = %d, want %d", tt.now, got, tt.want)
		}
	}
}

func TestDaysUntilDue_Ceils(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		dueAt time.Time
		want  int
	}{
		{now.Add(-Day), 0},
		{now, 0},
		{now.Add(time.Minute), 1},
		{now.Add(Day), 1},
		{now.Add(108 * time.Hour), 5},
	}
	for _, tt := range tests {
		if got := (DueRecord{DueAt: tt.dueAt}).DaysUntilDue(now); got != tt.want {
			t.Errorf("DaysUntilDue(%v) = %d, want %d", tt.dueAt, got, tt.want)
		}
	}
}

func TestDaysSince(t *testing.T) {
	now := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	if got := DaysSince(now.Add(-36*time.Hour), now); got != 1 {
		t.Errorf("DaysSince() = %d, want 1", got)
	}
	if got := DaysSince(now, now); got != 0 {
		t.Errorf("DaysSince(now) = %d, want 0", got)
	}
}
