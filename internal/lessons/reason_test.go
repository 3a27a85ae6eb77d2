package lessons

import "testing"

func TestReasonText(t *testing.T) {
	tests := []struct {
		name    string
		days    float64
		mastery float64
		since   int
		want    string
	}{
		{"upcoming", 0, 0.65, 3, "Mastery is good (65%); completed within the last week"},
		{"just due", 2, 0.9, 10, "Just due for review; mastery is strong (90%); last completed 10 days ago"},
		{"overdue", 10, 0.2, 45, "Overdue by 10 days; mastery is low (20%); not revisited in over a month"},
		{"seven is overdue", 7, 0.5, 6, "Overdue by 7 days; mastery is still developing (50%); completed within the last week"},
		{"long overdue", 14, 0.3, 30, "Long overdue (14 days); mastery is low (30%); not revisited in over a month"},
		{"recency edge", 1, 0.4, 7, "Just due for review; mastery is still developing (40%); last completed 7 days ago"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReasonText(tt.days, tt.mastery, tt.since)
			if got != tt.want {
				t.Errorf("ReasonText() =\n  %q\nwant\n  %q", got, tt.want)
			}
		})
	}
}

func TestReasonText_Deterministic(t *testing.T) {
	a := ReasonText(3.5, 0.42, 12)
	b := ReasonText(3.5, 0.42, 12)
	if a != b {
		t.Errorf("ReasonText not deterministic: %q vs %q", a, b)
	}
}
