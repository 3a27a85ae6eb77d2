package lessons

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/schoolofai/lessonreview/internal/mastery"
)

// Overdue severity and recency buckets, in days.
const (
	overdueThreshold     = 7
	longOverdueThreshold = 14
	recentDays           = 7
	staleDays            = 30
)

// ReasonText explains why a lesson is being resurfaced. The text depends only
// on its inputs.
func ReasonText(avgDaysOverdue, avgMastery float64, daysSinceCompleted int) string {
	var parts []string
	if p := severityPhrase(avgDaysOverdue); p != "" {
		parts = append(parts, p)
	}
	parts = append(parts, fmt.Sprintf("%s (%d%%)", mastery.TierFor(avgMastery).Phrase(), percent(avgMastery)))
	parts = append(parts, recencyPhrase(daysSinceCompleted))
	return capitalize(strings.Join(parts, "; "))
}

func severityPhrase(days float64) string {
	d := int(days)
	switch {
	case days <= 0:
		return ""
	case days < overdueThreshold:
		return "just due for review"
	case days < longOverdueThreshold:
		return fmt.Sprintf("overdue by %d days", d)
	default:
		return fmt.Sprintf("long overdue (%d days)", d)
	}
}

func recencyPhrase(days int) string {
	switch {
	case days < recentDays:
		return "completed within the last week"
	case days < staleDays:
		return fmt.Sprintf("last completed %d days ago", days)
	default:
		return "not revisited in over a month"
	}
}

func percent(v float64) int {
	return int(v*100 + 0.5)
}

func capitalize(s string) string {
	for i, r := range s {
		return string(unicode.ToUpper(r)) + s[i+len(string(r)):]
	}
	return s
}
