package theme

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/schoolofai/lessonreview/internal/mastery"
	"github.com/schoolofai/lessonreview/internal/priority"
)

// Color palette
var (
	Primary = lipgloss.Color("#8B5CF6") // Vivid Purple
	Accent  = lipgloss.Color("#F97316") // Orange
	Warning = lipgloss.Color("#EAB308") // Amber
	Success = lipgloss.Color("#22C55E") // Green
	Error   = lipgloss.Color("#F43F5E") // Rose
	Info    = lipgloss.Color("#14B8A6") // Teal
	Text    = lipgloss.Color("#F8FAFC") // White
	TextDim = lipgloss.Color("#94A3B8") // Slate
	Border  = lipgloss.Color("#334155") // Slate
	BgDark  = lipgloss.Color("#0F172A") // Deep Navy
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Label = lipgloss.NewStyle().
		Foreground(TextDim).
		Width(24)

	Rule = lipgloss.NewStyle().
		Foreground(Border)
)

// Badges
var (
	badge = lipgloss.NewStyle().
		Bold(true).
		Width(10).
		Align(lipgloss.Center)

	Critical = badge.Foreground(Text).Background(Error)
	High     = badge.Foreground(Text).Background(Accent)
	Medium   = badge.Foreground(BgDark).Background(Warning)
	Low      = badge.Foreground(Text).Background(Border)
)

// UrgencyStyle returns the badge style for an urgency tier.
func UrgencyStyle(u priority.Urgency) lipgloss.Style {
	switch u {
	case priority.UrgencyCritical:
		return Critical
	case priority.UrgencyHigh:
		return High
	case priority.UrgencyMedium:
		return Medium
	default:
		return Low
	}
}

// Badge renders an urgency tier as a fixed-width label.
func Badge(u priority.Urgency) string {
	return UrgencyStyle(u).Render(strings.ToUpper(string(u)))
}

// MasteryStyle colors a mastery value by tier.
func MasteryStyle(t mastery.Tier) lipgloss.Style {
	s := lipgloss.NewStyle()
	switch t {
	case mastery.TierStruggling:
		return s.Foreground(Error)
	case mastery.TierProgress:
		return s.Foreground(Warning)
	case mastery.TierGood:
		return s.Foreground(Info)
	case mastery.TierMastered:
		return s.Foreground(Success)
	default:
		return s.Foreground(TextDim)
	}
}

// Separator renders a horizontal rule of width cells.
func Separator(width int) string {
	return Rule.Render(strings.Repeat("─", width))
}
