package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schoolofai/lessonreview/internal/priority"
	"github.com/schoolofai/lessonreview/internal/ui/theme"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the review backlog",
	RunE: func(cmd *cobra.Command, args []string) error {
		studentID, courseID := learner(cmd)

		rt, err := open(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		stats, err := rt.service().Stats(cmd.Context(), studentID, courseID)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if wantJSON(cmd) {
			return writeJSON(out, stats)
		}

		row := func(label string, v any) {
			fmt.Fprintf(out, "%s %v\n", theme.Label.Render(label), v)
		}
		fmt.Fprintln(out, theme.Title.Render("Review backlog"))
		fmt.Fprintln(out, theme.Separator(40))
		row("Overdue outcomes", stats.TotalOverdueOutcomes)
		row("Critical (low mastery)", stats.CriticalCount)
		row("Lessons to review", stats.LessonsToReview)
		row("Estimated time", fmt.Sprintf("%d min", stats.EstimatedReviewMinutes))
		for _, u := range []priority.Urgency{
			priority.UrgencyCritical, priority.UrgencyHigh, priority.UrgencyMedium, priority.UrgencyLow,
		} {
			fmt.Fprintf(out, "%s %d\n", theme.Badge(u), stats.TierBreakdown[u])
		}
		return nil
	},
}

func init() {
	learnerFlags(statsCmd)
}
