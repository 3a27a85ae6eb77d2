package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schoolofai/lessonreview/internal/ui/theme"
)

var upcomingCmd = &cobra.Command{
	Use:   "upcoming",
	Short: "List lessons whose outcomes fall due soon",
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")
		studentID, courseID := learner(cmd)

		rt, err := open(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		reviews, err := rt.service().Upcoming(cmd.Context(), studentID, courseID, days)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if wantJSON(cmd) {
			return writeJSON(out, reviews)
		}
		if len(reviews) == 0 {
			fmt.Fprintln(out, "Nothing falls due in the window.")
			return nil
		}
		for i, u := range reviews {
			if i > 0 {
				fmt.Fprintln(out)
			}
			when := fmt.Sprintf("due in %d days", u.DaysUntilDue)
			if u.DaysUntilDue <= 1 {
				when = "due within a day"
			}
			fmt.Fprintln(out, theme.Hint.Render(when+" ("+u.EarliestDueAt+")"))
			writeRecommendation(out, u.Recommendation)
		}
		return nil
	},
}

func init() {
	learnerFlags(upcomingCmd)
	upcomingCmd.Flags().Int("days", 0, "Lookahead window in days (default from config)")
}
