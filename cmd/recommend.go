package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "List lessons to review, highest priority first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		studentID, courseID := learner(cmd)

		rt, err := open(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		recs, err := rt.service().Recommendations(cmd.Context(), studentID, courseID, limit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if wantJSON(cmd) {
			return writeJSON(out, recs)
		}
		if len(recs) == 0 {
			fmt.Fprintln(out, "Nothing to review. All outcomes are on schedule.")
			return nil
		}
		writeRecommendations(out, recs)
		return nil
	},
}

func init() {
	learnerFlags(recommendCmd)
	recommendCmd.Flags().Int("limit", 0, "Maximum lessons to list (default from config)")
}
