package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/schoolofai/lessonreview/internal/mastery"
	"github.com/schoolofai/lessonreview/internal/review"
	"github.com/schoolofai/lessonreview/internal/ui/theme"
)

func wantJSON(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeRecommendations prints one block per lesson.
func writeRecommendations(w io.Writer, recs []review.Recommendation) {
	for i, r := range recs {
		if i > 0 {
			fmt.Fprintln(w)
		}
		writeRecommendation(w, r)
	}
}

func writeRecommendation(w io.Writer, r review.Recommendation) {
	title := r.LessonTitle
	if len(title) > 48 {
		title = title[:45] + "..."
	}
	fmt.Fprintf(w, "%s  %2d  %s %s\n",
		theme.Badge(r.Urgency), r.Priority, theme.Title.Render(title), theme.Hint.Render("("+r.LessonID+")"))

	tier := mastery.TierFor(r.AverageMastery)
	fmt.Fprintf(w, "    mastery %s  ~%d min  outcomes %s\n",
		theme.MasteryStyle(tier).Render(fmt.Sprintf("%3.0f%%", r.AverageMastery*100)),
		r.EstimatedMinutes,
		strings.Join(outcomeRefs(r), ", "))
	fmt.Fprintf(w, "    %s\n", theme.Body.Render(r.ReasonText))
}

func outcomeRefs(r review.Recommendation) []string {
	refs := make([]string, len(r.OverdueOutcomes))
	for i, o := range r.OverdueOutcomes {
		refs[i] = o.OutcomeRef
	}
	return refs
}
