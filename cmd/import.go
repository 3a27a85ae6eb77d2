package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schoolofai/lessonreview/internal/fixture"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a YAML or JSON seed document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := fixture.Load(args[0])
		if err != nil {
			return err
		}

		rt, err := open(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		sum, err := fixture.NewImporter(rt.store, rt.log, nil).Import(cmd.Context(), doc)
		if err != nil {
			return fmt.Errorf("import %s: %w", args[0], err)
		}

		out := cmd.OutOrStdout()
		if wantJSON(cmd) {
			return writeJSON(out, sum)
		}
		fmt.Fprintf(out, "Imported %s into course %s.\n", sum, doc.Course)
		return nil
	},
}
