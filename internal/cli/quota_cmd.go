package cli

import (
	"fmt"

	"github.com/alexanderramin/syllabus/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newQuotaCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "quota <course-id>",
		Short: "Show a course's hour quota and the theme targets it implies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := app.Outlines.Quota(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), q)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatQuota(q))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the quota as JSON")
	return cmd
}
