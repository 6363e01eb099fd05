package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/syllabus/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	var asJSON, strict bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show LLM and LMS availability and the number of saved runs",
		Long: `Probe the configured LLM and LMS endpoints and count saved runs.

With --strict the command exits non-zero when an enabled integration does
not answer, which suits pre-flight checks in scripts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Outlines.Status(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				err = writeJSON(cmd.OutOrStdout(), resp)
			} else {
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStatus(resp))
			}
			if err != nil {
				return err
			}
			if down := resp.Unreachable(); strict && len(down) > 0 {
				return fmt.Errorf("unreachable: %s", strings.Join(down, ", "))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print status as JSON")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when an enabled integration is unreachable")
	return cmd
}
