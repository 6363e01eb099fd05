package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/syllabus/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newSubmitCmd(app *App) *cobra.Command {
	var (
		yes    bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "submit <run-id>",
		Short: "Create the chapters of a saved run in the LMS",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveRunID(ctx, app, args[0])
			if err != nil {
				return err
			}
			run, err := app.Outlines.GetRun(ctx, id)
			if err != nil {
				return err
			}

			if !yes {
				if !app.interactive() {
					return errors.New("refusing to submit without confirmation; pass --yes")
				}
				if err := confirmSubmit(cmd, run); err != nil {
					return err
				}
			}

			var progress func(done, total int)
			stop := func() {}
			if app.interactive() && !asJSON {
				spinner := formatter.NewSpinner(cmd.ErrOrStderr(), "Submitting sections...")
				spinner.Start()
				stop = spinner.Stop
				progress = func(done, total int) {
					spinner.Update(fmt.Sprintf("Submitted %d/%d sections", done, total))
				}
			}

			resp, err := app.Outlines.Submit(ctx, id, progress)
			stop()
			if resp != nil {
				if asJSON {
					if jerr := writeJSON(cmd.OutOrStdout(), resp); jerr != nil {
						return jerr
					}
				} else {
					fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSubmit(resp))
				}
			}
			if err != nil {
				return err
			}
			if resp.Failed > 0 {
				return fmt.Errorf("%d of %d sections failed", resp.Failed, resp.Failed+resp.Accepted)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Submit without asking for confirmation")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the outcome as JSON")
	return cmd
}
