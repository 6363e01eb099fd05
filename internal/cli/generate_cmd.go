package cli

import (
	"fmt"

	"github.com/alexanderramin/syllabus/internal/cli/formatter"
	"github.com/alexanderramin/syllabus/internal/contract"
	"github.com/spf13/cobra"
)

func newGenerateCmd(app *App) *cobra.Command {
	var (
		title       string
		description string
		language    string
		sections    int
		noSave      bool
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "generate <course-id>",
		Short: "Draft an outline with the LLM and balance it against the course quota",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := contract.NewGenerateRequest(args[0], title)
			req.Description = description
			if cmd.Flags().Changed("language") {
				req.Language = language
			}
			if cmd.Flags().Changed("sections") {
				if sections <= 0 {
					return fmt.Errorf("--sections must be positive, got %d", sections)
				}
				req.SectionCount = sections
			}
			req.Save = !noSave

			stop := func() {}
			if app.interactive() && !asJSON {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Drafting outline...")
			}
			resp, err := app.Outlines.Generate(cmd.Context(), req)
			stop()
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatReconcile(resp))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Course title (required)")
	cmd.Flags().StringVar(&description, "description", "", "Short course description for the prompt")
	cmd.Flags().StringVar(&language, "language", "English", "Language the outline is written in")
	cmd.Flags().IntVar(&sections, "sections", 6, "Number of sections to request")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "Do not store the result as a run")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}
