package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alexanderramin/syllabus/internal/cli/formatter"
	"github.com/alexanderramin/syllabus/internal/contract"
	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/alexanderramin/syllabus/internal/importer"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newReconcileCmd(app *App) *cobra.Command {
	var (
		targets     domain.Targets
		targetsFile string
		courseID    string
		title       string
		fromQuota   bool
		save        bool
		watch       bool
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "reconcile [file|-]",
		Short: "Parse an outline and balance it against theme targets",
		Long: `Reads a numbered outline from a file, or stdin when the argument is "-" or omitted,
and retypes, adds or pairs themes until every work type meets its target.

Input starting with "{" is read as a JSON outline export with course_id, title,
targets and sections[].themes[]. Flags override the values it carries.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			src := "-"
			if len(args) == 1 {
				src = args[0]
			}
			if watch && (src == "-" || save) {
				return fmt.Errorf("--watch needs an outline file and cannot be combined with --save")
			}

			once := func() error {
				raw, err := readOutline(cmd.InOrStdin(), src)
				if err != nil {
					return err
				}

				req := contract.NewReconcileRequest(raw, domain.Targets{})
				if importer.LooksLikeJSON([]byte(raw)) {
					if err := applyImport(&req, []byte(raw)); err != nil {
						return err
					}
				}
				if courseID != "" {
					req.CourseID = courseID
				}
				if title != "" {
					req.Title = title
				}
				req.Save = save

				if fromQuota {
					if req.CourseID == "" {
						return fmt.Errorf("--from-quota requires --course")
					}
					q, err := app.Outlines.Quota(ctx, req.CourseID)
					if err != nil {
						return err
					}
					req.Quota = q
					req.Targets = domain.TargetsFromQuota(*q)
				}
				if targetsFile != "" {
					fileTargets, err := loadTargetsFile(targetsFile)
					if err != nil {
						return err
					}
					req.Targets = fileTargets
				}
				overrideTargets(cmd, &req.Targets, targets)

				resp, err := app.Outlines.Reconcile(ctx, req)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), resp)
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatReconcile(resp))
				return nil
			}

			if !watch {
				return once()
			}
			if err := once(); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			}
			fmt.Fprintln(cmd.ErrOrStderr(), formatter.Dim("Watching "+src+" for changes (Ctrl+C to stop)"))
			return watchFile(ctx, src, watchDebounce, cmd.ErrOrStderr(), func() {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("── reloaded "+time.Now().Format("15:04:05")+" ──"))
				if err := once(); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				}
			})
		},
	}

	addTargetFlags(cmd, &targets)
	cmd.Flags().StringVar(&targetsFile, "targets-file", "", "YAML file with lecture, lab, practice and independent_study_hours")
	cmd.Flags().StringVar(&courseID, "course", "", "LMS course ID the outline belongs to")
	cmd.Flags().StringVar(&title, "title", "", "Title stored with a saved run")
	cmd.Flags().BoolVar(&fromQuota, "from-quota", false, "Derive targets from the course quota (requires --course)")
	cmd.Flags().BoolVar(&save, "save", false, "Store the reconciled outline as a run")
	cmd.Flags().BoolVar(&watch, "watch", false, "Re-run whenever the outline file changes")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")

	return cmd
}

func addTargetFlags(cmd *cobra.Command, t *domain.Targets) {
	cmd.Flags().IntVar(&t.Lecture, "lecture", 0, "Target number of lecture themes")
	cmd.Flags().IntVar(&t.Lab, "lab", 0, "Target number of lab themes")
	cmd.Flags().IntVar(&t.Practice, "practice", 0, "Target number of practice themes")
	cmd.Flags().IntVar(&t.IndependentStudyHours, "sro-hours", 0, "Independent-study hours to spread over sections")
}

// overrideTargets copies explicitly set flag values over base.
func overrideTargets(cmd *cobra.Command, base *domain.Targets, flags domain.Targets) {
	if cmd.Flags().Changed("lecture") {
		base.Lecture = flags.Lecture
	}
	if cmd.Flags().Changed("lab") {
		base.Lab = flags.Lab
	}
	if cmd.Flags().Changed("practice") {
		base.Practice = flags.Practice
	}
	if cmd.Flags().Changed("sro-hours") {
		base.IndependentStudyHours = flags.IndependentStudyHours
	}
}

// applyImport replaces the raw text of req with sections from a JSON export
// and takes its course, title and targets as defaults.
func applyImport(req *contract.ReconcileRequest, data []byte) error {
	schema, err := importer.ParseImportSchema(data)
	if err != nil {
		return err
	}
	sections, err := importer.ConvertImportSchema(schema)
	if err != nil {
		return fmt.Errorf("invalid outline import:\n%w", err)
	}
	req.RawOutline = ""
	req.Sections = sections
	req.CourseID = schema.CourseID
	req.Title = schema.Title
	if schema.Targets != nil {
		req.Targets = *schema.Targets
	}
	return nil
}

func loadTargetsFile(path string) (domain.Targets, error) {
	var t domain.Targets
	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("reading targets file: %w", err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("parsing targets file %s: %w", path, err)
	}
	return t, nil
}

func readOutline(stdin io.Reader, src string) (string, error) {
	if src == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading outline from stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return "", fmt.Errorf("reading outline: %w", err)
	}
	return string(data), nil
}
