package cli

import (
	"encoding/json"
	"io"

	"github.com/alexanderramin/syllabus/internal/service"
	"github.com/spf13/cobra"
)

// App holds the services and terminal facts CLI commands depend on.
type App struct {
	Outlines service.OutlineService

	// IsInteractive reports whether stdin and stdout are a terminal. Nil means never.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "syllabus" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "syllabus",
		Short:         "Balance course outlines against institutional workload quotas",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newReconcileCmd(app),
		newQuotaCmd(app),
		newGenerateCmd(app),
		newRunsCmd(app),
		newSubmitCmd(app),
		newStatusCmd(app),
	)

	return root
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
