package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/syllabus/internal/cli/formatter"
	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var errNotConfirmed = errors.New("submission cancelled")

// confirmTheme keeps the prompt in the same palette as the outline views:
// the question in the header orange, the submit button on it when focused.
func confirmTheme() *huh.Theme {
	t := huh.ThemeBase()
	accent := lipgloss.NewStyle().Foreground(formatter.ColorHeader)

	t.Focused.Title = accent.Bold(true)
	t.Focused.Description = formatter.StyleDim
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Bold(true).Padding(0, 2)
	t.Focused.BlurredButton = formatter.StyleDim.Padding(0, 2)
	t.Blurred = t.Focused
	t.Blurred.Title = formatter.StyleDim
	return t
}

// confirmSubmit asks before a run's chapters are created remotely. It returns
// errNotConfirmed when the user declines.
func confirmSubmit(cmd *cobra.Command, run *domain.Run) error {
	themes := 0
	for _, sec := range run.Sections {
		themes += len(sec.Themes)
	}
	ok := false
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(fmt.Sprintf("Submit %d sections to course %s?", len(run.Sections), run.CourseID)).
			Description(fmt.Sprintf("Each section becomes an LMS chapter (%d themes in total).", themes)).
			Affirmative("Submit").
			Negative("Cancel").
			Value(&ok),
	)).WithTheme(confirmTheme()).WithShowHelp(false).
		WithInput(cmd.InOrStdin()).WithOutput(cmd.ErrOrStderr())

	if err := form.RunWithContext(cmd.Context()); err != nil {
		return err
	}
	if !ok {
		return errNotConfirmed
	}
	return nil
}
