package outline

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/syllabus/internal/domain"
)

// Render writes sections back in the numbered format Parse reads.
// Parse(Render(s)) yields the same names, label kinds and types as s.
func Render(sections []*domain.Section) string {
	var b strings.Builder
	for i, s := range sections {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s.Name)
		for _, th := range s.Themes {
			fmt.Fprintf(&b, " - %s\n", renderTheme(th))
		}
	}
	return b.String()
}

// renderTheme writes a theme the way it was labeled, so Parse reads back the
// same label kind. Only recognized labels are canonicalized.
func renderTheme(th *domain.Theme) string {
	switch th.LabelKind {
	case domain.LabelRecognized:
		return th.DisplayName()
	case domain.LabelUnrecognized:
		return fmt.Sprintf("%s (%s)", th.Name, th.Label)
	default:
		return th.Name
	}
}
