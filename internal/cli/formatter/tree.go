package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
)

type treeLine struct {
	content string
	badge   string
}

// RenderOutlineTree renders sections with their themes as a tree. Themes carry
// a right-aligned work-type badge and sections show their independent-study hours.
// Pairing fillers are dimmed; themes whose source label was not recognized get
// a yellow "?" marker.
func RenderOutlineTree(sections []*domain.Section) string {
	if len(sections) == 0 {
		return ""
	}

	var lines []treeLine
	maxWidth := 0
	add := func(l treeLine) {
		if w := lipgloss.Width(l.content); w > maxWidth {
			maxWidth = w
		}
		lines = append(lines, l)
	}

	for _, s := range sections {
		add(treeLine{
			content: Bold(fmt.Sprintf("%d. %s", s.Order, s.Name)),
			badge:   StyleDim.Render(fmt.Sprintf("[ %s IS ]", FormatHours(s.IndependentHours))),
		})
		for i, th := range s.Themes {
			prefix := treeBranch
			if i == len(s.Themes)-1 {
				prefix = treeCorner
			}
			title := th.Name
			switch {
			case th.Filler:
				title = Dim(title)
			case th.LabelKind == domain.LabelUnrecognized:
				title = StyleYellowBold.Render("? ") + title
			}
			add(treeLine{
				content: "   " + StyleDim.Render(prefix) + title,
				badge:   WorkTypeStyle(th.Type).Render(fmt.Sprintf("[ %s ]", th.Type.Label())),
			})
		}
	}

	var b strings.Builder
	for _, l := range lines {
		pad := maxWidth - lipgloss.Width(l.content)
		if pad < 0 {
			pad = 0
		}
		b.WriteString(l.content + strings.Repeat(" ", pad) + "  " + l.badge + "\n")
	}
	return b.String()
}
