// Package outline turns generated outline text into sections and themes and back.
package outline

import (
	"regexp"
	"strings"

	"github.com/alexanderramin/syllabus/internal/domain"
)

var (
	headingPattern = regexp.MustCompile(`^(\d+)\.\s+(.*)$`)
	labelPattern   = regexp.MustCompile(`^(.*?)\s*\(([^()]*)\)\s*$`)
)

// Parse reads one heading or theme per line. A line starting with "<n>. " opens
// a new section; any other non-blank line becomes a theme of the open section.
// Lines before the first heading are discarded.
func Parse(text string) []*domain.Section {
	var sections []*domain.Section
	var current *domain.Section

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if m := headingPattern.FindStringSubmatch(trimmed); m != nil {
			if current != nil {
				sections = append(sections, current)
			}
			current = &domain.Section{
				Name:  strings.TrimSpace(m[2]),
				Order: len(sections) + 1,
			}
			continue
		}

		if current == nil {
			continue
		}
		if th := parseTheme(trimmed); th != nil {
			current.Themes = append(current.Themes, th)
		}
	}
	if current != nil {
		sections = append(sections, current)
	}
	return sections
}

func parseTheme(line string) *domain.Theme {
	name := strings.TrimSpace(stripBullet(line))
	if name == "" {
		return nil
	}

	th := &domain.Theme{
		Name:      name,
		LabelKind: domain.LabelNone,
		Type:      domain.WorkIndependentStudy,
	}

	if m := labelPattern.FindStringSubmatch(name); m != nil && strings.TrimSpace(m[1]) != "" {
		th.Name = strings.TrimSpace(m[1])
		th.Label = strings.ToLower(strings.TrimSpace(m[2]))
		if wt, ok := domain.ParseWorkType(th.Label); ok {
			th.Type = wt
			th.LabelKind = domain.LabelRecognized
		} else {
			th.LabelKind = domain.LabelUnrecognized
		}
	}

	if th.LabelKind == domain.LabelRecognized && th.Type == domain.WorkIndependentStudy &&
		strings.EqualFold(th.Name, domain.FillerThemeName) {
		th.Filler = true
	}
	return th
}

func stripBullet(line string) string {
	for _, bullet := range []string{"-", "•", "–", "*"} {
		if strings.HasPrefix(line, bullet) {
			return strings.TrimPrefix(line, bullet)
		}
	}
	return line
}
