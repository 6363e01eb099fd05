package outline

import (
	"regexp"
	"strings"

	"github.com/alexanderramin/syllabus/internal/domain"
)

var (
	independentTermPattern = regexp.MustCompile(`(?i)\b(independent[\s-]+study|independent[\s-]+work|self[\s-]+study|sro)\b`)
	redundantThemePattern  = regexp.MustCompile(`(?i)^independent[\s-]+study\s+for\s+topic\s+\d+$`)
)

// CleanupReport counts what Cleanup removed.
type CleanupReport struct {
	SectionsDropped []string
	ThemesDropped   int
}

// Cleanup removes "independent study for topic <n>" filler themes and sections
// dedicated entirely to independent study, then renumbers sections. A section
// is dropped only when its whole name is independent-study terminology and each
// theme is either named the same way or explicitly labeled independent study.
func Cleanup(sections []*domain.Section) ([]*domain.Section, CleanupReport) {
	var report CleanupReport
	kept := make([]*domain.Section, 0, len(sections))

	for _, s := range sections {
		if isIndependentStudySection(s) {
			report.SectionsDropped = append(report.SectionsDropped, s.Name)
			continue
		}

		themes := s.Themes[:0]
		for _, th := range s.Themes {
			if isRedundantTheme(th) {
				report.ThemesDropped++
				continue
			}
			themes = append(themes, th)
		}
		s.Themes = themes
		kept = append(kept, s)
	}

	domain.Renumber(kept)
	return kept, report
}

func isIndependentStudySection(s *domain.Section) bool {
	if !isIndependentTerm(s.Name) {
		return false
	}
	for _, th := range s.Themes {
		explicit := th.LabelKind == domain.LabelRecognized && th.Type == domain.WorkIndependentStudy
		if !explicit && !isIndependentTerm(th.Name) {
			return false
		}
	}
	return true
}

func isRedundantTheme(th *domain.Theme) bool {
	if th.LabelKind != domain.LabelRecognized || th.Type != domain.WorkIndependentStudy {
		return false
	}
	return redundantThemePattern.MatchString(strings.TrimSpace(th.Name))
}

// isIndependentTerm reports whether a name is made up of independent-study
// terminology, optionally followed by a topic number.
func isIndependentTerm(name string) bool {
	rest := independentTermPattern.ReplaceAllString(name, "")
	rest = strings.Trim(rest, " -–:.,0123456789")
	return rest == "" || redundantThemePattern.MatchString(strings.TrimSpace(name))
}
