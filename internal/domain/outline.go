package domain

import "fmt"

// HoursPerTheme is the institutional allocation for one lecture, lab or practice theme.
const HoursPerTheme = 2

// FillerThemeName names the independent-study theme appended to a section whose
// lecture and lab themes would otherwise leave one theme unpaired.
const FillerThemeName = "consolidation and review"

// Theme is one lesson entry within a section.
type Theme struct {
	Name      string    `json:"name"`
	Label     string    `json:"label,omitempty"` // as written in the source, lower-cased
	LabelKind LabelKind `json:"label_kind"`
	Type      WorkType  `json:"type"`
	Filler    bool      `json:"filler,omitempty"`
}

// DisplayName returns the theme name carrying its canonical work-type label.
func (t *Theme) DisplayName() string {
	return fmt.Sprintf("%s (%s)", t.Name, t.Type.Label())
}

// Retype moves the theme to a new work type and rewrites its label to match.
func (t *Theme) Retype(wt WorkType) {
	t.Type = wt
	t.Label = wt.Label()
	t.LabelKind = LabelRecognized
	t.Filler = false
}

// Section is one chapter of an outline.
type Section struct {
	Name             string   `json:"name"`
	Order            int      `json:"order"`
	Themes           []*Theme `json:"themes"`
	IndependentHours int      `json:"independent_hours"`
}

// Count returns the number of themes of the given type.
func (s *Section) Count(wt WorkType) int {
	n := 0
	for _, th := range s.Themes {
		if th.Type == wt {
			n++
		}
	}
	return n
}

// PairedCount returns the number of lecture and lab themes.
func (s *Section) PairedCount() int {
	n := 0
	for _, th := range s.Themes {
		if th.Type.Paired() {
			n++
		}
	}
	return n
}

// FillerCount returns the number of pairing filler themes.
func (s *Section) FillerCount() int {
	n := 0
	for _, th := range s.Themes {
		if th.Filler {
			n++
		}
	}
	return n
}

// CountByType tallies themes per work type across all sections.
func CountByType(sections []*Section) map[WorkType]int {
	counts := make(map[WorkType]int, len(AllWorkTypes))
	for _, wt := range AllWorkTypes {
		counts[wt] = 0
	}
	for _, s := range sections {
		for _, th := range s.Themes {
			counts[th.Type]++
		}
	}
	return counts
}

// ThemeCount returns the total number of themes across all sections.
func ThemeCount(sections []*Section) int {
	n := 0
	for _, s := range sections {
		n += len(s.Themes)
	}
	return n
}

// Renumber sets each section's Order to its 1-based position.
func Renumber(sections []*Section) {
	for i, s := range sections {
		s.Order = i + 1
	}
}
