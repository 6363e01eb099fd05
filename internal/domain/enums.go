package domain

import "strings"

// WorkType is the pedagogical category of a theme.
type WorkType string

const (
	WorkLecture          WorkType = "lecture"
	WorkLab              WorkType = "lab"
	WorkPractice         WorkType = "practice"
	WorkIndependentStudy WorkType = "independent-study"
)

// BalancedWorkTypes lists the count-based work types in reconciliation order.
var BalancedWorkTypes = []WorkType{WorkLecture, WorkLab, WorkPractice}

// AllWorkTypes lists every work type in display order.
var AllWorkTypes = []WorkType{WorkLecture, WorkLab, WorkPractice, WorkIndependentStudy}

// Label returns the canonical label written in parentheses after a theme name.
func (w WorkType) Label() string {
	return string(w)
}

// Title returns a human-readable name for the work type.
func (w WorkType) Title() string {
	switch w {
	case WorkLecture:
		return "Lecture"
	case WorkLab:
		return "Lab"
	case WorkPractice:
		return "Practice"
	case WorkIndependentStudy:
		return "Independent study"
	default:
		return string(w)
	}
}

// Paired reports whether themes of this type are allocated in 2-hour pairs at the
// chapter level of the LMS.
func (w WorkType) Paired() bool {
	return w == WorkLecture || w == WorkLab
}

var workTypeLabels = map[string]WorkType{
	"lecture":           WorkLecture,
	"lectures":          WorkLecture,
	"lab":               WorkLab,
	"labs":              WorkLab,
	"laboratory":        WorkLab,
	"laboratory work":   WorkLab,
	"practice":          WorkPractice,
	"practical":         WorkPractice,
	"practicals":        WorkPractice,
	"seminar":           WorkPractice,
	"independent-study": WorkIndependentStudy,
	"independent study": WorkIndependentStudy,
	"independent_study": WorkIndependentStudy,
	"self-study":        WorkIndependentStudy,
	"sro":               WorkIndependentStudy,
}

// ParseWorkType resolves a free-text label to a work type. Unknown or empty
// labels resolve to WorkIndependentStudy with ok=false.
func ParseWorkType(label string) (WorkType, bool) {
	key := strings.ToLower(strings.TrimSpace(label))
	if wt, ok := workTypeLabels[key]; ok {
		return wt, true
	}
	return WorkIndependentStudy, false
}

// LabelKind records how a theme's work type was determined at parse time.
type LabelKind string

const (
	LabelNone         LabelKind = "none"
	LabelRecognized   LabelKind = "recognized"
	LabelUnrecognized LabelKind = "unrecognized"
)
