package domain

import "fmt"

// Quota is a course's declared hour allocation per work type.
type Quota struct {
	CourseID string
	Hours    map[WorkType]int
}

// Targets holds the per-type theme counts an outline must reach, plus the
// independent-study hour budget that is distributed across sections.
type Targets struct {
	Lecture               int `json:"lecture_themes" yaml:"lecture"`
	Lab                   int `json:"lab_themes" yaml:"lab"`
	Practice              int `json:"practice_themes" yaml:"practice"`
	IndependentStudyHours int `json:"independent_study_hours" yaml:"independent_study_hours"`
}

// For returns the theme target for a count-based work type.
// WorkIndependentStudy has no theme target and returns 0.
func (t Targets) For(wt WorkType) int {
	switch wt {
	case WorkLecture:
		return t.Lecture
	case WorkLab:
		return t.Lab
	case WorkPractice:
		return t.Practice
	default:
		return 0
	}
}

// Validate rejects negative targets.
func (t Targets) Validate() error {
	for _, wt := range BalancedWorkTypes {
		if t.For(wt) < 0 {
			return fmt.Errorf("%s theme target must not be negative, got %d", wt, t.For(wt))
		}
	}
	if t.IndependentStudyHours < 0 {
		return fmt.Errorf("independent-study hours must not be negative, got %d", t.IndependentStudyHours)
	}
	return nil
}

// TargetsFromQuota derives theme targets from hour quotas: every lecture, lab and
// practice theme accounts for HoursPerTheme hours, rounding down.
func TargetsFromQuota(q Quota) Targets {
	return Targets{
		Lecture:               q.Hours[WorkLecture] / HoursPerTheme,
		Lab:                   q.Hours[WorkLab] / HoursPerTheme,
		Practice:              q.Hours[WorkPractice] / HoursPerTheme,
		IndependentStudyHours: q.Hours[WorkIndependentStudy],
	}
}
