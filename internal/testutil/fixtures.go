package testutil

import (
	"time"

	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/google/uuid"
)

// RunOption customizes a fixture run.
type RunOption func(*domain.Run)

func WithCourse(id string) RunOption {
	return func(r *domain.Run) { r.CourseID = id }
}

func WithCreatedAt(t time.Time) RunOption {
	return func(r *domain.Run) { r.CreatedAt = t }
}

func WithSections(sections ...*domain.Section) RunOption {
	return func(r *domain.Run) { r.Sections = sections }
}

func WithTargets(t domain.Targets) RunOption {
	return func(r *domain.Run) { r.Targets = t }
}

// NewTestRun builds a run with two balanced sections unless overridden.
func NewTestRun(title string, opts ...RunOption) *domain.Run {
	r := &domain.Run{
		ID:       uuid.New().String(),
		CourseID: "COURSE-1",
		Title:    title,
		Targets:  domain.Targets{Lecture: 2, Lab: 2, IndependentStudyHours: 6},
		Sections: []*domain.Section{
			NewTestSection(1, "Foundations",
				NewTestTheme("Overview", domain.WorkLecture),
				NewTestTheme("Setup", domain.WorkLab)),
			NewTestSection(2, "Practice",
				NewTestTheme("Patterns", domain.WorkLecture),
				NewTestTheme("Exercises", domain.WorkLab)),
		},
		BalancingSuccess: true,
		CreatedAt:        time.Now().UTC(),
	}
	r.Sections[0].IndependentHours = 3
	r.Sections[1].IndependentHours = 3
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func NewTestSection(order int, name string, themes ...*domain.Theme) *domain.Section {
	if themes == nil {
		themes = []*domain.Theme{}
	}
	return &domain.Section{Name: name, Order: order, Themes: themes}
}

// NewTestTheme builds a theme with a recognized canonical label.
func NewTestTheme(name string, wt domain.WorkType) *domain.Theme {
	return &domain.Theme{Name: name, Label: wt.Label(), LabelKind: domain.LabelRecognized, Type: wt}
}
