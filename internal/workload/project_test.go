package workload

import (
	"testing"

	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/stretchr/testify/assert"
)

func sectionsOf(n int) []*domain.Section {
	out := make([]*domain.Section, n)
	for i := range out {
		out[i] = &domain.Section{Name: "s", Order: i + 1}
	}
	return out
}

func independentHours(sections []*domain.Section) []int {
	out := make([]int, len(sections))
	for i, s := range sections {
		out[i] = s.IndependentHours
	}
	return out
}

func TestDistributeIndependentHours(t *testing.T) {
	cases := []struct {
		name     string
		sections int
		hours    int
		want     []int
	}{
		{"fewer hours than sections", 5, 3, []int{1, 1, 1, 0, 0}},
		{"even split", 3, 9, []int{3, 3, 3}},
		{"remainder to last", 3, 11, []int{3, 3, 5}},
		{"hours equal sections", 4, 4, []int{1, 1, 1, 1}},
		{"zero hours", 2, 0, []int{0, 0}},
		{"no sections", 0, 10, []int{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sections := sectionsOf(tc.sections)
			DistributeIndependentHours(sections, tc.hours)
			assert.Equal(t, tc.want, independentHours(sections))
		})
	}
}

func TestDistributeIndependentHours_ResetsPreviousValues(t *testing.T) {
	sections := sectionsOf(3)
	DistributeIndependentHours(sections, 30)

	DistributeIndependentHours(sections, 2)

	assert.Equal(t, []int{1, 1, 0}, independentHours(sections))
}

func TestProject_HoursAndMatches(t *testing.T) {
	sections := []*domain.Section{
		{Themes: []*domain.Theme{
			{Type: domain.WorkLecture}, {Type: domain.WorkLecture}, {Type: domain.WorkLab},
			{Type: domain.WorkIndependentStudy},
		}, IndependentHours: 5},
		{Themes: []*domain.Theme{{Type: domain.WorkPractice}}, IndependentHours: 6},
	}

	sum := Project(sections, domain.Targets{Lecture: 2, Lab: 2})

	assert.Equal(t, 4, sum.ProjectedHours[domain.WorkLecture])
	assert.Equal(t, 2, sum.ProjectedHours[domain.WorkLab])
	assert.Equal(t, 2, sum.ProjectedHours[domain.WorkPractice])
	assert.Equal(t, 11, sum.ProjectedHours[domain.WorkIndependentStudy])
	assert.True(t, sum.PerTypeMatch[domain.WorkLecture])
	assert.False(t, sum.PerTypeMatch[domain.WorkLab])
	assert.NotContains(t, sum.PerTypeMatch, domain.WorkPractice)
	assert.False(t, sum.BalancingSuccess)
	assert.Len(t, sum.Shortfalls, 1)
	assert.Equal(t, 1, sum.Shortfalls[0].Missing)
	assert.Equal(t, 5, sum.ThemeCount)
	assert.Equal(t, 2, sum.SectionCount)
}

func TestHourMismatches_ReportsOddQuota(t *testing.T) {
	res := ReconcileText("1. One\n - a (lecture)", domain.TargetsFromQuota(domain.Quota{
		Hours: map[domain.WorkType]int{domain.WorkLecture: 15, domain.WorkIndependentStudy: 10},
	}))
	quota := domain.Quota{Hours: map[domain.WorkType]int{domain.WorkLecture: 15, domain.WorkIndependentStudy: 10}}

	mismatches := HourMismatches(res.Summary, quota)

	assert.Len(t, mismatches, 1)
	assert.Equal(t, domain.WorkLecture, mismatches[0].Type)
	assert.Equal(t, 15, mismatches[0].RequestedHours)
	assert.Equal(t, 14, mismatches[0].ProjectedHours)
}
