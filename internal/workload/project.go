package workload

import (
	"fmt"

	"github.com/alexanderramin/syllabus/internal/contract"
	"github.com/alexanderramin/syllabus/internal/domain"
)

// DistributeIndependentHours spreads the independent-study hour budget over
// sections directly. With fewer hours than sections, the first sections get one
// hour each; otherwise every section gets an equal share and the last section
// also takes the remainder.
func DistributeIndependentHours(sections []*domain.Section, hours int) {
	for _, s := range sections {
		s.IndependentHours = 0
	}
	n := len(sections)
	if n == 0 || hours <= 0 {
		return
	}

	if hours < n {
		for i := 0; i < hours; i++ {
			sections[i].IndependentHours = 1
		}
		return
	}

	share := hours / n
	for _, s := range sections {
		s.IndependentHours = share
	}
	sections[n-1].IndependentHours += hours % n
}

// Project computes final counts, projected hours and target matches.
func Project(sections []*domain.Section, targets domain.Targets) contract.Summary {
	counts := domain.CountByType(sections)

	summary := contract.Summary{
		BalancingSuccess: true,
		PerTypeMatch:     make(map[domain.WorkType]bool),
		FinalCounts:      counts,
		ProjectedHours:   make(map[domain.WorkType]int, len(domain.AllWorkTypes)),
		Targets:          targets,
		SectionCount:     len(sections),
		ThemeCount:       domain.ThemeCount(sections),
		Adjustments:      contract.NewAdjustments(),
	}
	summary.Empty = summary.ThemeCount == 0

	independent := 0
	for _, s := range sections {
		independent += s.IndependentHours
	}
	summary.ProjectedHours[domain.WorkIndependentStudy] = independent

	for _, wt := range domain.BalancedWorkTypes {
		summary.ProjectedHours[wt] = counts[wt] * domain.HoursPerTheme

		target := targets.For(wt)
		if target == 0 {
			continue
		}
		match := counts[wt] == target
		summary.PerTypeMatch[wt] = match
		if !match {
			summary.BalancingSuccess = false
			summary.Shortfalls = append(summary.Shortfalls, shortfall(wt, target, counts[wt], len(sections)))
		}
	}

	return summary
}

func shortfall(wt domain.WorkType, target, count, sectionCount int) contract.Shortfall {
	missing := target - count
	sf := contract.Shortfall{Type: wt, Missing: missing}
	switch {
	case missing > 0 && sectionCount == 0:
		sf.Code = contract.ShortfallUnresolvableDeficit
		sf.Message = fmt.Sprintf("%d %s theme(s) missing and no section to host them", missing, wt)
	case missing > 0:
		sf.Code = contract.ShortfallCountDeficit
		sf.Message = fmt.Sprintf("%d %s theme(s) short of target %d", missing, wt, target)
	default:
		sf.Code = contract.ShortfallCountSurplus
		sf.Message = fmt.Sprintf("%d %s theme(s) over target %d", -missing, wt, target)
	}
	return sf
}

// HourMismatches compares projected hours against a requested quota.
func HourMismatches(summary contract.Summary, quota domain.Quota) []contract.HourMismatch {
	var out []contract.HourMismatch
	for _, wt := range domain.AllWorkTypes {
		requested, ok := quota.Hours[wt]
		if !ok || requested == 0 {
			continue
		}
		if projected := summary.ProjectedHours[wt]; projected != requested {
			out = append(out, contract.HourMismatch{
				Type:           wt,
				RequestedHours: requested,
				ProjectedHours: projected,
			})
		}
	}
	return out
}
