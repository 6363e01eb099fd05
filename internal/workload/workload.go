package workload

import (
	"github.com/alexanderramin/syllabus/internal/contract"
	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/alexanderramin/syllabus/internal/outline"
)

// ReconcileText parses raw outline text, removes independent-study sections and
// filler themes, reconciles theme counts against targets and projects hours.
// It never fails: shortfalls are reported in the summary.
func ReconcileText(raw string, targets domain.Targets) *contract.ReconcileResult {
	return ReconcileSections(outline.Parse(raw), targets)
}

// ReconcileSections is ReconcileText for sections that were built some other
// way, such as a JSON import. The sections are modified in place.
func ReconcileSections(sections []*domain.Section, targets domain.Targets) *contract.ReconcileResult {
	cleaned, report := outline.Cleanup(sections)
	return reconcileSections(cleaned, targets, report)
}

func reconcileSections(sections []*domain.Section, targets domain.Targets, report outline.CleanupReport) *contract.ReconcileResult {
	if sections == nil {
		sections = []*domain.Section{}
	}

	adj := Reconcile(sections, targets)
	adj.SectionsDropped = report.SectionsDropped
	adj.ThemesDropped = report.ThemesDropped

	DistributeIndependentHours(sections, targets.IndependentStudyHours)

	summary := Project(sections, targets)
	summary.Adjustments = adj

	return &contract.ReconcileResult{Sections: sections, Summary: summary}
}
