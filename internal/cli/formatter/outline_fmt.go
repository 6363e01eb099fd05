package formatter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/syllabus/internal/contract"
	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/alexanderramin/syllabus/internal/workload"
)

const coverageWidth = 12

// FormatReconcile renders a reconciliation response: the balanced outline as
// a tree, the per-type summary table, what was adjusted and any warnings.
func FormatReconcile(resp *contract.ReconcileResponse) string {
	if resp == nil || resp.Result == nil {
		return Dim("No result.") + "\n"
	}
	var b strings.Builder
	sum := resp.Result.Summary

	b.WriteString(Header("Outline") + "\n")
	if sum.Empty {
		b.WriteString(Dim("  (empty outline)") + "\n")
	} else {
		b.WriteString(RenderOutlineTree(resp.Result.Sections))
	}
	b.WriteString("\n")
	b.WriteString(FormatSummary(sum))

	if adj := formatAdjustments(sum.Adjustments); adj != "" {
		b.WriteString("\n" + Header("Adjustments") + "\n" + adj)
	}

	if len(resp.HourMismatches) > 0 {
		b.WriteString("\n" + Header("Hour mismatches") + "\n")
		rows := make([][]string, 0, len(resp.HourMismatches))
		for _, m := range resp.HourMismatches {
			rows = append(rows, []string{WorkTypeBadge(m.Type), fmt.Sprint(m.RequestedHours), fmt.Sprint(m.ProjectedHours)})
		}
		b.WriteString(RenderTable([]string{"TYPE", "QUOTA", "PROJECTED"}, rows))
	}

	shown := make(map[string]bool, len(sum.Shortfalls))
	for _, sf := range sum.Shortfalls {
		shown[sf.Message] = true
	}
	var warnings []string
	for _, w := range resp.Warnings {
		if !shown[w] {
			warnings = append(warnings, w)
		}
	}
	if len(warnings) > 0 {
		b.WriteString("\n")
		for _, w := range warnings {
			b.WriteString(StyleYellow.Render("  ⚠ "+w) + "\n")
		}
	}

	if resp.RunID != "" {
		b.WriteString("\n" + Dim("Saved as run ") + Bold(resp.RunID) + "\n")
	}
	return b.String()
}

// FormatSummary renders the per-type count, target and hour table with the
// overall balance pill.
func FormatSummary(sum contract.Summary) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s  %s\n",
		BalancePill(sum.BalancingSuccess),
		Dim(fmt.Sprintf("%d sections, %d themes", sum.SectionCount, sum.ThemeCount))))

	rows := make([][]string, 0, len(domain.AllWorkTypes))
	for _, wt := range domain.BalancedWorkTypes {
		count := sum.FinalCounts[wt]
		target := sum.Targets.For(wt)
		rows = append(rows, []string{
			WorkTypeBadge(wt),
			RenderCoverage(count, target, coverageWidth),
			fmt.Sprint(sum.ProjectedHours[wt]),
			MatchIndicator(count, target),
		})
	}
	is := domain.WorkIndependentStudy
	rows = append(rows, []string{
		WorkTypeBadge(is),
		Dim(fmt.Sprintf("%d themes", sum.FinalCounts[is])),
		fmt.Sprint(sum.ProjectedHours[is]),
		MatchIndicator(sum.ProjectedHours[is], sum.Targets.IndependentStudyHours),
	})
	b.WriteString(RenderTable([]string{"TYPE", "THEMES", "HOURS", "MATCH"}, rows))

	for _, sf := range sum.Shortfalls {
		b.WriteString(StyleRed.Render(fmt.Sprintf("  %s %s", sf.Code, sf.Message)) + "\n")
	}
	return b.String()
}

func formatAdjustments(a contract.Adjustments) string {
	var lines []string
	for _, entry := range []struct {
		verb string
		m    map[domain.WorkType]int
	}{
		{"promoted to", a.Promoted},
		{"synthesized as", a.Synthesized},
		{"demoted from", a.Demoted},
	} {
		for _, wt := range domain.BalancedWorkTypes {
			if n := entry.m[wt]; n > 0 {
				lines = append(lines, fmt.Sprintf("  %d %s %s", n, themesWord(n), entry.verb+" "+WorkTypeBadge(wt)))
			}
		}
	}
	if a.FillersAdded > 0 {
		lines = append(lines, fmt.Sprintf("  %d pairing %s added", a.FillersAdded, pluralize(a.FillersAdded, "filler", "fillers")))
	}
	if a.ThemesDropped > 0 {
		lines = append(lines, fmt.Sprintf("  %d redundant %s dropped", a.ThemesDropped, themesWord(a.ThemesDropped)))
	}
	for _, name := range a.SectionsDropped {
		lines = append(lines, fmt.Sprintf("  section %q dropped", name))
	}
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

func themesWord(n int) string {
	return pluralize(n, "theme", "themes")
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatQuota renders a course quota next to the theme targets it implies.
func FormatQuota(q *domain.Quota) string {
	if q == nil {
		return Dim("No quota.") + "\n"
	}
	targets := domain.TargetsFromQuota(*q)
	var b strings.Builder
	b.WriteString(Header("Quota "+q.CourseID) + "\n")
	rows := make([][]string, 0, len(domain.AllWorkTypes))
	for _, wt := range domain.AllWorkTypes {
		themes := fmt.Sprint(targets.For(wt))
		if wt == domain.WorkIndependentStudy {
			themes = Dim("-")
		}
		rows = append(rows, []string{WorkTypeBadge(wt), fmt.Sprint(q.Hours[wt]), themes})
	}
	b.WriteString(RenderTable([]string{"TYPE", "HOURS", "THEMES"}, rows))

	var odd []string
	for _, wt := range domain.BalancedWorkTypes {
		if q.Hours[wt]%domain.HoursPerTheme != 0 {
			odd = append(odd, wt.Label())
		}
	}
	if len(odd) > 0 {
		b.WriteString(StyleYellow.Render(fmt.Sprintf("  ⚠ odd hour quota for %s; one hour cannot be allocated", strings.Join(odd, ", "))) + "\n")
	}
	return b.String()
}

// FormatRuns renders stored runs as a table, newest first as given.
func FormatRuns(runs []*domain.Run) string {
	return formatRunsAt(runs, time.Now())
}

func formatRunsAt(runs []*domain.Run, now time.Time) string {
	if len(runs) == 0 {
		return Dim("No saved runs.") + "\n"
	}
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		course := r.CourseID
		if course == "" {
			course = Dim("-")
		}
		title := r.Title
		if title == "" {
			title = Dim("(untitled)")
		}
		rows = append(rows, []string{
			TruncID(r.ID),
			course,
			title,
			fmt.Sprint(len(r.Sections)),
			BalancePill(r.BalancingSuccess),
			HumanTimestampFrom(r.CreatedAt, now),
		})
	}
	return RenderTable([]string{"ID", "COURSE", "TITLE", "SECTIONS", "BALANCE", "CREATED"}, rows)
}

// FormatRun renders one stored run with its outline, summary and submission history.
func FormatRun(run *domain.Run, subs []*domain.Submission) string {
	var b strings.Builder
	title := run.Title
	if title == "" {
		title = "(untitled)"
	}
	meta := []string{"id " + run.ID}
	if run.CourseID != "" {
		meta = append(meta, "course "+run.CourseID)
	}
	meta = append(meta, run.CreatedAt.Format("2006-01-02 15:04"))
	b.WriteString(Bold(title) + "\n" + Dim(strings.Join(meta, " · ")) + "\n\n")

	b.WriteString(RenderOutlineTree(run.Sections))
	b.WriteString("\n")
	b.WriteString(FormatSummary(workload.Project(run.Sections, run.Targets)))

	if len(subs) > 0 {
		b.WriteString("\n" + Header("Submissions") + "\n")
		sorted := append([]*domain.Submission(nil), subs...)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].SubmittedAt.Before(sorted[j].SubmittedAt) })
		rows := make([][]string, 0, len(sorted))
		for _, s := range sorted {
			detail := s.RemoteID
			if s.Status == domain.SubmissionFailed {
				detail = s.Error
			}
			rows = append(rows, []string{fmt.Sprint(s.SectionOrder), s.SectionName, SubmissionPill(s.Status), detail})
		}
		b.WriteString(RenderTable([]string{"#", "SECTION", "STATUS", "DETAIL"}, rows))
	}
	return b.String()
}

// FormatSubmit renders the per-section outcome of a submission.
func FormatSubmit(resp *contract.SubmitResponse) string {
	var b strings.Builder
	b.WriteString(Header("Submitted to "+resp.CourseID) + "\n")
	rows := make([][]string, 0, len(resp.Results))
	for _, r := range resp.Results {
		status := SubmissionPill(domain.SubmissionAccepted)
		detail := r.RemoteID
		if r.Error != "" {
			status = SubmissionPill(domain.SubmissionFailed)
			detail = r.Error
		}
		rows = append(rows, []string{fmt.Sprint(r.Order), r.Name, status, detail})
	}
	b.WriteString(RenderTable([]string{"#", "SECTION", "STATUS", "DETAIL"}, rows))

	summary := fmt.Sprintf("%d accepted, %d failed", resp.Accepted, resp.Failed)
	if resp.Failed > 0 {
		b.WriteString(StyleRed.Render(summary) + "\n")
	} else {
		b.WriteString(StyleGreen.Render(summary) + "\n")
	}
	return b.String()
}

// FormatStatus renders component health and the stored run count.
func FormatStatus(resp *contract.StatusResponse) string {
	var b strings.Builder
	b.WriteString(Header("Status") + "\n")
	rows := [][]string{
		{"LLM", componentPill(resp.LLM), resp.LLM.Detail},
		{"LMS", componentPill(resp.LMS), resp.LMS.Detail},
	}
	b.WriteString(RenderTable([]string{"COMPONENT", "STATE", "DETAIL"}, rows))
	b.WriteString(fmt.Sprintf("\n%s %d\n", Dim("Saved runs:"), resp.RunCount))
	return b.String()
}

func componentPill(c contract.ComponentStatus) string {
	switch {
	case !c.Enabled:
		return StyleDim.Render("○ disabled")
	case c.Reachable:
		return StyleGreen.Render("● reachable")
	default:
		return StyleRed.Render("● unreachable")
	}
}
