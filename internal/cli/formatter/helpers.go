package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// HumanTimestamp returns a relative timestamp for recent times and a date otherwise.
func HumanTimestamp(t time.Time) string {
	return HumanTimestampFrom(t, time.Now())
}

// HumanTimestampFrom is HumanTimestamp against a fixed reference time.
func HumanTimestampFrom(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < 0:
		return t.Format("Jan 2, 2006")
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return t.Format("Jan 2, 2006")
	}
}

// BalancePill renders the overall balancing outcome of a run.
func BalancePill(balanced bool) string {
	if balanced {
		return StyleGreen.Render("● BALANCED")
	}
	return StyleRed.Render("● UNBALANCED")
}

// SubmissionPill renders the status of one section submission.
func SubmissionPill(status domain.SubmissionStatus) string {
	switch status {
	case domain.SubmissionAccepted:
		return StyleGreen.Render("✔ accepted")
	case domain.SubmissionFailed:
		return StyleRed.Render("✘ failed")
	default:
		return StyleDim.Render(string(status))
	}
}

// WorkTypeBadge renders a work type's canonical label in its accent color.
func WorkTypeBadge(wt domain.WorkType) string {
	return WorkTypeStyle(wt).Render(wt.Label())
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// FormatHours renders an hour count like "12h".
func FormatHours(h int) string {
	return fmt.Sprintf("%dh", h)
}
