package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock  = "█"
	emptyBlock   = "░"
	surplusBlock = "▓"
)

// RenderCoverage renders how far count reaches target, like [██████░░] 6/8.
// A surplus is drawn past the bar in yellow. Zero targets render the count only.
func RenderCoverage(count, target, width int) string {
	if width < 2 {
		width = 2
	}
	if target <= 0 {
		return Dim(fmt.Sprintf("%d", count))
	}

	filled := count * width / target
	if filled > width {
		filled = width
	}
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	if count < target {
		style = StyleRed
	}
	out := fmt.Sprintf("[%s] %d/%d", style.Render(bar), count, target)
	if count > target {
		extra := count - target
		if extra > width {
			extra = width
		}
		out = fmt.Sprintf("[%s%s] %d/%d", style.Render(bar), StyleYellow.Render(strings.Repeat(surplusBlock, extra)), count, target)
	}
	return out
}
