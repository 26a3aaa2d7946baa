package widgets

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/penguindash/internal/dashboard"
)

// SpeciesBars draws one horizontal bar per species with its count and share.
type SpeciesBars struct {
	Counts []dashboard.SpeciesCount
}

func (b SpeciesBars) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	total := 0
	maxCount := 0
	nameW := 4
	for _, c := range b.Counts {
		total += c.Count
		maxCount = max(maxCount, c.Count)
		nameW = max(nameW, ansi.StringWidth(c.Species)+1)
	}
	if total == 0 {
		return Empty(width, height)
	}
	countW := len(fmt.Sprint(maxCount))

	lines := make([]string, 0, len(b.Counts)+2)
	for _, c := range b.Counts {
		pctText := fmt.Sprintf("%4.0f%%", float64(c.Count)/float64(total)*100)
		countText := fmt.Sprintf("%*d", countW, c.Count)
		rowNameW := min(nameW, max(0, width/3))
		barW := max(0, width-rowNameW-1-len(pctText)-1-countW)

		ratio := float64(c.Count) / float64(maxCount)
		filled := int(math.Round(float64(barW) * ratio))
		if filled < 1 && c.Count > 0 && barW > 0 {
			filled = 1
		}
		filled = min(filled, barW)

		style := SpeciesStyle(c.Species)
		line := padRight(style.Render(truncate(c.Species, rowNameW)), rowNameW) +
			style.Render(strings.Repeat("█", filled)) +
			lipgloss.NewStyle().Foreground(colorSurface2).Render(strings.Repeat("░", barW-filled)) +
			" " + mutedStyle.Render(pctText) + " " + valueStyle.Render(countText)
		lines = append(lines, padRight(line, width))
	}
	if len(lines)+2 <= height {
		lines = append(lines, "", mutedStyle.Render("total ")+valueStyle.Render(fmt.Sprint(total)))
	}
	return fitBlock(strings.Join(lines, "\n"), width, height)
}
