package widgets

import (
	"math"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// VStack stacks widgets top to bottom. Fixed pins a row to an exact height
// (0 = flexible); flexible rows share what is left according to Ratios.
type VStack struct {
	Widgets []Widget
	Spacing int
	Ratios  []float64
	Fixed   []int
}

func (v VStack) Render(width, height int) string {
	if len(v.Widgets) == 0 || width <= 0 || height <= 0 {
		return ""
	}
	spacingTotal := max(0, v.Spacing*(len(v.Widgets)-1))
	usable := max(1, height-spacingTotal)
	heights := v.heights(usable)
	lines := make([]string, 0, height)
	for i, w := range v.Widgets {
		if heights[i] <= 0 {
			continue
		}
		lines = append(lines, fitBlock(w.Render(width, heights[i]), width, heights[i]))
		if i < len(v.Widgets)-1 {
			for s := 0; s < v.Spacing; s++ {
				lines = append(lines, strings.Repeat(" ", width))
			}
		}
	}
	return strings.Join(lines, "\n")
}

func (v VStack) heights(total int) []int {
	n := len(v.Widgets)
	out := make([]int, n)
	flexIdx := make([]int, 0, n)
	flexRatios := make([]float64, 0, n)
	remaining := total
	for i := range v.Widgets {
		if i < len(v.Fixed) && v.Fixed[i] > 0 {
			out[i] = min(v.Fixed[i], remaining)
			remaining -= out[i]
			continue
		}
		flexIdx = append(flexIdx, i)
		if i < len(v.Ratios) {
			flexRatios = append(flexRatios, v.Ratios[i])
		}
	}
	if len(flexIdx) == 0 || remaining <= 0 {
		return out
	}
	if len(flexRatios) != len(flexIdx) {
		flexRatios = nil
	}
	for j, h := range splitWidths(remaining, len(flexIdx), flexRatios) {
		out[flexIdx[j]] = h
	}
	return out
}

// HStack lays widgets out left to right with Gap blank columns between them.
type HStack struct {
	Widgets []Widget
	Ratios  []float64
	Gap     int
}

func (h HStack) Render(width, height int) string {
	if len(h.Widgets) == 0 || width <= 0 || height <= 0 {
		return ""
	}
	gapTotal := max(0, h.Gap*(len(h.Widgets)-1))
	usable := max(1, width-gapTotal)
	widths := splitWidths(usable, len(h.Widgets), h.Ratios)
	rendered := make([][]string, len(h.Widgets))
	for i, w := range h.Widgets {
		rendered[i] = strings.Split(fitBlock(w.Render(max(1, widths[i]), height), widths[i], height), "\n")
	}
	out := make([]string, 0, height)
	for line := 0; line < height; line++ {
		cols := make([]string, len(rendered))
		for i := range rendered {
			cols[i] = rendered[i][line]
		}
		out = append(out, strings.Join(cols, strings.Repeat(" ", h.Gap)))
	}
	return strings.Join(out, "\n")
}

func splitWidths(total, n int, ratios []float64) []int {
	if n <= 0 {
		return nil
	}
	if len(ratios) != n {
		width := total / n
		out := make([]int, n)
		for i := range out {
			out[i] = width
		}
		for i := 0; i < total%n; i++ {
			out[i]++
		}
		return out
	}
	weights := make([]float64, n)
	sum := 0.0
	for i, r := range ratios {
		if r <= 0 {
			r = 1
		}
		weights[i] = r
		sum += r
	}
	out := make([]int, n)
	used := 0
	for i := range out {
		w := int(math.Floor((weights[i] / sum) * float64(total)))
		out[i] = w
		used += w
	}
	for i := 0; used < total; i = (i + 1) % n {
		out[i]++
		used++
	}
	return out
}

// fitBlock pads or crops s to exactly height lines of exactly width cells.
func fitBlock(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i := range lines {
		lines[i] = padRight(lines[i], width)
	}
	return strings.Join(lines, "\n")
}

func padRight(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "")
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return ansi.Truncate(s, width, "…")
}
