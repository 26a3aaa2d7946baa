package widgets

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/penguindash/internal/dashboard"
)

// HistogramChart stacks each species' count per bin into one column.
type HistogramChart struct {
	Histogram dashboard.Histogram
}

func (c HistogramChart) Render(width, height int) string {
	h := c.Histogram
	if width <= 0 || height <= 0 {
		return ""
	}
	if h.Empty() {
		return Empty(width, height)
	}
	species := make([]string, 0, len(h.Series))
	for _, s := range h.Series {
		species = append(species, s.Species)
	}
	peak := 0
	for _, t := range h.Totals() {
		peak = max(peak, t)
	}

	header := padRight(Legend(species), width)
	footer := rangeAxis(h.Edges[0], h.Edges[len(h.Edges)-1], h.Attribute.Label(), width)
	chartH := height - 2
	if chartH < 3 {
		return fitBlock(header+"\n"+footer, width, height)
	}

	data := make([]barchart.BarData, h.Bins)
	for i := range data {
		values := make([]barchart.BarValue, 0, len(h.Series))
		for _, s := range h.Series {
			values = append(values, barchart.BarValue{
				Name:  s.Species,
				Value: float64(s.Counts[i]),
				Style: SpeciesStyle(s.Species),
			})
		}
		data[i] = barchart.BarData{Label: binLabel(i, h.Bins), Values: values}
	}
	bc := barchart.New(width, chartH)
	bc.PushAll(data)
	bc.Draw()

	body := bc.View()
	top := mutedStyle.Render(fmt.Sprintf("max %d per bin", peak))
	return fitBlock(header+"\n"+overlayTopRight(body, top, width)+"\n"+footer, width, height)
}

// binLabel numbers bins from 1, labelling sparsely when there are many.
func binLabel(i, bins int) string {
	if bins > 10 && i%5 != 0 && i != bins-1 {
		return ""
	}
	return fmt.Sprint(i + 1)
}

// rangeAxis renders "lo ─── label ─── hi" across width.
func rangeAxis(lo, hi float64, label string, width int) string {
	left := formatTick(lo)
	right := formatTick(hi)
	mid := " " + label + " "
	fill := width - ansi.StringWidth(left) - ansi.StringWidth(right) - ansi.StringWidth(mid)
	if fill < 2 {
		return padRight(mutedStyle.Render(left+" … "+right), width)
	}
	l := fill / 2
	return mutedStyle.Render(left+strings.Repeat("─", l)) + valueStyle.Render(mid) + mutedStyle.Render(strings.Repeat("─", fill-l)+right)
}

func overlayTopRight(body, note string, width int) string {
	lines := strings.Split(body, "\n")
	if len(lines) == 0 {
		return body
	}
	noteW := ansi.StringWidth(note)
	if noteW >= width {
		return body
	}
	lines[0] = padRight(lines[0], width-noteW) + note
	return strings.Join(lines, "\n")
}

// formatTick keeps axis labels short: integers stay integers, small values
// keep up to three decimals.
func formatTick(v float64) string {
	switch {
	case v == float64(int64(v)):
		return fmt.Sprintf("%d", int64(v))
	case v >= 100 || v <= -100:
		return fmt.Sprintf("%.0f", v)
	case v >= 1 || v <= -1:
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.1f", v), "0"), ".")
	default:
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.3f", v), "0"), ".")
	}
}
