package widgets

import (
	"math"
	"strings"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/linechart"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/penguindash/internal/dashboard"
)

const (
	plotMinWidth  = 12
	plotMinHeight = 5
)

var (
	plotAxisStyle  = lipgloss.NewStyle().Foreground(colorSurface2)
	plotLabelStyle = lipgloss.NewStyle().Foreground(colorOverlay1)
)

// newPlot sets up an empty chart with axes and tick labels drawn.
func newPlot(width, height int, minX, maxX, minY, maxY float64) *linechart.Model {
	if minX == maxX {
		minX, maxX = minX-0.5, maxX+0.5
	}
	if minY == maxY {
		minY, maxY = minY-0.5, maxY+0.5
	}
	chart := linechart.New(width, height, minX, maxX, minY, maxY)
	chart.AxisStyle = plotAxisStyle
	chart.LabelStyle = plotLabelStyle
	chart.XLabelFormatter = func(_ int, v float64) string { return formatTick(v) }
	chart.YLabelFormatter = func(_ int, v float64) string { return formatTick(v) }
	chart.SetXStep(2)
	chart.SetYStep(2)
	chart.DrawXYAxisAndLabel()
	return &chart
}

// plotCell maps a data point onto the canvas the same way the axes do.
func plotCell(chart *linechart.Model, x, y float64) (canvas.Point, bool) {
	scaled := chart.ScaleFloat64Point(canvas.Float64Point{X: x, Y: y})
	p := canvas.CanvasPointFromFloat64Point(chart.Origin(), scaled)
	if chart.YStep() > 0 {
		p.X++
	}
	if chart.XStep() > 0 {
		p.Y--
	}
	origin := chart.Origin()
	inside := p.X > origin.X && p.X < chart.Width() && p.Y >= origin.Y-chart.GraphHeight() && p.Y < origin.Y
	return p, inside
}

func plotRune(chart *linechart.Model, x, y float64, r rune, style lipgloss.Style) {
	if p, ok := plotCell(chart, x, y); ok {
		chart.Canvas.SetRuneWithStyle(p, r, style)
	}
}

// DensityPlot draws one curve per species on a shared grid.
type DensityPlot struct {
	Density dashboard.Density
}

func (d DensityPlot) Render(width, height int) string {
	den := d.Density
	if width <= 0 || height <= 0 {
		return ""
	}
	if len(den.Series) == 0 {
		return Empty(width, height)
	}
	species := make([]string, 0, len(den.Series))
	for _, s := range den.Series {
		species = append(species, s.Species)
	}
	header := padRight(Legend(species), width)
	if width < plotMinWidth || height-1 < plotMinHeight {
		return fitBlock(header, width, height)
	}

	grid := den.Grid
	chart := newPlot(width, height-1, grid[0], grid[len(grid)-1], 0, den.MaxValue())
	for _, s := range den.Series {
		style := SpeciesStyle(s.Species)
		for i := 1; i < len(grid); i++ {
			drawSegment(chart, grid[i-1], s.Values[i-1], grid[i], s.Values[i], style)
		}
	}
	return fitBlock(header+"\n"+chart.View(), width, height)
}

// drawSegment interpolates between two samples in data space densely enough
// to leave no gaps at terminal resolution.
func drawSegment(chart *linechart.Model, x0, y0, x1, y1 float64, style lipgloss.Style) {
	p0, _ := plotCell(chart, x0, y0)
	p1, _ := plotCell(chart, x1, y1)
	steps := max(1, max(absInt(p1.X-p0.X), absInt(p1.Y-p0.Y)))
	for k := 0; k <= steps; k++ {
		t := float64(k) / float64(steps)
		plotRune(chart, x0+(x1-x0)*t, y0+(y1-y0)*t, '•', style)
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// ScatterPlot draws one marker per penguin, coloured by species.
type ScatterPlot struct {
	Scatter dashboard.Scatter
}

func (s ScatterPlot) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	minX, maxX, minY, maxY, ok := s.Scatter.Bounds()
	if !ok {
		return Empty(width, height)
	}
	seen := map[string]bool{}
	var species []string
	for _, p := range s.Scatter.Points {
		if !seen[p.Species] {
			seen[p.Species] = true
			species = append(species, p.Species)
		}
	}
	axes := mutedStyle.Render("x " + s.Scatter.XAttribute.Label() + "  y " + s.Scatter.YAttribute.Label())
	header := padRight(Legend(species)+"   "+axes, width)
	if width < plotMinWidth || height-1 < plotMinHeight {
		return fitBlock(header, width, height)
	}

	padX := math.Max((maxX-minX)*0.05, 1)
	padY := math.Max((maxY-minY)*0.05, 1)
	chart := newPlot(width, height-1, minX-padX, maxX+padX, minY-padY, maxY+padY)
	for _, p := range s.Scatter.Points {
		plotRune(chart, p.X, p.Y, '●', SpeciesStyle(p.Species))
	}
	return fitBlock(header+"\n"+strings.TrimRight(chart.View(), "\n"), width, height)
}
