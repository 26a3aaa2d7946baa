package dashboard

import (
	"math"
	"slices"

	"github.com/jask/penguindash/internal/penguins"
)

// Filter keeps rows whose species, island and sex are all selected. An empty
// selection keeps nothing, and a row with a missing sex never matches.
func Filter(tbl penguins.Table, c Controls) penguins.Table {
	species := toSet(c.Species)
	islands := toSet(c.Islands)
	sexes := toSet(c.Sexes)
	return tbl.Where(func(p penguins.Penguin) bool {
		return species[p.Species] && islands[p.Island] && p.Sex != "" && sexes[p.Sex]
	})
}

func toSet(vals []string) map[string]bool {
	set := make(map[string]bool, len(vals))
	for _, v := range vals {
		set[v] = true
	}
	return set
}

// SpeciesCount is one bar of the species count chart.
type SpeciesCount struct {
	Species string `json:"species" yaml:"species"`
	Count   int    `json:"count" yaml:"count"`
}

// CountSpecies counts rows per species, for species that occur.
func CountSpecies(tbl penguins.Table) []SpeciesCount {
	counts := make(map[string]int)
	for _, p := range tbl {
		counts[p.Species]++
	}
	out := make([]SpeciesCount, 0, len(counts))
	for _, s := range tbl.Species() {
		out = append(out, SpeciesCount{Species: s, Count: counts[s]})
	}
	return out
}

// HistogramSeries holds one species' counts per bin.
type HistogramSeries struct {
	Species string `json:"species" yaml:"species"`
	Counts  []int  `json:"counts" yaml:"counts"`
}

// Histogram is a histogram of one attribute with one series per species,
// drawn stacked. Edges has Bins+1
// entries; bin i covers [Edges[i], Edges[i+1]) and the last bin is closed.
type Histogram struct {
	Attribute penguins.Attribute `json:"attribute" yaml:"attribute"`
	Bins      int                `json:"bins" yaml:"bins"`
	Edges     []float64          `json:"edges" yaml:"edges"`
	Series    []HistogramSeries  `json:"series" yaml:"series"`
}

// Empty reports whether no value fell into any bin.
func (h Histogram) Empty() bool {
	return len(h.Series) == 0
}

// Totals sums the series per bin.
func (h Histogram) Totals() []int {
	out := make([]int, h.Bins)
	for _, s := range h.Series {
		for i, c := range s.Counts {
			out[i] += c
		}
	}
	return out
}

// finite is Value with infinities treated as missing.
func finite(p penguins.Penguin, attr penguins.Attribute) (float64, bool) {
	v, ok := p.Value(attr)
	if !ok || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// BuildHistogram bins the attribute values of tbl into equal-width bins
// shared by all species. Missing values are skipped.
func BuildHistogram(tbl penguins.Table, attr penguins.Attribute, bins int) Histogram {
	bins = ClampBins(bins)
	h := Histogram{Attribute: attr, Bins: bins}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range tbl {
		if v, ok := finite(p, attr); ok {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if math.IsInf(lo, 1) {
		return h
	}
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	width := (hi - lo) / float64(bins)
	h.Edges = make([]float64, bins+1)
	for i := range h.Edges {
		h.Edges[i] = lo + float64(i)*width
	}
	h.Edges[bins] = hi

	bySpecies := make(map[string][]int)
	for _, p := range tbl {
		v, ok := finite(p, attr)
		if !ok {
			continue
		}
		idx := min(int((v-lo)/width), bins-1)
		counts, ok := bySpecies[p.Species]
		if !ok {
			counts = make([]int, bins)
			bySpecies[p.Species] = counts
		}
		counts[idx]++
	}
	for _, s := range tbl.Species() {
		if counts, ok := bySpecies[s]; ok {
			h.Series = append(h.Series, HistogramSeries{Species: s, Counts: counts})
		}
	}
	return h
}

// DensityPoints is the samples per grid point in a density curve.
const DensityPoints = 100

// DensitySeries is one species' estimated density on the shared grid.
type DensitySeries struct {
	Species   string    `json:"species" yaml:"species"`
	Bandwidth float64   `json:"bandwidth" yaml:"bandwidth"`
	N         int       `json:"n" yaml:"n"`
	Values    []float64 `json:"values" yaml:"values"`
}

// Density holds per-species kernel density curves over a common grid.
type Density struct {
	Attribute penguins.Attribute `json:"attribute" yaml:"attribute"`
	Grid      []float64          `json:"grid" yaml:"grid"`
	Series    []DensitySeries    `json:"series" yaml:"series"`
}

// MaxValue returns the peak density across all series.
func (d Density) MaxValue() float64 {
	peak := 0.0
	for _, s := range d.Series {
		for _, v := range s.Values {
			peak = math.Max(peak, v)
		}
	}
	return peak
}

// EstimateDensity computes a Gaussian kernel density estimate per species
// with Silverman's bandwidth. Species with fewer than two values are left
// out.
func EstimateDensity(tbl penguins.Table, attr penguins.Attribute) Density {
	d := Density{Attribute: attr}
	samples := make(map[string][]float64)
	for _, p := range tbl {
		if v, ok := finite(p, attr); ok {
			samples[p.Species] = append(samples[p.Species], v)
		}
	}

	type est struct {
		species string
		xs      []float64
		bw      float64
	}
	var ests []est
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range tbl.Species() {
		xs := samples[s]
		if len(xs) < 2 {
			continue
		}
		slices.Sort(xs)
		bw := silverman(xs)
		ests = append(ests, est{species: s, xs: xs, bw: bw})
		lo = math.Min(lo, xs[0]-3*bw)
		hi = math.Max(hi, xs[len(xs)-1]+3*bw)
	}
	if len(ests) == 0 {
		return d
	}

	d.Grid = make([]float64, DensityPoints)
	step := (hi - lo) / float64(DensityPoints-1)
	for i := range d.Grid {
		d.Grid[i] = lo + float64(i)*step
	}
	for _, e := range ests {
		vals := make([]float64, DensityPoints)
		norm := 1 / (float64(len(e.xs)) * e.bw * math.Sqrt(2*math.Pi))
		for i, x := range d.Grid {
			sum := 0.0
			for _, xi := range e.xs {
				u := (x - xi) / e.bw
				sum += math.Exp(-0.5 * u * u)
			}
			vals[i] = sum * norm
		}
		d.Series = append(d.Series, DensitySeries{Species: e.species, Bandwidth: e.bw, N: len(e.xs), Values: vals})
	}
	return d
}

// silverman expects sorted input with at least two values.
func silverman(xs []float64) float64 {
	n := float64(len(xs))
	sd := stddev(xs)
	iqr := quantile(xs, 0.75) - quantile(xs, 0.25)
	spread := sd
	if iqr > 0 {
		spread = math.Min(sd, iqr/1.34)
	}
	if spread <= 0 {
		spread = sd
	}
	if spread <= 0 {
		return 1
	}
	return 0.9 * spread * math.Pow(n, -0.2)
}

func stddev(xs []float64) float64 {
	mean := 0.0
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	ss := 0.0
	for _, x := range xs {
		ss += (x - mean) * (x - mean)
	}
	return math.Sqrt(ss / float64(len(xs)-1))
}

// quantile uses linear interpolation between closest ranks.
func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	i := int(pos)
	if i >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(i)
	return sorted[i] + frac*(sorted[i+1]-sorted[i])
}

// ScatterPoint is one penguin on the body mass / flipper length plane.
type ScatterPoint struct {
	Species string  `json:"species" yaml:"species"`
	X       float64 `json:"x" yaml:"x"`
	Y       float64 `json:"y" yaml:"y"`
}

// Scatter pairs body mass (X) with flipper length (Y).
type Scatter struct {
	XAttribute penguins.Attribute `json:"x_attribute" yaml:"x_attribute"`
	YAttribute penguins.Attribute `json:"y_attribute" yaml:"y_attribute"`
	Points     []ScatterPoint     `json:"points" yaml:"points"`
}

// Bounds returns the extent of the points; ok is false when there are none.
func (s Scatter) Bounds() (minX, maxX, minY, maxY float64, ok bool) {
	if len(s.Points) == 0 {
		return 0, 0, 0, 0, false
	}
	minX, maxX = s.Points[0].X, s.Points[0].X
	minY, maxY = s.Points[0].Y, s.Points[0].Y
	for _, p := range s.Points[1:] {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return minX, maxX, minY, maxY, true
}

// BuildScatter keeps rows where both measurements are present.
func BuildScatter(tbl penguins.Table) Scatter {
	s := Scatter{XAttribute: penguins.BodyMass, YAttribute: penguins.FlipperLength}
	for _, p := range tbl {
		x, okX := finite(p, s.XAttribute)
		y, okY := finite(p, s.YAttribute)
		if okX && okY {
			s.Points = append(s.Points, ScatterPoint{Species: p.Species, X: x, Y: y})
		}
	}
	return s
}
