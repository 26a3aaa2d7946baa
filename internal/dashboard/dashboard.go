// Package dashboard holds the penguin dashboard's controls, the filtered view
// derived from them, and the data behind each widget, wired together as a
// reactive graph.
package dashboard

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/jask/penguindash/internal/penguins"
	"github.com/jask/penguindash/internal/reactive"
)

// Widget names a consumer of the dashboard's derived values.
type Widget string

const (
	WidgetCounts    Widget = "species_counts"
	WidgetHistogram Widget = "histogram"
	WidgetDensity   Widget = "density"
	WidgetScatter   Widget = "scatter"
	WidgetTable     Widget = "table"

	// Observers of the controls themselves rather than derived data.
	WidgetHeader   Widget = "header"
	WidgetControls Widget = "controls"
)

// Widgets lists every data widget in display order.
var Widgets = []Widget{WidgetCounts, WidgetHistogram, WidgetDensity, WidgetScatter, WidgetTable}

const (
	CountsTitle  = "Unique Penguin Species Count by Island and Gender"
	ScatterTitle = "Scatter Plot of Body mass vs. Flipper Length"
	TableTitle   = "Penguins"

	// HistogramTitle does not name the attribute shown.
	HistogramTitle = "Distribution of Species by attribute"
)

func DensityTitle(attr penguins.Attribute) string {
	return fmt.Sprintf("Density Histogram of %s by Species", attr.Label())
}

// View is a point-in-time copy of the controls and every widget's data.
type View struct {
	Controls  Controls       `json:"controls" yaml:"controls"`
	Counts    []SpeciesCount `json:"species_counts" yaml:"species_counts"`
	Histogram Histogram      `json:"histogram" yaml:"histogram"`
	Density   Density        `json:"density" yaml:"density"`
	Scatter   Scatter        `json:"scatter" yaml:"scatter"`
	Rows      penguins.Table `json:"rows" yaml:"rows"`
}

// Dashboard owns the reactive graph for one set of controls over one table.
type Dashboard struct {
	graph *reactive.Graph
	table penguins.Table

	species   *reactive.Input[[]string]
	islands   *reactive.Input[[]string]
	sexes     *reactive.Input[[]string]
	attribute *reactive.Input[penguins.Attribute]
	bins      *reactive.Input[int]

	filtered  *reactive.Computed[penguins.Table]
	counts    *reactive.Computed[[]SpeciesCount]
	histogram *reactive.Computed[Histogram]
	density   *reactive.Computed[Density]
	scatter   *reactive.Computed[Scatter]

	effects []*reactive.Effect
	log     *zap.Logger
	metrics *Metrics
}

type Option func(*Dashboard)

func WithLogger(l *zap.Logger) Option {
	return func(d *Dashboard) {
		if l != nil {
			d.log = l
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(d *Dashboard) { d.metrics = m }
}

// New builds the graph over tbl starting from initial. The controls are
// normalized and must validate.
func New(tbl penguins.Table, initial Controls, opts ...Option) (*Dashboard, error) {
	initial = initial.Normalize()
	if err := initial.Validate(); err != nil {
		return nil, fmt.Errorf("initial controls: %w", err)
	}

	g := reactive.NewGraph()
	d := &Dashboard{graph: g, table: tbl, log: zap.NewNop()}
	for _, opt := range opts {
		opt(d)
	}
	g.OnRun(func(n reactive.NodeInfo) {
		d.metrics.observe(n)
		d.log.Debug("node evaluated", zap.String("node", n.Name), zap.String("kind", string(n.Kind)), zap.Int("runs", n.Runs))
	})

	eq := reactive.WithEqual(func(a, b []string) bool { return slices.Equal(a, b) })
	d.species = reactive.NewInput(g, "species", initial.Species, eq)
	d.islands = reactive.NewInput(g, "islands", initial.Islands, eq)
	d.sexes = reactive.NewInput(g, "sexes", initial.Sexes, eq)
	d.attribute = reactive.NewInput(g, "attribute", initial.Attribute)
	d.bins = reactive.NewInput(g, "bins", initial.Bins)

	d.filtered = reactive.NewComputed(g, "filtered", func() penguins.Table {
		rows := Filter(d.table, Controls{
			Species: d.species.Get(),
			Islands: d.islands.Get(),
			Sexes:   d.sexes.Get(),
		})
		d.metrics.setRows(rows.Len())
		d.log.Debug("filtered view", zap.Int("rows", rows.Len()))
		return rows
	})
	d.counts = reactive.NewComputed(g, string(WidgetCounts), func() []SpeciesCount {
		return CountSpecies(d.filtered.Get())
	})
	d.histogram = reactive.NewComputed(g, string(WidgetHistogram), func() Histogram {
		return BuildHistogram(d.filtered.Get(), d.attribute.Get(), d.bins.Get())
	})
	d.density = reactive.NewComputed(g, string(WidgetDensity), func() Density {
		return EstimateDensity(d.filtered.Get(), d.attribute.Get())
	})
	d.scatter = reactive.NewComputed(g, string(WidgetScatter), func() Scatter {
		return BuildScatter(d.filtered.Get())
	})
	return d, nil
}

// Graph exposes the underlying graph for introspection.
func (d *Dashboard) Graph() *reactive.Graph { return d.graph }

// Table returns the unfiltered dataset.
func (d *Dashboard) Table() penguins.Table { return d.table }

// Controls reads every input. Inside a subscriber this makes the subscriber
// depend on all of them.
func (d *Dashboard) Controls() Controls {
	return Controls{
		Species:   slices.Clone(d.species.Get()),
		Islands:   slices.Clone(d.islands.Get()),
		Sexes:     slices.Clone(d.sexes.Get()),
		Attribute: d.attribute.Get(),
		Bins:      d.bins.Get(),
	}
}

func (d *Dashboard) Attribute() penguins.Attribute { return d.attribute.Get() }
func (d *Dashboard) Bins() int                     { return d.bins.Get() }

func (d *Dashboard) Filtered() penguins.Table      { return d.filtered.Get() }
func (d *Dashboard) SpeciesCounts() []SpeciesCount { return d.counts.Get() }
func (d *Dashboard) Histogram() Histogram          { return d.histogram.Get() }
func (d *Dashboard) Density() Density              { return d.density.Get() }
func (d *Dashboard) Scatter() Scatter              { return d.scatter.Get() }

// SetSpecies replaces the species selection. Values are normalized; unknown
// values are rejected.
func (d *Dashboard) SetSpecies(vals []string) error {
	return d.setSet("species", d.species, vals, penguins.AllSpecies)
}

func (d *Dashboard) SetIslands(vals []string) error {
	return d.setSet("island", d.islands, vals, penguins.AllIslands)
}

func (d *Dashboard) SetSexes(vals []string) error {
	return d.setSet("sex", d.sexes, vals, penguins.AllSexes)
}

func (d *Dashboard) setSet(field string, in *reactive.Input[[]string], vals, vocab []string) error {
	vals = normalizeSet(vals, vocab)
	for _, v := range vals {
		if canonical(v, vocab) == "" {
			return &ValidationError{Field: field, Value: v, Suggestion: Suggest(v, vocab), Err: ErrUnknownValue}
		}
	}
	if in.Set(vals) {
		d.log.Debug("control changed", zap.String("node", in.Name()), zap.Strings("value", vals))
	}
	return nil
}

// Toggle flips one value of a set control. field is "species", "island" or
// "sex".
func (d *Dashboard) Toggle(field, value string) error {
	switch field {
	case "species":
		return d.SetSpecies(Toggle(d.species.Peek(), value, penguins.AllSpecies))
	case "island":
		return d.SetIslands(Toggle(d.islands.Peek(), value, penguins.AllIslands))
	case "sex":
		return d.SetSexes(Toggle(d.sexes.Peek(), value, penguins.AllSexes))
	}
	return fmt.Errorf("toggle %s: %w", field, ErrUnknownValue)
}

func (d *Dashboard) SetAttribute(attr penguins.Attribute) error {
	parsed, err := penguins.ParseAttribute(string(attr))
	if err != nil {
		return &ValidationError{Field: "attribute", Value: string(attr), Suggestion: Suggest(string(attr), penguins.AttributeNames()), Err: ErrUnknownValue}
	}
	if d.attribute.Set(parsed) {
		d.log.Debug("control changed", zap.String("node", "attribute"), zap.String("value", string(parsed)))
	}
	return nil
}

// SetBins rejects counts outside [MinBins, MaxBins].
func (d *Dashboard) SetBins(n int) error {
	if n < MinBins || n > MaxBins {
		return &ValidationError{Field: "bins", Value: fmt.Sprint(n), Err: fmt.Errorf("%w: want %d..%d", ErrBinsOutOfRange, MinBins, MaxBins)}
	}
	if d.bins.Set(n) {
		d.log.Debug("control changed", zap.String("node", "bins"), zap.Int("value", n))
	}
	return nil
}

// StepBins moves the bin count by delta, clamped into range.
func (d *Dashboard) StepBins(delta int) {
	_ = d.SetBins(ClampBins(d.bins.Peek() + delta))
}

// Apply replaces every control at once; subscribers run at most once.
func (d *Dashboard) Apply(c Controls) error {
	c = c.Normalize()
	if err := c.Validate(); err != nil {
		return err
	}
	d.graph.Batch(func() {
		d.species.Set(c.Species)
		d.islands.Set(c.Islands)
		d.sexes.Set(c.Sexes)
		d.attribute.Set(c.Attribute)
		d.bins.Set(c.Bins)
	})
	return nil
}

// Subscribe registers fn as an effect. It runs immediately and again after
// any value it read through d changes.
func (d *Dashboard) Subscribe(w Widget, fn func(d *Dashboard)) *reactive.Effect {
	e := reactive.NewEffect(d.graph, "render:"+string(w), func() { fn(d) })
	d.effects = append(d.effects, e)
	return e
}

// Close disposes every subscription.
func (d *Dashboard) Close() {
	for _, e := range d.effects {
		e.Dispose()
	}
	d.effects = nil
}

// Snapshot evaluates every widget and copies the results.
func (d *Dashboard) Snapshot() View {
	return View{
		Controls:  d.Controls(),
		Counts:    d.SpeciesCounts(),
		Histogram: d.Histogram(),
		Density:   d.Density(),
		Scatter:   d.Scatter(),
		Rows:      d.Filtered(),
	}
}
