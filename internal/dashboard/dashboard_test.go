package dashboard

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jask/penguindash/internal/penguins"
)

func newDefault(t *testing.T, opts ...Option) *Dashboard {
	t.Helper()
	d, err := New(penguins.MustDefault(), DefaultControls(), opts...)
	require.NoError(t, err)
	return d
}

func TestDefaultView(t *testing.T) {
	t.Parallel()

	v := newDefault(t).Snapshot()

	require.Equal(t, DefaultControls(), v.Controls)
	require.Len(t, v.Rows, 8)
	require.Equal(t, []SpeciesCount{{Species: "Adelie", Count: 8}}, v.Counts)

	require.Equal(t, 10, v.Histogram.Bins)
	require.Len(t, v.Histogram.Edges, 11)
	assert.InDelta(t, 35.0, v.Histogram.Edges[0], 1e-9)
	assert.InDelta(t, 40.5, v.Histogram.Edges[10], 1e-9)
	require.Len(t, v.Histogram.Series, 1)
	assert.Equal(t, []int{2, 2, 1, 0, 0, 2, 0, 0, 0, 1}, v.Histogram.Series[0].Counts)

	require.Len(t, v.Density.Series, 1)
	assert.Equal(t, 8, v.Density.Series[0].N)
	assert.Len(t, v.Density.Grid, DensityPoints)

	require.Len(t, v.Scatter.Points, 8)
	assert.Equal(t, ScatterPoint{Species: "Adelie", X: 3400, Y: 174}, v.Scatter.Points[0])
}

func TestFilterSemantics(t *testing.T) {
	t.Parallel()

	tbl := penguins.MustDefault()
	all := Controls{Species: penguins.AllSpecies, Islands: penguins.AllIslands, Sexes: penguins.AllSexes}

	cases := []struct {
		name string
		c    Controls
		want int
	}{
		{"defaults", DefaultControls(), 8},
		{"everything selected skips missing sex", all, 91},
		{"empty species keeps nothing", Controls{Islands: penguins.AllIslands, Sexes: penguins.AllSexes}, 0},
		{"empty sexes keeps nothing", Controls{Species: penguins.AllSpecies, Islands: penguins.AllIslands}, 0},
		{"dream females", Controls{Species: penguins.AllSpecies, Islands: []string{"Dream"}, Sexes: []string{"female"}}, 18},
		{"species absent from island", Controls{Species: []string{"Chinstrap"}, Islands: []string{"Biscoe"}, Sexes: penguins.AllSexes}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Filter(tbl, tc.c)
			require.Equal(t, tc.want, got.Len())
			for _, p := range got {
				assert.NotEmpty(t, p.Sex)
			}
		})
	}
}

func TestEmptySelectionYieldsEmptyWidgets(t *testing.T) {
	t.Parallel()

	d := newDefault(t)
	require.NoError(t, d.SetSexes(nil))

	v := d.Snapshot()
	assert.Empty(t, v.Rows)
	assert.Empty(t, v.Counts)
	assert.True(t, v.Histogram.Empty())
	assert.Nil(t, v.Histogram.Edges)
	assert.Empty(t, v.Density.Series)
	assert.Empty(t, v.Scatter.Points)
}

type runCounter map[Widget]int

func subscribeAll(d *Dashboard) runCounter {
	runs := runCounter{}
	d.Subscribe(WidgetCounts, func(d *Dashboard) { runs[WidgetCounts]++; _ = d.SpeciesCounts() })
	d.Subscribe(WidgetHistogram, func(d *Dashboard) { runs[WidgetHistogram]++; _ = d.Histogram() })
	d.Subscribe(WidgetDensity, func(d *Dashboard) { runs[WidgetDensity]++; _ = d.Density() })
	d.Subscribe(WidgetScatter, func(d *Dashboard) { runs[WidgetScatter]++; _ = d.Scatter() })
	d.Subscribe(WidgetTable, func(d *Dashboard) { runs[WidgetTable]++; _ = d.Filtered() })
	return runs
}

func TestOnlyAffectedWidgetsRerun(t *testing.T) {
	t.Parallel()

	d := newDefault(t)
	runs := subscribeAll(d)
	require.Equal(t, runCounter{WidgetCounts: 1, WidgetHistogram: 1, WidgetDensity: 1, WidgetScatter: 1, WidgetTable: 1}, runs)

	require.NoError(t, d.SetBins(5))
	assert.Equal(t, runCounter{WidgetCounts: 1, WidgetHistogram: 2, WidgetDensity: 1, WidgetScatter: 1, WidgetTable: 1}, runs)

	require.NoError(t, d.SetAttribute(penguins.BodyMass))
	assert.Equal(t, runCounter{WidgetCounts: 1, WidgetHistogram: 3, WidgetDensity: 2, WidgetScatter: 1, WidgetTable: 1}, runs)

	require.NoError(t, d.SetIslands([]string{"Biscoe", "Dream"}))
	assert.Equal(t, runCounter{WidgetCounts: 2, WidgetHistogram: 4, WidgetDensity: 3, WidgetScatter: 2, WidgetTable: 2}, runs)

	require.NoError(t, d.SetIslands([]string{"dream", "BISCOE"}), "same selection in another spelling")
	assert.Equal(t, 2, runs[WidgetCounts], "normalized equal selection must not rerun")
	assert.Equal(t, 13, d.Filtered().Len())
}

func TestApplyRunsSubscribersOnce(t *testing.T) {
	t.Parallel()

	d := newDefault(t)
	runs := subscribeAll(d)
	err := d.Apply(Controls{
		Species:   penguins.AllSpecies,
		Islands:   penguins.AllIslands,
		Sexes:     penguins.AllSexes,
		Attribute: penguins.FlipperLength,
		Bins:      20,
	})
	require.NoError(t, err)
	for _, w := range Widgets {
		assert.Equal(t, 2, runs[w], w)
	}
	assert.Equal(t, 91, d.Filtered().Len())
	assert.Len(t, d.SpeciesCounts(), 3)
}

func TestCloseDetachesSubscribers(t *testing.T) {
	t.Parallel()

	d := newDefault(t)
	runs := subscribeAll(d)
	d.Close()
	require.NoError(t, d.SetBins(3))
	assert.Equal(t, 1, runs[WidgetHistogram])
}

func TestToggle(t *testing.T) {
	t.Parallel()

	d := newDefault(t)
	require.NoError(t, d.Toggle("species", "gentoo"))
	assert.Equal(t, []string{"Adelie", "Gentoo"}, d.Controls().Species)
	assert.Equal(t, 19, d.Filtered().Len())

	require.NoError(t, d.Toggle("species", "Adelie"))
	assert.Equal(t, []string{"Gentoo"}, d.Controls().Species)

	require.ErrorIs(t, d.Toggle("colour", "red"), ErrUnknownValue)
}

func TestSettersRejectInvalidValues(t *testing.T) {
	t.Parallel()

	d := newDefault(t)

	err := d.SetSpecies([]string{"Adelie", "Gentu"})
	require.ErrorIs(t, err, ErrUnknownValue)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "species", verr.Field)
	assert.Equal(t, "Gentoo", verr.Suggestion)
	assert.Equal(t, []string{"Adelie"}, d.Controls().Species, "rejected update must not apply")

	require.ErrorIs(t, d.SetBins(0), ErrBinsOutOfRange)
	require.ErrorIs(t, d.SetBins(21), ErrBinsOutOfRange)
	require.ErrorIs(t, d.SetAttribute("bill_lenght_mm"), ErrUnknownValue)

	d.StepBins(100)
	assert.Equal(t, MaxBins, d.Bins())
	d.StepBins(-100)
	assert.Equal(t, MinBins, d.Bins())

	_, err = New(penguins.MustDefault(), Controls{Species: []string{"Emperor"}, Attribute: penguins.BillDepth, Bins: 3})
	require.ErrorIs(t, err, ErrUnknownValue)
}

func TestBinsOutOfRangeAreRejectedNotClamped(t *testing.T) {
	t.Parallel()

	for _, bins := range []int{0, -1, 21, 50} {
		c := DefaultControls()
		c.Bins = bins
		_, err := New(penguins.MustDefault(), c)
		require.ErrorIs(t, err, ErrBinsOutOfRange, "New bins=%d", bins)

		d := newDefault(t)
		require.ErrorIs(t, d.Apply(c), ErrBinsOutOfRange, "Apply bins=%d", bins)
		assert.Equal(t, DefaultBins, d.Bins(), "rejected Apply must not change bins")
	}
}

func TestMetrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	require.Same(t, m.Recomputations, NewMetrics(reg).Recomputations)

	d := newDefault(t, WithMetrics(m))
	_ = d.Snapshot()
	assert.InDelta(t, 8, testutil.ToFloat64(m.FilteredRows), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Recomputations.WithLabelValues("filtered", "computed")), 0)

	require.NoError(t, d.SetSpecies(nil))
	_ = d.Filtered()
	assert.InDelta(t, 0, testutil.ToFloat64(m.FilteredRows), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.Recomputations.WithLabelValues("filtered", "computed")), 0)
}

func TestTitles(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Density Histogram of Flipper Length Mm by Species", DensityTitle(penguins.FlipperLength))
	assert.Equal(t, "Distribution of Species by attribute", HistogramTitle)
}
