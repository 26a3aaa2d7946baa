package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jask/penguindash/internal/dashboard"
	"github.com/jask/penguindash/internal/penguins"
	"github.com/jask/penguindash/internal/reactive"
)

func defaultRows() int {
	return dashboard.Filter(penguins.MustDefault(), dashboard.DefaultControls()).Len()
}

func defaultView(t *testing.T) dashboard.View {
	t.Helper()
	d, err := dashboard.New(penguins.MustDefault(), dashboard.DefaultControls())
	require.NoError(t, err)
	return d.Snapshot()
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, defaultView(t), "JSON"))

	var got struct {
		Controls struct {
			Species []string `json:"species"`
			Bins    int      `json:"bins"`
		} `json:"controls"`
		Rows []penguins.Penguin `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Len(t, got.Rows, defaultRows())
	assert.Equal(t, dashboard.DefaultControls().Bins, got.Controls.Bins)
}

func TestWriteYAML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, defaultView(t), FormatYAML))

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Contains(t, got, "histogram")
	assert.Contains(t, got, "rows")
}

func TestWriteCSVUsesNA(t *testing.T) {
	t.Parallel()

	tbl := penguins.MustDefault()[:4]
	var buf bytes.Buffer
	require.NoError(t, WriteRows(&buf, tbl))

	written := buf.String()
	recs, err := csv.NewReader(strings.NewReader(written)).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 5)
	assert.Equal(t, Columns, recs[0])
	// The fourth row of the dataset has no measurements.
	assert.Equal(t, "NA", recs[4][2])
	assert.Equal(t, "NA", recs[4][6])

	// And round-trips through the loader.
	back, err := penguins.Load(strings.NewReader(written))
	require.NoError(t, err)
	assert.Equal(t, tbl.Len(), back.Len())
}

func TestWriteTextIsPlainInAscii(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, defaultView(t), FormatText, WithWidth(60), WithProfile(termenv.Ascii)))
	out := buf.String()

	assert.NotContains(t, out, "\x1b[")
	for _, want := range []string{
		"Palmer Penguins",
		dashboard.CountsTitle,
		dashboard.ScatterTitle,
		fmt.Sprintf("%d penguins match", defaultRows()),
		"Adelie",
		"Biscoe",
	} {
		assert.Contains(t, out, want)
	}
}

func TestWriteTextEmptyView(t *testing.T) {
	t.Parallel()

	c := dashboard.DefaultControls()
	c.Species = nil
	d, err := dashboard.New(penguins.MustDefault(), c)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, d.Snapshot(), FormatText))
	assert.Contains(t, buf.String(), "(no rows)")
	assert.Contains(t, buf.String(), "species: (none)")
}

func TestUnknownFormat(t *testing.T) {
	t.Parallel()

	err := Write(&bytes.Buffer{}, dashboard.View{}, "xml")
	require.ErrorIs(t, err, ErrUnknownFormat)

	_, err = ParseFormat("Parquet")
	require.ErrorIs(t, err, ErrUnknownFormat)

	f, err := ParseFormat(" CSV ")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)
}

func TestMermaidGraph(t *testing.T) {
	t.Parallel()

	d, err := dashboard.New(penguins.MustDefault(), dashboard.DefaultControls())
	require.NoError(t, err)
	d.Subscribe(dashboard.WidgetHistogram, func(d *dashboard.Dashboard) { d.Histogram() })

	out := MermaidGraph(d.Graph().Nodes())
	require.True(t, strings.HasPrefix(out, "graph LR\n"))

	ids := map[string]string{}
	for _, n := range d.Graph().Nodes() {
		ids[n.Name] = mermaidID(n)
	}
	assert.Contains(t, out, ids["species"]+`[/"species"/]`)
	assert.Contains(t, out, ids["filtered"]+" --> "+ids["histogram"])
	assert.Contains(t, out, ids["bins"]+" --> "+ids["histogram"])
	assert.Contains(t, out, ids["render:histogram"]+`[["render:histogram <br/> runs: 1"]]`)
	assert.Contains(t, out, "class "+ids["render:histogram"]+" effect")
}

func TestMermaidIDIsSafe(t *testing.T) {
	t.Parallel()

	id := mermaidID(reactive.NodeInfo{ID: 7, Name: "render:species counts"})
	assert.Equal(t, "n7_render_species_counts", id)
}
