package server

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/jask/penguindash/internal/dashboard"
	"github.com/jask/penguindash/internal/penguins"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(New(penguins.MustDefault(), dashboard.DefaultControls()).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, ts *httptest.Server, path string) (*http.Response, string) {
	t.Helper()
	resp, err := ts.Client().Get(ts.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestHealthzCarriesRequestID(t *testing.T) {
	ts := newTestServer(t)

	resp, body := get(t, ts, "/healthz")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, body)
	assert.NotEmpty(t, resp.Header.Get(RequestIDHeader))

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set(RequestIDHeader, "abc-123")
	resp, err = ts.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "abc-123", resp.Header.Get(RequestIDHeader))
}

func TestControlsListsVocabularies(t *testing.T) {
	ts := newTestServer(t)

	resp, body := get(t, ts, "/api/controls")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got controlsResponse
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.Equal(t, penguins.AllSpecies, got.Species)
	assert.Len(t, got.Attributes, len(penguins.Attributes))
	assert.Equal(t, binsRange{Min: dashboard.MinBins, Max: dashboard.MaxBins, Default: dashboard.DefaultBins}, got.Bins)
	if diff := cmp.Diff(dashboard.DefaultControls(), got.Defaults); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestViewUsesDefaultsAndQuery(t *testing.T) {
	ts := newTestServer(t)

	var v struct {
		Controls dashboard.Controls `json:"controls"`
		Rows     []penguins.Penguin `json:"rows"`
	}
	_, body := get(t, ts, "/api/view")
	require.NoError(t, json.Unmarshal([]byte(body), &v))
	assert.Len(t, v.Rows, dashboard.Filter(penguins.MustDefault(), dashboard.DefaultControls()).Len())

	_, body = get(t, ts, "/api/view?species=Adelie&species=gentoo&island=Biscoe,Dream&sex=&bins=4&attribute=body_mass_g")
	require.NoError(t, json.Unmarshal([]byte(body), &v))
	want := dashboard.Controls{
		Species:   []string{"Adelie", "Gentoo"},
		Islands:   []string{"Biscoe", "Dream"},
		Sexes:     []string{},
		Attribute: penguins.BodyMass,
		Bins:      4,
	}
	if diff := cmp.Diff(want, v.Controls); diff != "" {
		t.Fatalf("controls mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, v.Rows)
}

func TestViewRejectsUnknownValues(t *testing.T) {
	ts := newTestServer(t)

	for _, tc := range []struct {
		query      string
		suggestion string
	}{
		{"species=Adelei", "Adelie"},
		{"attribute=body_mass", "body_mass_g"},
		{"bins=many", ""},
		{"bins=0", ""},
		{"bins=50", ""},
	} {
		resp, body := get(t, ts, "/api/view?"+tc.query)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode, tc.query)
		var got errorResponse
		require.NoError(t, json.Unmarshal([]byte(body), &got))
		assert.NotEmpty(t, got.Error, tc.query)
		assert.Equal(t, tc.suggestion, got.Suggestion, tc.query)
	}

	_, body := get(t, ts, "/api/view?bins=50")
	assert.Contains(t, body, dashboard.ErrBinsOutOfRange.Error())
}

func TestViewInOtherFormats(t *testing.T) {
	ts := newTestServer(t)

	resp, body := get(t, ts, "/api/view?format=text")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, dashboard.ScatterTitle)
	assert.NotContains(t, body, "\x1b[")

	resp, _ = get(t, ts, "/api/view?format=xml")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRowsAsCSV(t *testing.T) {
	ts := newTestServer(t)

	resp, body := get(t, ts, "/api/rows?format=csv&island=Torgersen")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv; charset=utf-8", resp.Header.Get("Content-Type"))
	recs, err := csv.NewReader(strings.NewReader(body)).ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, recs)
	for _, rec := range recs[1:] {
		assert.Equal(t, []string{"Adelie", "Torgersen"}, rec[:2])
		assert.Equal(t, "female", rec[6])
	}

	resp, _ = get(t, ts, "/api/rows?format=parquet")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGraphAndMetrics(t *testing.T) {
	ts := newTestServer(t)

	_, body := get(t, ts, "/api/graph")
	assert.True(t, strings.HasPrefix(body, "graph LR"))
	assert.Contains(t, body, "filtered")

	_, body = get(t, ts, "/metrics")
	assert.Contains(t, body, "penguindash_recomputations_total")
	assert.Contains(t, body, `penguindash_http_requests_total{code="200",route="/api/graph"} 1`)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	s := New(penguins.MustDefault(), dashboard.DefaultControls())
	ctx, cancel := context.WithCancel(context.Background())

	ready := make(chan net.Addr, 1)
	done := make(chan error, 1)
	go func() {
		done <- s.Serve(ctx, ServeOptions{
			Addr:            "127.0.0.1:0",
			ShutdownTimeout: time.Second,
			Ready:           func(a net.Addr) { ready <- a },
		})
	}()

	addr := <-ready
	resp, err := http.Get("http://" + addr.String() + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	http.DefaultClient.CloseIdleConnections()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
