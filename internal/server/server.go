// Package server exposes the dashboard over HTTP. It keeps no sessions:
// every request builds its own dashboard from the query parameters.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/jask/penguindash/internal/dashboard"
	"github.com/jask/penguindash/internal/export"
	"github.com/jask/penguindash/internal/penguins"
)

type Server struct {
	table    penguins.Table
	defaults dashboard.Controls
	log      *zap.Logger
	registry *prometheus.Registry
	metrics  *dashboard.Metrics
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

type Option func(*Server)

func WithLogger(l *zap.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithRegistry collects metrics on reg instead of a private registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		if reg != nil {
			s.registry = reg
		}
	}
}

// New serves tbl. Query parameters a request leaves out fall back to
// defaults.
func New(tbl penguins.Table, defaults dashboard.Controls, opts ...Option) *Server {
	s := &Server{
		table:    tbl,
		defaults: defaults.Normalize(),
		log:      zap.NewNop(),
		registry: prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.metrics = dashboard.NewMetrics(s.registry)
	s.requests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "penguindash",
		Name:      "http_requests_total",
		Help:      "HTTP requests by route and status code.",
	}, []string{"route", "code"})
	s.latency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "penguindash",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})
	s.registry.MustRegister(s.requests, s.latency)
	return s
}

// Handler returns the router with every route and middleware installed.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	r.Route("/api", func(r chi.Router) {
		r.Get("/controls", s.getControls)
		r.Get("/view", s.getView)
		r.Get("/rows", s.getRows)
		r.Get("/graph", s.getGraph)
	})
	return r
}

type attributeInfo struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

type binsRange struct {
	Min     int `json:"min"`
	Max     int `json:"max"`
	Default int `json:"default"`
}

type controlsResponse struct {
	Species    []string           `json:"species"`
	Islands    []string           `json:"islands"`
	Sexes      []string           `json:"sexes"`
	Attributes []attributeInfo    `json:"attributes"`
	Bins       binsRange          `json:"bins"`
	Defaults   dashboard.Controls `json:"defaults"`
}

func (s *Server) getControls(w http.ResponseWriter, r *http.Request) {
	attrs := make([]attributeInfo, 0, len(penguins.Attributes))
	for _, a := range penguins.Attributes {
		attrs = append(attrs, attributeInfo{Name: string(a), Label: a.Label()})
	}
	writeJSON(w, http.StatusOK, controlsResponse{
		Species:    penguins.AllSpecies,
		Islands:    penguins.AllIslands,
		Sexes:      penguins.AllSexes,
		Attributes: attrs,
		Bins:       binsRange{Min: dashboard.MinBins, Max: dashboard.MaxBins, Default: dashboard.DefaultBins},
		Defaults:   s.defaults,
	})
}

// getView returns the full snapshot; format picks any export format and
// defaults to json.
func (s *Server) getView(w http.ResponseWriter, r *http.Request) {
	d, ok := s.dashboardFor(w, r)
	if !ok {
		return
	}
	defer d.Close()
	format := orDefault(r.URL.Query().Get("format"), export.FormatJSON)
	f, err := export.ParseFormat(format)
	if err != nil {
		writeError(w, http.StatusBadRequest, err, "")
		return
	}
	w.Header().Set("Content-Type", contentType(f))
	if err := export.Write(w, d.Snapshot(), f); err != nil {
		s.log.Warn("write view", zap.String("format", f), zap.Error(err))
	}
}

func (s *Server) getRows(w http.ResponseWriter, r *http.Request) {
	d, ok := s.dashboardFor(w, r)
	if !ok {
		return
	}
	defer d.Close()
	rows := d.Filtered()
	switch format := orDefault(r.URL.Query().Get("format"), export.FormatJSON); format {
	case export.FormatJSON:
		writeJSON(w, http.StatusOK, rows)
	case export.FormatCSV:
		w.Header().Set("Content-Type", contentType(format))
		if err := export.WriteRows(w, rows); err != nil {
			s.log.Warn("write rows", zap.Error(err))
		}
	default:
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w %q (want json or csv)", export.ErrUnknownFormat, format), "")
	}
}

// getGraph evaluates every widget and returns the resulting dependency
// graph as Mermaid.
func (s *Server) getGraph(w http.ResponseWriter, r *http.Request) {
	d, ok := s.dashboardFor(w, r)
	if !ok {
		return
	}
	defer d.Close()
	d.Snapshot()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, export.MermaidGraph(d.Graph().Nodes()))
}

func (s *Server) dashboardFor(w http.ResponseWriter, r *http.Request) (*dashboard.Dashboard, bool) {
	ctl, err := parseControls(r.URL.Query(), s.defaults)
	if err == nil {
		var d *dashboard.Dashboard
		d, err = dashboard.New(s.table, ctl,
			dashboard.WithLogger(s.log.With(zap.String("request_id", RequestIDFrom(r.Context())))),
			dashboard.WithMetrics(s.metrics))
		if err == nil {
			return d, true
		}
	}
	var ve *dashboard.ValidationError
	if errors.As(err, &ve) {
		writeError(w, http.StatusBadRequest, ve, ve.Suggestion)
		return nil, false
	}
	writeError(w, http.StatusInternalServerError, err, "")
	return nil, false
}

// parseControls overlays the query on base. A repeated parameter or a
// comma separated value forms a set; a present but empty parameter selects
// nothing.
func parseControls(q url.Values, base dashboard.Controls) (dashboard.Controls, error) {
	c := base
	set := func(key string, dst *[]string) {
		vals, ok := q[key]
		if !ok {
			return
		}
		out := []string{}
		for _, v := range vals {
			for _, part := range strings.Split(v, ",") {
				if part = strings.TrimSpace(part); part != "" {
					out = append(out, part)
				}
			}
		}
		*dst = out
	}
	set("species", &c.Species)
	set("island", &c.Islands)
	set("sex", &c.Sexes)
	if a := q.Get("attribute"); a != "" {
		c.Attribute = penguins.Attribute(a)
	}
	if b := q.Get("bins"); b != "" {
		n, err := strconv.Atoi(b)
		if err != nil {
			return dashboard.Controls{}, &dashboard.ValidationError{Field: "bins", Value: b, Err: err}
		}
		c.Bins = n
	}
	return c, nil
}

type errorResponse struct {
	Error      string `json:"error"`
	Suggestion string `json:"suggestion,omitempty"`
}

func writeError(w http.ResponseWriter, code int, err error, suggestion string) {
	writeJSON(w, code, errorResponse{Error: err.Error(), Suggestion: suggestion})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func contentType(format string) string {
	switch format {
	case export.FormatJSON:
		return "application/json"
	case export.FormatYAML:
		return "application/yaml"
	case export.FormatCSV:
		return "text/csv; charset=utf-8"
	}
	return "text/plain; charset=utf-8"
}

func orDefault(v, fallback string) string {
	if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
		return v
	}
	return fallback
}
