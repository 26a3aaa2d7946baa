package dashboard

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jask/penguindash/internal/reactive"
)

// Metrics counts graph evaluations and tracks the size of the filtered view.
type Metrics struct {
	Recomputations *prometheus.CounterVec
	FilteredRows   prometheus.Gauge
}

// NewMetrics creates the collectors and registers them on reg when it is
// non-nil. Registering twice on the same registry reuses the existing
// collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Recomputations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "penguindash",
			Name:      "recomputations_total",
			Help:      "Evaluations of reactive graph nodes.",
		}, []string{"node", "kind"}),
		FilteredRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "penguindash",
			Name:      "filtered_rows",
			Help:      "Rows in the most recently computed filtered view.",
		}),
	}
	if reg == nil {
		return m
	}
	m.Recomputations = registerOrExisting(reg, m.Recomputations)
	m.FilteredRows = registerOrExisting(reg, m.FilteredRows)
	return m
}

func registerOrExisting[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

func (m *Metrics) observe(n reactive.NodeInfo) {
	if m == nil {
		return
	}
	m.Recomputations.WithLabelValues(n.Name, string(n.Kind)).Inc()
}

func (m *Metrics) setRows(n int) {
	if m == nil {
		return
	}
	m.FilteredRows.Set(float64(n))
}
