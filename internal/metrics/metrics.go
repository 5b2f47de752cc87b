// Package metrics registers the Prometheus collectors exposed by the
// build and search commands, the same way cmd/qrank-webserver registers
// its last-modified gauge: construct, prometheus.Register, check the
// error.
package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "skwiki"

// Metrics holds every collector this codebase reports. A process
// registers one Metrics against the default registry; tests construct
// their own with NewUnregistered to avoid colliding with each other on
// the global registry.
type Metrics struct {
	PagesParsed        prometheus.Counter
	PagesSkipped       *prometheus.CounterVec
	PreprocessDuration *prometheus.HistogramVec
	IndexTerms         prometheus.Gauge
	IndexDocuments     prometheus.Gauge
	SearchDuration     prometheus.Histogram
	SearchResults      prometheus.Histogram
}

// New builds a Metrics and registers every collector against reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		PagesParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pages_parsed_total",
			Help:      "Number of dump pages successfully parsed.",
		}),
		PagesSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pages_skipped_total",
			Help:      "Number of dump pages skipped, by reason.",
		}, []string{"reason"}),
		PreprocessDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "preprocess_duration_seconds",
			Help:      "Time spent in each preprocessing pipeline stage.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"stage"}),
		IndexTerms: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "index_terms",
			Help:      "Vocabulary size of the currently loaded index.",
		}),
		IndexDocuments: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "index_documents",
			Help:      "Document count of the currently loaded index.",
		}),
		SearchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Time spent answering a search query.",
			Buckets:   prometheus.DefBuckets,
		}),
		SearchResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_results",
			Help:      "Number of results returned per search query.",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
		}),
	}

	collectors := []prometheus.Collector{
		m.PagesParsed,
		m.PagesSkipped,
		m.PreprocessDuration,
		m.IndexTerms,
		m.IndexDocuments,
		m.SearchDuration,
		m.SearchResults,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// NewUnregistered builds a Metrics against a fresh, private registry —
// used in tests so multiple Metrics instances can coexist in one
// process without "duplicate metrics collector registration" panics.
func NewUnregistered() *Metrics {
	reg := prometheus.NewRegistry()
	m, err := New(reg)
	if err != nil {
		panic(err)
	}
	return m
}
