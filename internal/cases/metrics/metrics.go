package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the cases module. Tracks report volumes
// and the matching scan, the one potentially slow path in the system.
type Metrics struct {
	MissingReported    prometheus.Counter
	FoundReported      prometheus.Counter
	SuggestionsCreated prometheus.Counter
	MatchesConfirmed   prometheus.Counter
	MatchScanDuration  prometheus.Histogram
}

// New creates a new Metrics instance with all cases module metrics registered.
func New() *Metrics {
	return &Metrics{
		MissingReported: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sangamsetu_missing_reported_total",
			Help: "Total number of missing-person reports filed",
		}),
		FoundReported: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sangamsetu_found_reported_total",
			Help: "Total number of found-person reports filed",
		}),
		SuggestionsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sangamsetu_match_suggestions_created_total",
			Help: "Total number of match suggestions generated by the matcher",
		}),
		MatchesConfirmed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sangamsetu_matches_confirmed_total",
			Help: "Total number of match suggestions confirmed by reviewers",
		}),
		MatchScanDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "sangamsetu_match_scan_duration_seconds",
			Help:    "Duration of the open-missing scan triggered by a found report",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementMissingReported records a filed missing-person report.
func (m *Metrics) IncrementMissingReported() {
	if m != nil {
		m.MissingReported.Inc()
	}
}

// IncrementFoundReported records a filed found-person report.
func (m *Metrics) IncrementFoundReported() {
	if m != nil {
		m.FoundReported.Inc()
	}
}

// AddSuggestionsCreated records suggestions generated by one scan.
func (m *Metrics) AddSuggestionsCreated(n int) {
	if m != nil && n > 0 {
		m.SuggestionsCreated.Add(float64(n))
	}
}

// IncrementMatchesConfirmed records a confirmed match.
func (m *Metrics) IncrementMatchesConfirmed() {
	if m != nil {
		m.MatchesConfirmed.Inc()
	}
}

// ObserveMatchScan records the duration of a matching scan.
// Call with time.Now() at the start of the scan.
func (m *Metrics) ObserveMatchScan(start time.Time) {
	if m != nil {
		m.MatchScanDuration.Observe(time.Since(start).Seconds())
	}
}
