// Package metrics exposes Prometheus counters for the playback engine.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "lanshelf"

// Metrics groups the engine counters. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	Selections      prometheus.Counter
	StaleResults    *prometheus.CounterVec
	PrefsFlushes    *prometheus.CounterVec
	EndedCoalesced  prometheus.Counter
	PlaybackErrors  *prometheus.CounterVec
	ProbeLookups    *prometheus.CounterVec
	TranscodeSeeks  prometheus.Counter
	ListingPolls    prometheus.Counter
	ListingNotModif prometheus.Counter
}

// New registers the counters on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Selections: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "selections_total",
			Help:      "Total number of item selections",
		}),
		StaleResults: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stale_results_total",
			Help:      "Async results discarded because the selection changed",
		}, []string{"source"}),
		PrefsFlushes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "prefs_flushes_total",
			Help:      "Batched preference writes sent to the host",
		}, []string{"result"}),
		EndedCoalesced: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ended_coalesced_total",
			Help:      "Duplicate ended signals ignored",
		}),
		PlaybackErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "playback_errors_total",
			Help:      "Media element errors by code",
		}, []string{"code"}),
		ProbeLookups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "probe_lookups_total",
			Help:      "Capability probe lookups by cache outcome",
		}, []string{"outcome"}),
		TranscodeSeeks: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transcode_seeks_total",
			Help:      "Transcoded streams re-requested at a new offset",
		}),
		ListingPolls: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "listing_polls_total",
			Help:      "Listing polls issued while the host was scanning",
		}),
		ListingNotModif: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "listing_not_modified_total",
			Help:      "Full listing fetches answered with 304",
		}),
	}
}

func (m *Metrics) Selection() {
	if m != nil {
		m.Selections.Inc()
	}
}

func (m *Metrics) Stale(source string) {
	if m != nil {
		m.StaleResults.WithLabelValues(source).Inc()
	}
}

func (m *Metrics) PrefsFlush(err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.PrefsFlushes.WithLabelValues(result).Inc()
}

func (m *Metrics) Coalesced() {
	if m != nil {
		m.EndedCoalesced.Inc()
	}
}

func (m *Metrics) PlaybackError(code string) {
	if m != nil {
		m.PlaybackErrors.WithLabelValues(code).Inc()
	}
}

func (m *Metrics) ProbeLookup(hit bool) {
	if m == nil {
		return
	}
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	m.ProbeLookups.WithLabelValues(outcome).Inc()
}

func (m *Metrics) TranscodeSeek() {
	if m != nil {
		m.TranscodeSeeks.Inc()
	}
}

func (m *Metrics) ListingPoll() {
	if m != nil {
		m.ListingPolls.Inc()
	}
}

func (m *Metrics) ListingNotModified() {
	if m != nil {
		m.ListingNotModif.Inc()
	}
}

// Handler serves the gatherer in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done.
func Serve(ctx context.Context, addr string, g prometheus.Gatherer) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(g))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
