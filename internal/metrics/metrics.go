package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Path search outcomes used as the "result" label.
const (
	PathFound     = "found"
	PathNone      = "none"
	PathExhausted = "exhausted"
)

// Collector exposes simulation metrics. Every method is safe on a nil
// receiver so packages can take an optional *Collector.
type Collector struct {
	gatherer prometheus.Gatherer

	Actions          *prometheus.CounterVec
	ActionsDiscarded prometheus.Counter
	PassDuration     prometheus.Histogram
	PathSearches     *prometheus.CounterVec
	PathExpansions   prometheus.Histogram
	ChunksGenerated  prometheus.Counter
}

// NewCollector registers the simulation metrics against reg
// (prometheus.DefaultRegisterer when nil).
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	var err error
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	actions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sim_actions_total",
		Help: "Actions dispatched by the turn scheduler, by event kind.",
	}, []string{"kind"})
	actions, err = register(reg, actions, "sim_actions_total")
	if err != nil {
		return nil, err
	}

	discarded := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sim_actions_discarded_total",
		Help: "Actions dropped because the actor could not afford them.",
	})
	discarded, err = register(reg, discarded, "sim_actions_discarded_total")
	if err != nil {
		return nil, err
	}

	pass := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "sim_scheduler_pass_duration_seconds",
		Help:    "Wall time of one scheduler pass.",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
	})
	pass, err = register(reg, pass, "sim_scheduler_pass_duration_seconds")
	if err != nil {
		return nil, err
	}

	searches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sim_path_searches_total",
		Help: "A* searches by result (found, none, exhausted).",
	}, []string{"result"})
	searches, err = register(reg, searches, "sim_path_searches_total")
	if err != nil {
		return nil, err
	}

	expansions := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "sim_path_expansions",
		Help:    "Nodes expanded per A* search.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 8),
	})
	expansions, err = register(reg, expansions, "sim_path_expansions")
	if err != nil {
		return nil, err
	}

	chunks := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sim_chunks_generated_total",
		Help: "Chunks materialised by the world map.",
	})
	chunks, err = register(reg, chunks, "sim_chunks_generated_total")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:         gatherer,
		Actions:          actions,
		ActionsDiscarded: discarded,
		PassDuration:     pass,
		PathSearches:     searches,
		PathExpansions:   expansions,
		ChunksGenerated:  chunks,
	}, nil
}

// Handler serves the gathered metrics in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}

func (c *Collector) IncAction(kind string) {
	if c == nil {
		return
	}
	c.Actions.WithLabelValues(kind).Inc()
}

func (c *Collector) IncDiscarded() {
	if c == nil {
		return
	}
	c.ActionsDiscarded.Inc()
}

func (c *Collector) ObservePass(d time.Duration) {
	if c == nil {
		return
	}
	c.PassDuration.Observe(d.Seconds())
}

// ObservePathSearch records one A* run.
func (c *Collector) ObservePathSearch(result string, expanded int) {
	if c == nil {
		return
	}
	c.PathSearches.WithLabelValues(result).Inc()
	c.PathExpansions.Observe(float64(expanded))
}

func (c *Collector) IncChunksGenerated() {
	if c == nil {
		return
	}
	c.ChunksGenerated.Inc()
}

// register adds col to reg. When an identical collector is already
// registered the existing one is returned so a Collector can be rebuilt
// against a shared registry.
func register[T prometheus.Collector](reg prometheus.Registerer, col T, name string) (T, error) {
	if err := reg.Register(col); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
			return col, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return col, fmt.Errorf("register %s: %w", name, err)
	}
	return col, nil
}
