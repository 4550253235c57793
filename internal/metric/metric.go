// Package metric exposes the service counters to Prometheus.
package metric

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type IncrementalCounter interface {
	Increment(val ...string)
}

type Counter struct {
	Name string
	Help string

	vec *prometheus.CounterVec
}

func (c *Counter) Increment(val ...string) {
	c.vec.WithLabelValues(val...).Inc()
}

func NewCounterWithRegistry(reg prometheus.Registerer, name, help string, labels ...string) IncrementalCounter {
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: name,
		Help: help,
	}, labels)

	reg.MustRegister(counter)

	return &Counter{
		Name: name,
		Help: help,
		vec:  counter,
	}
}

// Timer records durations in seconds.
type Timer interface {
	Since(start time.Time, val ...string)
}

type histogram struct {
	vec *prometheus.HistogramVec
}

func (h *histogram) Since(start time.Time, val ...string) {
	h.vec.WithLabelValues(val...).Observe(time.Since(start).Seconds())
}

func NewTimerWithRegistry(reg prometheus.Registerer, name, help string, labels ...string) Timer {
	vec := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    name,
		Help:    help,
		Buckets: prometheus.DefBuckets,
	}, labels)
	reg.MustRegister(vec)
	return &histogram{vec: vec}
}

// Metrics groups the counters of the service on a dedicated registry.
type Metrics struct {
	Requests      IncrementalCounter // method, route, status
	MenuRenders   IncrementalCounter // outcome
	ConfigChanges IncrementalCounter // action
	RenderTime    Timer

	reg *prometheus.Registry
}

// New registers the service metrics and the Go runtime collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return &Metrics{
		Requests:      NewCounterWithRegistry(reg, "menu_http_requests_total", "HTTP requests by route and status.", "method", "route", "status"),
		MenuRenders:   NewCounterWithRegistry(reg, "menu_renders_total", "Menu renders by outcome.", "outcome"),
		ConfigChanges: NewCounterWithRegistry(reg, "menu_config_changes_total", "Menu configuration changes by action.", "action"),
		RenderTime:    NewTimerWithRegistry(reg, "menu_render_seconds", "Time spent building and rendering a menu.", "outcome"),
		reg:           reg,
	}
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// Handler serves the metrics of m.
func (m *Metrics) Handler() http.Handler {
	return GetHandlerForRegistry(m.reg)
}

// GetHandlerForRegistry returns an HTTP handler for serving Prometheus metrics from a custom registry.
func GetHandlerForRegistry(reg prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
