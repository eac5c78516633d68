package metrics

import (
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const Namespace = "levelsync"

type metricKey struct {
	name   string
	labels string
}

// Registry creates collectors on demand. Recording never fails; a metric whose
// labels conflict with an earlier registration of the same name is counted but
// not exported.
type Registry struct {
	reg *prometheus.Registry

	mu         sync.Mutex
	counters   map[metricKey]*prometheus.CounterVec
	gauges     map[metricKey]*prometheus.GaugeVec
	histograms map[metricKey]*prometheus.HistogramVec
}

func NewRegistry() *Registry {
	return &Registry{
		reg:        prometheus.NewRegistry(),
		counters:   make(map[metricKey]*prometheus.CounterVec),
		gauges:     make(map[metricKey]*prometheus.GaugeVec),
		histograms: make(map[metricKey]*prometheus.HistogramVec),
	}
}

// Gatherer exposes the collected metrics.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// FullName returns the exported name of group/name.
func FullName(group, name string) string {
	return prometheus.BuildFQName(Namespace, strings.ReplaceAll(group, ".", "_"), name)
}

func labelNames(dims Dimension) []string {
	names := make([]string, 0, len(dims))
	for k := range dims {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) register(c prometheus.Collector) {
	_ = r.reg.Register(c)
}

func (r *Registry) counter(group, name string, dims Dimension) prometheus.Counter {
	names := labelNames(dims)
	key := metricKey{FullName(group, name), strings.Join(names, ",")}

	r.mu.Lock()
	vec, ok := r.counters[key]
	if !ok {
		vec = prometheus.NewCounterVec(prometheus.CounterOpts{Name: key.name, Help: group + " " + name}, names)
		r.register(vec)
		r.counters[key] = vec
	}
	r.mu.Unlock()
	return vec.With(prometheus.Labels(dims))
}

func (r *Registry) gauge(group, name string, dims Dimension) prometheus.Gauge {
	names := labelNames(dims)
	key := metricKey{FullName(group, name), strings.Join(names, ",")}

	r.mu.Lock()
	vec, ok := r.gauges[key]
	if !ok {
		vec = prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: key.name, Help: group + " " + name}, names)
		r.register(vec)
		r.gauges[key] = vec
	}
	r.mu.Unlock()
	return vec.With(prometheus.Labels(dims))
}

func (r *Registry) histogram(group, name string, dims Dimension) prometheus.Observer {
	names := labelNames(dims)
	key := metricKey{FullName(group, name) + "_seconds", strings.Join(names, ",")}

	r.mu.Lock()
	vec, ok := r.histograms[key]
	if !ok {
		vec = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    key.name,
			Help:    group + " " + name,
			Buckets: prometheus.ExponentialBuckets(0.00005, 4, 10),
		}, names)
		r.register(vec)
		r.histograms[key] = vec
	}
	r.mu.Unlock()
	return vec.With(prometheus.Labels(dims))
}

// Record applies v to group/name according to policy. PolicyStopwatch takes v in seconds.
func (r *Registry) Record(policy Policy, group, name string, v Value, dims Dimension) {
	switch policy {
	case PolicySum:
		if v < 0 {
			return
		}
		r.counter(group, name, dims).Add(float64(v))
	case PolicySet:
		r.gauge(group, name, dims).Set(float64(v))
	case PolicyStopwatch:
		r.histogram(group, name, dims).Observe(float64(v))
	}
}

var _default = NewRegistry()

// Default returns the process-wide registry used by the package functions.
func Default() *Registry {
	return _default
}

// SetDefault replaces the process-wide registry, for tests.
func SetDefault(r *Registry) {
	_default = r
}

func IncrCounterWithGroup(group, name string, v Value) {
	_default.Record(PolicySum, group, name, v, nil)
}

func IncrCounterWithDimGroup(group, name string, v Value, dims Dimension) {
	_default.Record(PolicySum, group, name, v, dims)
}

func UpdateGaugeWithGroup(group, name string, v Value) {
	_default.Record(PolicySet, group, name, v, nil)
}

func UpdateGaugeWithDimGroup(group, name string, v Value, dims Dimension) {
	_default.Record(PolicySet, group, name, v, dims)
}

// RecordStopwatchWithGroup observes the time elapsed since start.
func RecordStopwatchWithGroup(group, name string, start time.Time) {
	_default.Record(PolicyStopwatch, group, name, Value(time.Since(start).Seconds()), nil)
}

func RecordStopwatchWithDimGroup(group, name string, start time.Time, dims Dimension) {
	_default.Record(PolicyStopwatch, group, name, Value(time.Since(start).Seconds()), dims)
}
