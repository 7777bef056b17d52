package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusHooks implements every hook interface with Prometheus metrics.
type PrometheusHooks struct {
	builds        *prometheus.CounterVec
	buildSeconds  *prometheus.HistogramVec
	buildNodes    *prometheus.HistogramVec
	renders       *prometheus.CounterVec
	renderSeconds *prometheus.HistogramVec
	cacheOps      *prometheus.CounterVec
	cacheBytes    *prometheus.CounterVec
	httpRequests  *prometheus.CounterVec
	httpSeconds   *prometheus.HistogramVec
}

// NewPrometheusHooks creates the metrics and registers them with reg.
// It panics if they are already registered.
func NewPrometheusHooks(reg prometheus.Registerer) *PrometheusHooks {
	h := &PrometheusHooks{
		builds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stepgraph_builds_total",
			Help: "Diagram builds by mode, topology kind and outcome",
		}, []string{"mode", "kind", "outcome"}),
		buildSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stepgraph_build_duration_seconds",
			Help:    "Time spent building a diagram",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"mode"}),
		buildNodes: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stepgraph_build_nodes",
			Help:    "Nodes per built diagram",
			Buckets: prometheus.ExponentialBuckets(1, 2, 8),
		}, []string{"mode"}),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stepgraph_renders_total",
			Help: "Diagram exports by format and outcome",
		}, []string{"format", "outcome"}),
		renderSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stepgraph_render_duration_seconds",
			Help:    "Time spent exporting a diagram",
			Buckets: prometheus.DefBuckets,
		}, []string{"format"}),
		cacheOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stepgraph_cache_operations_total",
			Help: "Cache lookups and writes by key type",
		}, []string{"key_type", "op"}),
		cacheBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stepgraph_cache_written_bytes_total",
			Help: "Bytes written to the cache by key type",
		}, []string{"key_type"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stepgraph_upstream_requests_total",
			Help: "Outgoing HTTP requests by host and status",
		}, []string{"host", "status"}),
		httpSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stepgraph_upstream_duration_seconds",
			Help:    "Outgoing HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"host"}),
	}
	reg.MustRegister(
		h.builds, h.buildSeconds, h.buildNodes,
		h.renders, h.renderSeconds,
		h.cacheOps, h.cacheBytes,
		h.httpRequests, h.httpSeconds,
	)
	return h
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (h *PrometheusHooks) OnBuildStart(context.Context, string, int) {}

func (h *PrometheusHooks) OnBuildComplete(_ context.Context, mode, kind string, nodes int, d time.Duration, err error) {
	h.builds.WithLabelValues(mode, kind, outcome(err)).Inc()
	h.buildSeconds.WithLabelValues(mode).Observe(d.Seconds())
	if err == nil {
		h.buildNodes.WithLabelValues(mode).Observe(float64(nodes))
	}
}

func (h *PrometheusHooks) OnRenderStart(context.Context, string) {}

func (h *PrometheusHooks) OnRenderComplete(_ context.Context, format string, _ int, d time.Duration, err error) {
	h.renders.WithLabelValues(format, outcome(err)).Inc()
	h.renderSeconds.WithLabelValues(format).Observe(d.Seconds())
}

func (h *PrometheusHooks) OnCacheHit(_ context.Context, keyType string) {
	h.cacheOps.WithLabelValues(keyType, "hit").Inc()
}

func (h *PrometheusHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.cacheOps.WithLabelValues(keyType, "miss").Inc()
}

func (h *PrometheusHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.cacheOps.WithLabelValues(keyType, "set").Inc()
	h.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

func (h *PrometheusHooks) OnRequest(context.Context, string, string, string) {}

func (h *PrometheusHooks) OnResponse(_ context.Context, _, host, _ string, status int, d time.Duration) {
	h.httpRequests.WithLabelValues(host, strconv.Itoa(status)).Inc()
	h.httpSeconds.WithLabelValues(host).Observe(d.Seconds())
}

func (h *PrometheusHooks) OnError(_ context.Context, _, host, _ string, _ error) {
	h.httpRequests.WithLabelValues(host, "error").Inc()
}

var (
	_ PipelineHooks = (*PrometheusHooks)(nil)
	_ CacheHooks    = (*PrometheusHooks)(nil)
	_ HTTPHooks     = (*PrometheusHooks)(nil)
)
