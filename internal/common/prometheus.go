package common

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	PromHTTPRequestTotal    = "http_requests_total"
	PromHTTPRequestDuration = "http_request_duration_seconds"
)

var PromCounters = map[string]*prometheus.CounterVec{
	PromHTTPRequestTotal: promauto.NewCounterVec(prometheus.CounterOpts{
		Name: PromHTTPRequestTotal,
		Help: "The number of http requests by path, method, and response code",
	}, []string{"path", "method", "code"}),
}

var PromHistograms = map[string]*prometheus.HistogramVec{
	PromHTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    PromHTTPRequestDuration,
		Help:    "The latency of http requests by path and method",
		Buckets: prometheus.DefBuckets,
	}, []string{"path", "method"}),
}
