// Package metrics exposes Prometheus counters for the request pipeline on
// a dedicated listener, separate from the API port.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal      *prometheus.CounterVec
	AuthFailures       prometheus.Counter
	AccessDenials      prometheus.Counter
	ElevationAnomalies prometheus.Counter
}

func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "erp_http_requests_total",
			Help: "HTTP requests by method and status code.",
		}, []string{"method", "status"}),
		AuthFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "erp_auth_failures_total",
			Help: "Requests rejected during credential verification or principal resolution.",
		}),
		AccessDenials: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "erp_access_denials_total",
			Help: "Requests denied by the permission evaluator or tenant scoper.",
		}),
		ElevationAnomalies: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "erp_elevation_anomalies_total",
			Help: "Cross-tenant elevation attempts by non-privileged principals.",
		}),
	}

	registry.MustRegister(m.RequestsTotal, m.AuthFailures, m.AccessDenials, m.ElevationAnomalies)
	return m
}

// Serve blocks serving /metrics on addr.
func (m *Metrics) Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return server.ListenAndServe()
}
