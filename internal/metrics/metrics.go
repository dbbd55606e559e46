// Package metrics exposes Prometheus instrumentation for the analyzer.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ProviderRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "provider_requests_total", Help: "Market-data provider requests by symbol and outcome"},
		[]string{"symbol", "outcome"},
	)
	RunsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "analyzer_runs_total", Help: "Completed analyzer pipeline runs"},
	)
	LastRunTrades = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "analyzer_last_run_trades", Help: "Trade count of the most recent run"},
	)
	LastRunRows = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "analyzer_last_run_feature_rows", Help: "Feature rows of the most recent run"},
	)
)

func init() {
	prometheus.MustRegister(ProviderRequests, RunsTotal, LastRunTrades, LastRunRows)
}

// Handler returns the scrape endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
