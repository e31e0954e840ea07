package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler serves the global registry in the Prometheus exposition format.
// Returns a 404 handler when metrics are disabled.
func Handler() http.Handler {
	if Registry == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}

// Setup initializes the registry and the global collectors.
// The returned command collector feeds PrometheusMiddleware.
func Setup() (*CommandMetricsCollector, error) {
	InitRegistry()

	commands := NewCommandMetricsCollector()
	if err := commands.Register(); err != nil {
		return nil, err
	}

	yard := NewYardMetricsCollector()
	if err := yard.Register(); err != nil {
		return nil, err
	}
	SetGlobalYardCollector(yard)

	return commands, nil
}
