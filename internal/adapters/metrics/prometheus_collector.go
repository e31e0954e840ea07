package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	// Namespace for all metrics
	namespace = "containeryard"
	// Subsystem for placement service metrics
	subsystem = "yard"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalYardCollector is the singleton yard metrics collector
	// Set by SetGlobalYardCollector() when metrics are enabled
	globalYardCollector YardMetricsRecorder
)

// YardMetricsRecorder defines the interface for recording placement and work order metrics
// This interface is used by application code to record metrics
type YardMetricsRecorder interface {
	RecordPlacement(operation string, outcome string)
	RecordSuggestion(zone string, tier int, found bool)
	RecordWorkOrderTransition(status string)
	SetZoneOccupancy(zone string, occupied, capacity int)
}

// InitRegistry initializes the Prometheus registry with Go runtime and process collectors.
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// ResetRegistry disables metrics. Used by tests.
func ResetRegistry() {
	Registry = nil
	globalYardCollector = nil
}

// GetRegistry returns the global Prometheus registry
// Returns nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// SetGlobalYardCollector sets the global yard metrics collector
func SetGlobalYardCollector(collector YardMetricsRecorder) {
	globalYardCollector = collector
}

// RecordPlacement records the outcome of a mutating placement operation.
// outcome is "success" or the domain error code.
func RecordPlacement(operation string, outcome string) {
	if globalYardCollector != nil {
		globalYardCollector.RecordPlacement(operation, outcome)
	}
}

// RecordSuggestion records a suggestion attempt
func RecordSuggestion(zone string, tier int, found bool) {
	if globalYardCollector != nil {
		globalYardCollector.RecordSuggestion(zone, tier, found)
	}
}

// RecordWorkOrderTransition records a work order entering a status
func RecordWorkOrderTransition(status string) {
	if globalYardCollector != nil {
		globalYardCollector.RecordWorkOrderTransition(status)
	}
}

// SetZoneOccupancy publishes the occupied slot count of a zone
func SetZoneOccupancy(zone string, occupied, capacity int) {
	if globalYardCollector != nil {
		globalYardCollector.SetZoneOccupancy(zone, occupied, capacity)
	}
}
