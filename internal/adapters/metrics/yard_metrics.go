package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// YardMetricsCollector tracks placement outcomes, suggestions, work order
// transitions and per-zone occupancy
type YardMetricsCollector struct {
	placementsTotal     *prometheus.CounterVec
	suggestionsTotal    *prometheus.CounterVec
	workOrderStatus     *prometheus.CounterVec
	zoneOccupiedSlots   *prometheus.GaugeVec
	zoneCapacitySlots   *prometheus.GaugeVec
	zoneOccupancyFactor *prometheus.GaugeVec
}

func NewYardMetricsCollector() *YardMetricsCollector {
	return &YardMetricsCollector{
		placementsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "placements_total",
				Help:      "Placement operations by operation and outcome (success or error code)",
			},
			[]string{"operation", "outcome"},
		),
		suggestionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "suggestions_total",
				Help:      "Position suggestions by zone and tier of the primary candidate",
			},
			[]string{"zone", "tier", "result"},
		),
		workOrderStatus: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "work_order_transitions_total",
				Help:      "Work orders entering each status",
			},
			[]string{"status"},
		),
		zoneOccupiedSlots: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "zone_occupied_slots",
				Help:      "Occupied slots per zone",
			},
			[]string{"zone"},
		),
		zoneCapacitySlots: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "zone_capacity_slots",
				Help:      "Fixed slot capacity per zone",
			},
			[]string{"zone"},
		),
		zoneOccupancyFactor: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "zone_occupancy_ratio",
				Help:      "Occupied slots divided by capacity per zone",
			},
			[]string{"zone"},
		),
	}
}

// Register registers all yard metrics with the Prometheus registry
func (c *YardMetricsCollector) Register() error {
	if Registry == nil {
		return nil
	}

	metrics := []prometheus.Collector{
		c.placementsTotal,
		c.suggestionsTotal,
		c.workOrderStatus,
		c.zoneOccupiedSlots,
		c.zoneCapacitySlots,
		c.zoneOccupancyFactor,
	}
	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}
	return nil
}

func (c *YardMetricsCollector) RecordPlacement(operation string, outcome string) {
	c.placementsTotal.WithLabelValues(operation, outcome).Inc()
}

func (c *YardMetricsCollector) RecordSuggestion(zone string, tier int, found bool) {
	result := "found"
	if !found {
		result = "none"
	}
	c.suggestionsTotal.WithLabelValues(zone, strconv.Itoa(tier), result).Inc()
}

func (c *YardMetricsCollector) RecordWorkOrderTransition(status string) {
	c.workOrderStatus.WithLabelValues(status).Inc()
}

func (c *YardMetricsCollector) SetZoneOccupancy(zone string, occupied, capacity int) {
	c.zoneOccupiedSlots.WithLabelValues(zone).Set(float64(occupied))
	c.zoneCapacitySlots.WithLabelValues(zone).Set(float64(capacity))
	if capacity > 0 {
		c.zoneOccupancyFactor.WithLabelValues(zone).Set(float64(occupied) / float64(capacity))
	}
}
