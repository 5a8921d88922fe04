package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	SnapshotsLoadedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scootermap_snapshots_loaded_total",
		Help: "Snapshots fetched and parsed from the object store",
	}, []string{"provider"})
	SnapshotsSkippedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scootermap_snapshots_skipped_total",
		Help: "Snapshot objects skipped (placeholder key, fetch error or malformed body)",
	}, []string{"provider", "reason"})
	RecordsDroppedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scootermap_records_dropped_total",
		Help: "Vehicle records dropped by the geocoder because of invalid coordinates",
	}, []string{"provider"})
	InventoryVehicles = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "scootermap_inventory_vehicles",
		Help: "Vehicles in the last inventory by provider",
	}, []string{"provider"})
	UnassignedPointsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scootermap_unassigned_points_total",
		Help: "Points not counted in any area (outside all areas or ambiguous)",
	}, []string{"layer", "reason"})
	PipelineRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scootermap_pipeline_runs_total",
		Help: "Pipeline runs by outcome",
	}, []string{"status"})
	PipelineDurationSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "scootermap_pipeline_duration_seconds",
		Help:    "Pipeline run duration in seconds",
		Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60, 120, 300},
	})
)

func init() {
	prometheus.MustRegister(
		SnapshotsLoadedTotal,
		SnapshotsSkippedTotal,
		RecordsDroppedTotal,
		InventoryVehicles,
		UnassignedPointsTotal,
		PipelineRunsTotal,
		PipelineDurationSeconds,
	)
}

// Handler отдает метрики для /metrics
func Handler() http.Handler { return promhttp.Handler() }
