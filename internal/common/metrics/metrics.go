// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GenerationsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "promptpad_generations_started_total",
			Help: "Total number of prompt generations requested",
		},
	)

	GenerationsCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "promptpad_generations_completed_total",
			Help: "Total number of prompt generations that returned a prompt",
		},
	)

	GenerationsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "promptpad_generations_failed_total",
			Help: "Total number of failed prompt generations by error code",
		},
		[]string{"error_code"},
	)

	GenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "promptpad_generation_duration_seconds",
			Help: "Duration of prompt generation calls in seconds",
		},
	)

	BackendChecks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "promptpad_backend_checks_total",
			Help: "Total number of backend health checks by outcome",
		},
		[]string{"outcome"},
	)

	SettingsSaves = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "promptpad_settings_saves_total",
			Help: "Total number of settings saves by backend",
		},
		[]string{"backend"},
	)

	SettingsLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "promptpad_settings_loads_total",
			Help: "Total number of settings loads by backend",
		},
		[]string{"backend"},
	)

	StorageFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "promptpad_storage_fallbacks_total",
			Help: "Times the preferred settings backend failed and the fallback was used",
		},
		[]string{"operation"},
	)
)
