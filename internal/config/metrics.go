package config

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	loadTimestamp = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "app_config_load_timestamp",
		Help: "Unix timestamp of the last successful configuration load",
	})

	fallbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "app_config_fallbacks_total",
		Help: "Total number of configuration values replaced by their default",
	}, []string{"field"})

	fallbackActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "app_config_fallback_active",
		Help: "1 if any configuration fallback is active, 0 otherwise",
	})
)

func recordFallback(field string) {
	fallbacksTotal.WithLabelValues(field).Inc()
}

func setFallbackActive(active bool) {
	if active {
		fallbackActive.Set(1)
		return
	}
	fallbackActive.Set(0)
}
