package sim

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts tick activity for the /metrics endpoint.
type Metrics struct {
	Ticks    prometheus.Counter
	Advanced prometheus.Counter
	Paused   prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Ticks: factory.NewCounter(prometheus.CounterOpts{
			Name: "gtavtimer_sim_ticks_total",
			Help: "Simulation ticks fired, including paused no-ops.",
		}),
		Advanced: factory.NewCounter(prometheus.CounterOpts{
			Name: "gtavtimer_sim_advanced_total",
			Help: "Business production steps applied across all ticks.",
		}),
		Paused: factory.NewGauge(prometheus.GaugeOpts{
			Name: "gtavtimer_sim_paused",
			Help: "1 while the simulation is paused.",
		}),
	}
}
