package entity

import "github.com/prometheus/client_golang/prometheus"

// Метрики симуляции сущностей
var (
	metricEntitiesSpawned = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "entities",
		Name:      "spawned_total",
		Help:      "Число созданных сущностей.",
	})
	metricEntitiesRemoved = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "entities",
		Name:      "removed_total",
		Help:      "Число удалённых сущностей (недопустимый ландшафт).",
	})
	metricEntitiesActive = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "entities",
		Name:      "active",
		Help:      "Текущее число живых сущностей.",
	})
)

func init() {
	prometheus.MustRegister(metricEntitiesSpawned, metricEntitiesRemoved, metricEntitiesActive)
}
