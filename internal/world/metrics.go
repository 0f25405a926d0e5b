package world

import "github.com/prometheus/client_golang/prometheus"

// Метрики ландшафта. Регистрируются в глобальном регистре Prometheus;
// HTTP-эндпоинт поднимает internal/observability.
var (
	metricTilesClassified = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "terrain",
		Name:      "tiles_classified_total",
		Help:      "Число тайлов, классифицированных генератором (промахи кэша).",
	})
	metricTilesPainted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "terrain",
		Name:      "tiles_painted_total",
		Help:      "Число операций покраски тайлов.",
	})
)

func init() {
	prometheus.MustRegister(metricTilesClassified, metricTilesPainted)
}
