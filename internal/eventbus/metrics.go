package eventbus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsExporter инкапсулирует Prometheus-метрики для EventBus и периодически
// обновляет их. Экспортер не делает предположений о конкретной реализации
// шины: он опирается исключительно на интерфейс EventBus.
type MetricsExporter struct {
	bus  EventBus
	quit chan struct{}
	done chan struct{}
	prev Stats

	published prometheus.Counter
	consumed  prometheus.Counter
	dropped   prometheus.Counter
	inflight  prometheus.Gauge
}

// NewMetricsExporter создаёт экспортер и регистрирует метрики в глобальном
// регистре Prometheus. HTTP-эндпоинт не поднимает: отдача метрик — забота
// общего экспортера процесса.
func NewMetricsExporter(bus EventBus) *MetricsExporter {
	me := &MetricsExporter{
		bus:  bus,
		quit: make(chan struct{}),
		done: make(chan struct{}),
		published: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "eventbus",
			Name:      "messages_published_total",
			Help:      "Общее число опубликованных событий.",
		}),
		consumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "eventbus",
			Name:      "messages_consumed_total",
			Help:      "Общее число доставленных событий подписчикам.",
		}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "eventbus",
			Name:      "messages_dropped_total",
			Help:      "Событий, отброшенных из-за ограничения back-pressure.",
		}),
		inflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "eventbus",
			Name:      "messages_inflight",
			Help:      "Количество событий в очереди (не доставленных).",
		}),
	}

	prometheus.MustRegister(me.published, me.consumed, me.dropped, me.inflight)
	return me
}

// Start запускает периодическое обновление метрик из статистики шины
func (me *MetricsExporter) Start(interval time.Duration) {
	go me.loop(interval)
}

// Stop останавливает обновление и дожидается завершения цикла
func (me *MetricsExporter) Stop() {
	close(me.quit)
	<-me.done
}

func (me *MetricsExporter) loop(interval time.Duration) {
	defer close(me.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			me.updateOnce()
		case <-me.quit:
			me.updateOnce()
			return
		}
	}
}

// updateOnce переносит приращения статистики шины в счётчики Prometheus.
// Шина отдаёт накопленные значения, счётчикам нужны дельты.
func (me *MetricsExporter) updateOnce() {
	stats := me.bus.Metrics()
	me.published.Add(float64(stats.Published - me.prev.Published))
	me.consumed.Add(float64(stats.Consumed - me.prev.Consumed))
	me.dropped.Add(float64(stats.Dropped - me.prev.Dropped))
	me.inflight.Set(float64(stats.InFlight))
	me.prev = stats
}
