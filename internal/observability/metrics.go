package observability

import (
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/annel0/endless-map/internal/logging"
)

// MetricsExporter поднимает HTTP-эндпоинт Prometheus и периодически
// обновляет gauge'и процесса (CPU, RSS). Метрики доменных пакетов
// регистрируются в глобальном регистре самостоятельно.
type MetricsExporter struct {
	quit chan struct{}
	done chan struct{}

	cpuPercent prometheus.Gauge
	rssBytes   prometheus.Gauge
}

// NewMetricsExporter создаёт экспортер, но не запускает HTTP-сервер
func NewMetricsExporter() *MetricsExporter {
	me := &MetricsExporter{
		quit: make(chan struct{}),
		done: make(chan struct{}),
		cpuPercent: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "process",
			Name:      "cpu_percent",
			Help:      "Загрузка CPU процессом симуляции.",
		}),
		rssBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "process",
			Name:      "resident_memory_gopsutil_bytes",
			Help:      "RSS процесса симуляции по данным gopsutil.",
		}),
	}

	prometheus.MustRegister(me.cpuPercent, me.rssBytes)
	return me
}

// StartHTTP запускает HTTP-эндпоинт Prometheus на указанном адресе
// (например, ":2112"). Метод неблокирующий: сервер стартует в отдельной
// горутине.
func (m *MetricsExporter) StartHTTP(addr string) {
	go func() {
		logging.Info("📈 Prometheus /metrics доступен по адресу %s", addr)
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(addr, mux); err != nil {
			logging.Error("Ошибка Prometheus HTTP сервера: %v", err)
		}
	}()
	go m.loop()
}

// Stop останавливает обновление метрик процесса
func (m *MetricsExporter) Stop() {
	close(m.quit)
	<-m.done
}

// loop периодически обновляет gauge'и процесса
func (m *MetricsExporter) loop() {
	defer close(m.done)

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		logging.Warn("Метрики процесса недоступны: %v", err)
		return
	}

	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-m.quit:
			return
		case <-ticker.C:
			if cpu, err := proc.CPUPercent(); err == nil {
				m.cpuPercent.Set(cpu)
			}
			if mem, err := proc.MemoryInfo(); err == nil && mem != nil {
				m.rssBytes.Set(float64(mem.RSS))
			}
		}
	}
}
