package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/annel0/endless-map/internal/camera"
	"github.com/annel0/endless-map/internal/config"
	"github.com/annel0/endless-map/internal/eventbus"
	"github.com/annel0/endless-map/internal/logging"
	"github.com/annel0/endless-map/internal/observability"
	"github.com/annel0/endless-map/internal/world"
	"github.com/annel0/endless-map/internal/world/entity"
)

// Экранные константы хоста: безголовый прогон использует тот же вьюпорт,
// что и интерактивный рендерер
const (
	viewportWidth   = 1280.0
	viewportHeight  = 720.0
	scrollPixelsSec = 400.0
)

func main() {
	configPath := flag.String("config", "", "путь к YAML конфигурации (или ENV MAP_CONFIG)")
	seedFlag := flag.Int64("seed", 0, "переопределение сида мира")
	ticksFlag := flag.Uint64("ticks", 0, "остановиться после N тиков (0 — работать до сигнала)")
	telemetryFlag := flag.Bool("telemetry", false, "включить экспорт трейсов OTLP")
	flag.Parse()

	if err := logging.InitDefaultLogger("server"); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()

	logging.Info("🗺️  Запуск симулятора бесконечной карты...")

	// === КОНФИГУРАЦИЯ ===
	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Error("❌ Ошибка загрузки конфигурации: %v", err)
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}
	if cfg == nil {
		cfg = &config.Config{}
	}

	genParams := cfg.World.GenParams()
	if *seedFlag != 0 {
		genParams.Seed = *seedFlag
	}
	entityParams := cfg.Entities.EntityParams(genParams.Seed)
	cameraParams := cfg.Camera.CameraParams()

	logging.Info("📡 Конфигурация: seed=%d, tps=%.0f, metrics=:%d",
		genParams.Seed, entityParams.TicksPerSecond, cfg.Server.GetMetricsPort())

	// === ИНИЦИАЛИЗАЦИЯ КОМПОНЕНТОВ ===
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *telemetryFlag {
		shutdown, err := observability.InitTelemetry(ctx, "endless-map")
		if err != nil {
			logging.Warn("Телеметрия недоступна: %v", err)
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logging.Warn("Ошибка завершения телеметрии: %v", err)
				}
			}()
		}
	}

	// Шина событий симуляции: покраска тайлов и жизненный цикл сущностей
	bus := eventbus.NewMemoryBus(1024)
	eventbus.Init(bus)
	if err := eventbus.StartLoggingListener(bus); err != nil {
		logging.Warn("Слушатель событий не запущен: %v", err)
	}
	busMetrics := eventbus.NewMetricsExporter(bus)
	busMetrics.Start(5 * time.Second)
	defer busMetrics.Stop()

	worldManager := world.NewWorldManager(genParams)
	entityManager := entity.NewManager(worldManager, entityParams)
	worldManager.SetEntityPurger(entityManager)
	cam := camera.New(cameraParams)

	metricsExporter := observability.NewMetricsExporter()
	metricsExporter.StartHTTP(fmt.Sprintf(":%d", cfg.Server.GetMetricsPort()))
	defer metricsExporter.Stop()

	// Завершение по сигналу
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info("Получен сигнал %v, завершение...", sig)
		cancel()
	}()

	defer logging.GetLoggerManager().CloseAll()

	runLoop(ctx, worldManager, entityManager, cam, entityParams.TicksPerSecond, *ticksFlag)

	hits, misses := worldManager.Generator().CacheStats()
	spawned, removed, active := entityManager.Stats()
	logging.Info("✅ Остановлено: тайлов в оверлее=%d, кэш hits/misses=%d/%d, сущностей spawn/remove/live=%d/%d/%d",
		worldManager.OverlaySize(), hits, misses, spawned, removed, active)
}

// runLoop крутит безголовый цикл тиков: камера медленно прокручивается
// по миру с постоянной экранной скоростью, видимое окно материализуется,
// на новых тайлах спаунятся сущности, затем тикает симуляция.
func runLoop(ctx context.Context, wm *world.WorldManager, em *entity.Manager, cam *camera.Camera, tps float64, maxTicks uint64) {
	tracer := otel.Tracer("endless-map/sim")
	simLog := logging.GetLoggerManager().MustGetLogger("sim")

	ticker := time.NewTicker(time.Duration(float64(time.Second) / tps))
	defer ticker.Stop()

	statsEvery := time.NewTicker(5 * time.Second)
	defer statsEvery.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return
		case <-statsEvery.C:
			_, misses := wm.Generator().CacheStats()
			_, _, active := em.Stats()
			simLog.Log(logging.DEBUG, "tick=%d cam=(%.1f, %.1f) overlay=%d classified=%d entities=%d",
				tick, cam.Pos().X, cam.Pos().Y, wm.OverlaySize(), misses, active)
		case <-ticker.C:
			_, span := tracer.Start(ctx, "frame")

			cam.Move(cam.StepForScreenSpeed(scrollPixelsSec, tps), 0)

			topLeft, tilesWide, tilesHigh := cam.VisibleTileRange(viewportWidth, viewportHeight)
			bottomRight := topLeft.Offset(tilesWide-1, tilesHigh-1)

			// Материализация видимого окна — путь рендерера
			_ = wm.QueryRect(topLeft, bottomRight)

			em.SpawnForNewlyVisibleTiles(topLeft, bottomRight)
			em.Tick()

			span.End()

			tick++
			if maxTicks > 0 && tick >= maxTicks {
				return
			}
		}
	}
}
