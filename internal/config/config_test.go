package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/endless-map/internal/world"
)

func TestLoad_EmptyPathWithoutEnv(t *testing.T) {
	t.Setenv("MAP_CONFIG", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Nil(t, cfg, "Без пути и ENV конфигурации нет — используются дефолты")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yml")
	assert.Error(t, err, "Явно указанный отсутствующий файл — ошибка")
}

func TestLoad_ParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	data := []byte(`
world:
  seed: 42
  sea_level: 0.5
entities:
  spawn_chance: 0.25
  max_per_tile: 7
camera:
  tile_size: 48
server:
  metrics_port: 9200
`)
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, int64(42), cfg.World.Seed)
	assert.Equal(t, 0.5, cfg.World.SeaLevel)
	assert.Equal(t, 0.25, cfg.Entities.SpawnChance)
	assert.Equal(t, 7, cfg.Entities.MaxPerTile)
	assert.Equal(t, 48.0, cfg.Camera.TileSize)
	assert.Equal(t, 9200, cfg.Server.GetMetricsPort())
}

func TestLoad_PathFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("world:\n  seed: 99\n"), 0644))
	t.Setenv("MAP_CONFIG", path)

	cfg, err := Load("")
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, int64(99), cfg.World.Seed)
}

func TestWorldConfig_GenParamsDefaults(t *testing.T) {
	t.Setenv("MAP_SEED", "")

	var wc WorldConfig
	assert.Equal(t, world.DefaultGenParams(), wc.GenParams(),
		"Пустая секция даёт параметры эталонного мира")
}

func TestWorldConfig_GenParamsOverrides(t *testing.T) {
	wc := WorldConfig{Seed: 7, SeaLevel: 0.6, ElevOctaves: 3}
	p := wc.GenParams()

	assert.Equal(t, int64(7), p.Seed)
	assert.Equal(t, 0.6, p.SeaLevel)
	assert.Equal(t, 3, p.ElevOctaves)

	// Незаполненные поля остаются дефолтными
	def := world.DefaultGenParams()
	assert.Equal(t, def.ElevFreq, p.ElevFreq)
	assert.Equal(t, def.MountainLevel, p.MountainLevel)
}

func TestWorldConfig_SeedFromEnv(t *testing.T) {
	t.Setenv("MAP_SEED", "2024")

	var wc WorldConfig
	assert.Equal(t, int64(2024), wc.GenParams().Seed,
		"При нулевом сиде в конфиге берётся MAP_SEED")
}

func TestWorldConfig_ExplicitSeedBeatsEnv(t *testing.T) {
	t.Setenv("MAP_SEED", "2024")

	wc := WorldConfig{Seed: 5}
	assert.Equal(t, int64(5), wc.GenParams().Seed)
}

func TestEntitiesConfig_EntityParams(t *testing.T) {
	ec := EntitiesConfig{SpawnChance: 0.5, TicksPerSecond: 30}
	p := ec.EntityParams(777)

	assert.Equal(t, 0.5, p.SpawnChance)
	assert.Equal(t, 30.0, p.TicksPerSecond)
	assert.Equal(t, int64(777), p.Seed, "Сид симуляции приходит из мира")
	assert.Equal(t, 3, p.MaxPerTile, "Незаполненный предел — дефолтный")
}

func TestCameraConfig_CameraParams(t *testing.T) {
	cc := CameraConfig{TileSize: 64, MaxZoom: 8}
	p := cc.CameraParams()

	assert.Equal(t, 64.0, p.BaseTileSize)
	assert.Equal(t, 8.0, p.MaxZoom)
	assert.Equal(t, 0.1, p.MinZoom)
	assert.Equal(t, 50.0, p.UIOffsetY)
}

func TestServerConfig_MetricsPortFallbacks(t *testing.T) {
	t.Setenv("MAP_METRICS_PORT", "")

	var sc ServerConfig
	assert.Equal(t, 2112, sc.GetMetricsPort(), "Без конфига и ENV — порт по умолчанию")

	t.Setenv("MAP_METRICS_PORT", "9300")
	assert.Equal(t, 9300, sc.GetMetricsPort())

	sc.MetricsPort = 9400
	assert.Equal(t, 9400, sc.GetMetricsPort(), "Значение из конфига приоритетно")
}
