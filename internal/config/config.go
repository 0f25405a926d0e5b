package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/annel0/endless-map/internal/camera"
	"github.com/annel0/endless-map/internal/world"
	"github.com/annel0/endless-map/internal/world/entity"
)

// Config — корневая структура конфигурации приложения.
// Нулевое значение каждой секции откатывается к константам эталонного
// мира: отсутствующий файл конфигурации воспроизводит его в точности.
type Config struct {
	World    WorldConfig    `yaml:"world"`
	Entities EntitiesConfig `yaml:"entities"`
	Camera   CameraConfig   `yaml:"camera"`
	Server   ServerConfig   `yaml:"server"`
}

// WorldConfig задаёт параметры генерации ландшафта
type WorldConfig struct {
	Seed           int64   `yaml:"seed"`
	ElevFreq       float64 `yaml:"elev_freq"`
	MoistFreq      float64 `yaml:"moist_freq"`
	RiverFreq      float64 `yaml:"river_freq"`
	ElevOctaves    int     `yaml:"elev_octaves"`
	MoistOctaves   int     `yaml:"moist_octaves"`
	RiverOctaves   int     `yaml:"river_octaves"`
	SeaLevel       float64 `yaml:"sea_level"`
	BeachWidth     float64 `yaml:"beach_width"`
	MountainLevel  float64 `yaml:"mountain_level"`
	RiverThreshold float64 `yaml:"river_threshold"`
}

// EntitiesConfig задаёт параметры симуляции сущностей
type EntitiesConfig struct {
	SpawnChance    float64 `yaml:"spawn_chance"`
	MaxPerTile     int     `yaml:"max_per_tile"`
	TicksPerSecond float64 `yaml:"ticks_per_second"`
}

// CameraConfig задаёт параметры вьюпорта
type CameraConfig struct {
	TileSize  float64 `yaml:"tile_size"`
	MinZoom   float64 `yaml:"min_zoom"`
	MaxZoom   float64 `yaml:"max_zoom"`
	UIOffsetY float64 `yaml:"ui_offset_y"`
}

// ServerConfig задаёт служебные порты
type ServerConfig struct {
	MetricsPort int `yaml:"metrics_port"`
}

// GetMetricsPort возвращает порт метрик с приоритетом: config -> env -> default
func (s *ServerConfig) GetMetricsPort() int {
	if s.MetricsPort > 0 {
		return s.MetricsPort
	}
	if envVal := os.Getenv("MAP_METRICS_PORT"); envVal != "" {
		if port, err := strconv.Atoi(envVal); err == nil && port > 0 {
			return port
		}
	}
	return 2112
}

// GenParams собирает параметры генерации, подставляя дефолты эталонного
// мира вместо нулевых значений
func (w *WorldConfig) GenParams() world.GenParams {
	p := world.DefaultGenParams()
	if w.Seed != 0 {
		p.Seed = w.Seed
	} else if envVal := os.Getenv("MAP_SEED"); envVal != "" {
		if seed, err := strconv.ParseInt(envVal, 10, 64); err == nil {
			p.Seed = seed
		}
	}
	if w.ElevFreq > 0 {
		p.ElevFreq = w.ElevFreq
	}
	if w.MoistFreq > 0 {
		p.MoistFreq = w.MoistFreq
	}
	if w.RiverFreq > 0 {
		p.RiverFreq = w.RiverFreq
	}
	if w.ElevOctaves > 0 {
		p.ElevOctaves = w.ElevOctaves
	}
	if w.MoistOctaves > 0 {
		p.MoistOctaves = w.MoistOctaves
	}
	if w.RiverOctaves > 0 {
		p.RiverOctaves = w.RiverOctaves
	}
	if w.SeaLevel > 0 {
		p.SeaLevel = w.SeaLevel
	}
	if w.BeachWidth > 0 {
		p.BeachWidth = w.BeachWidth
	}
	if w.MountainLevel > 0 {
		p.MountainLevel = w.MountainLevel
	}
	if w.RiverThreshold > 0 {
		p.RiverThreshold = w.RiverThreshold
	}
	return p
}

// EntityParams собирает параметры симуляции сущностей с дефолтами
func (e *EntitiesConfig) EntityParams(seed int64) entity.Params {
	p := entity.DefaultParams()
	p.Seed = seed
	if e.SpawnChance > 0 {
		p.SpawnChance = e.SpawnChance
	}
	if e.MaxPerTile > 0 {
		p.MaxPerTile = e.MaxPerTile
	}
	if e.TicksPerSecond > 0 {
		p.TicksPerSecond = e.TicksPerSecond
	}
	return p
}

// CameraParams собирает параметры вьюпорта с дефолтами
func (c *CameraConfig) CameraParams() camera.Params {
	p := camera.DefaultParams()
	if c.TileSize > 0 {
		p.BaseTileSize = c.TileSize
	}
	if c.MinZoom > 0 {
		p.MinZoom = c.MinZoom
	}
	if c.MaxZoom > 0 {
		p.MaxZoom = c.MaxZoom
	}
	if c.UIOffsetY > 0 {
		p.UIOffsetY = c.UIOffsetY
	}
	return p
}

// Load читает YAML файл конфигурации.
// Если path == "", пытается прочитать из ENV MAP_CONFIG; если и он пуст,
// возвращает nil, nil — вызывающий использует дефолты.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("MAP_CONFIG")
		if path == "" {
			return nil, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("чтение конфигурации %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("разбор конфигурации %s: %w", path, err)
	}

	return &cfg, nil
}
