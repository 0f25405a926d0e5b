package world

import (
	"sync"
	"sync/atomic"

	"github.com/annel0/endless-map/internal/util"
	"github.com/annel0/endless-map/internal/vec"
	"github.com/annel0/endless-map/internal/world/biome"
)

// GenParams задаёт параметры генерации ландшафта.
// Значение неизменяемо после создания генератора: один процесс может
// держать несколько независимых миров с разными сидами.
type GenParams struct {
	Seed int64

	ElevFreq  float64 // Частота шума высоты (меньше масштаб = выше частота)
	MoistFreq float64 // Частота шума влажности
	RiverFreq float64 // Частота шума дренажа

	ElevOctaves  int
	MoistOctaves int
	RiverOctaves int

	SeaLevel       float64 // Ниже — вода
	BeachWidth     float64 // Ширина полосы пляжа над уровнем моря
	MountainLevel  float64 // Выше — горы
	RiverThreshold float64 // Дренаж ниже порога — русло реки
}

// Смещения выборки декоррелируют влажность и дренаж от высоты:
// поля сэмплируются в далёких друг от друга областях решётки.
const (
	moistOffsetX = 2000.0
	moistOffsetY = -1230.0
	drainOffsetX = 6000.0
	drainOffsetY = -4000.0

	// Порог влажности для леса и отступы полос реки/леса
	forestMoisture = 0.58
	riverLowBand   = 0.02
	riverHighBand  = 0.05
	forestMargin   = 0.05
)

// DefaultGenParams возвращает параметры эталонного мира
func DefaultGenParams() GenParams {
	return GenParams{
		Seed:           1337,
		ElevFreq:       1.0 / 50.0,
		MoistFreq:      1.0 / 20.0,
		RiverFreq:      1.0 / 100.0,
		ElevOctaves:    6,
		MoistOctaves:   4,
		RiverOctaves:   5,
		SeaLevel:       0.45,
		BeachWidth:     0.03,
		MountainLevel:  0.75,
		RiverThreshold: 0.18,
	}
}

// Fields содержит промежуточные поля классификации тайла.
// Все значения ограничены диапазоном [0, 1].
type Fields struct {
	Elevation float64
	Moisture  float64
	Drainage  float64
}

// WorldGenerator классифицирует тайлы по категориям ландшафта.
// Классификация — чистая функция от (координата, параметры), поэтому
// результат мемоизируется навсегда: кэш растёт вместе с исследованной
// областью и никогда не инвалидируется. Кэш закрыт RWMutex: чтение
// параллельно, классификация нового тайла выполняется под блокировкой
// записи с повторной проверкой.
type WorldGenerator struct {
	params GenParams
	noise  *util.NoiseSource

	mu    sync.RWMutex
	cache map[vec.Vec2]biome.Biome

	cacheHits   uint64
	cacheMisses uint64
}

// NewWorldGenerator создаёт генератор с указанными параметрами
func NewWorldGenerator(params GenParams) *WorldGenerator {
	return &WorldGenerator{
		params: params,
		noise:  util.NewNoiseSource(params.Seed),
		cache:  make(map[vec.Vec2]biome.Biome),
	}
}

// Params возвращает параметры генерации
func (wg *WorldGenerator) Params() GenParams {
	return wg.params
}

// BiomeAt возвращает категорию ландшафта тайла.
// Первый запрос тайла вычисляет поля шума и классифицирует тайл,
// повторные запросы отвечают из кэша без обращений к шуму.
func (wg *WorldGenerator) BiomeAt(tile vec.Vec2) biome.Biome {
	wg.mu.RLock()
	b, cached := wg.cache[tile]
	wg.mu.RUnlock()
	if cached {
		atomic.AddUint64(&wg.cacheHits, 1)
		return b
	}

	wg.mu.Lock()
	// Повторная проверка под блокировкой записи
	if b, cached = wg.cache[tile]; cached {
		wg.mu.Unlock()
		atomic.AddUint64(&wg.cacheHits, 1)
		return b
	}
	b = wg.classify(tile)
	wg.cache[tile] = b
	wg.mu.Unlock()

	atomic.AddUint64(&wg.cacheMisses, 1)
	metricTilesClassified.Inc()
	return b
}

// classify вычисляет категорию тайла без обращения к кэшу.
// Порядок проверок полностью упорядочен: первая сработавшая побеждает,
// пересечение категорий невозможно.
func (wg *WorldGenerator) classify(tile vec.Vec2) biome.Biome {
	f := wg.fields(tile)
	p := wg.params

	switch {
	case f.Elevation < p.SeaLevel:
		return biome.Water
	case f.Drainage < p.RiverThreshold &&
		f.Elevation > p.SeaLevel+riverLowBand &&
		f.Elevation < p.MountainLevel+riverHighBand:
		return biome.River
	case f.Elevation < p.SeaLevel+p.BeachWidth:
		return biome.Sand
	case f.Elevation > p.MountainLevel:
		return biome.Rock
	case f.Moisture > forestMoisture && f.Elevation < p.MountainLevel-forestMargin:
		return biome.Forest
	default:
		return biome.Grass
	}
}

// FieldsAt возвращает поля высоты/влажности/дренажа тайла.
// Используется в тестах и инструментах настройки; кэш не трогает.
func (wg *WorldGenerator) FieldsAt(tile vec.Vec2) Fields {
	return wg.fields(tile)
}

// fields вычисляет поля шума в центре тайла
func (wg *WorldGenerator) fields(tile vec.Vec2) Fields {
	p := wg.params
	sx := float64(tile.X) + 0.5
	sy := float64(tile.Y) + 0.5

	// Высота: fBm, модулированный медленным "континентальным" фактором,
	// смещающим крупные регионы к суше или морю
	elev := wg.noise.FBM(sx, sy, p.ElevFreq, p.ElevOctaves, 0.5, 2.0)
	continental := wg.noise.ValueNoise(sx, sy, p.ElevFreq*0.2)*0.25 + 0.75
	elev = util.Clamp01(elev * continental)

	// Влажность сэмплируется со смещением, чтобы не коррелировать с высотой
	moist := wg.noise.FBM(sx+moistOffsetX, sy+moistOffsetY, p.MoistFreq, p.MoistOctaves, 0.65, 2.0)

	// Близость к морю повышает влажность: считаем долю точек окрестности
	// 3x3 (с шагом 3 тайла, грубый 2-октавный fBm) ниже уровня моря
	nearSea := 0.0
	for ox := -1; ox <= 1; ox++ {
		for oy := -1; oy <= 1; oy++ {
			nearElev := wg.noise.FBM(sx+float64(ox)*3, sy+float64(oy)*3, p.ElevFreq, 2, 0.5, 2.0)
			if nearElev < p.SeaLevel {
				nearSea++
			}
		}
	}
	nearSea /= 9.0
	moist = util.Clamp01(moist * (0.7 + 0.8*nearSea))

	drain := wg.noise.RidgedFBM(sx+drainOffsetX, sy+drainOffsetY, p.RiverFreq, p.RiverOctaves)

	return Fields{Elevation: elev, Moisture: moist, Drainage: drain}
}

// CacheStats возвращает число попаданий и промахов кэша классификатора
func (wg *WorldGenerator) CacheStats() (hits, misses uint64) {
	return atomic.LoadUint64(&wg.cacheHits), atomic.LoadUint64(&wg.cacheMisses)
}

// CacheSize возвращает количество закэшированных тайлов
func (wg *WorldGenerator) CacheSize() int {
	wg.mu.RLock()
	defer wg.mu.RUnlock()
	return len(wg.cache)
}
