package world

import (
	"context"
	"sync"

	"github.com/annel0/endless-map/internal/eventbus"
	"github.com/annel0/endless-map/internal/vec"
	"github.com/annel0/endless-map/internal/world/biome"
)

// EntityPurger уведомляется о перекраске тайла, чтобы немедленно убрать
// сущности, чей тип стал недопустим для новой категории ландшафта.
// Интерфейс разрывает зависимость мира от пакета сущностей.
type EntityPurger interface {
	PurgeTile(tile vec.Vec2, b biome.Biome)
}

// WorldManager владеет оверлеем ландшафта — разреженной картой
// тайл → категория, приоритетной над генератором. Тайл попадает в оверлей
// либо лениво при первом запросе, либо явно при покраске; после этого
// классификатор для него больше не опрашивается. Удаления нет: запись
// живёт до конца сессии.
//
// Оверлей — единственный мутируемый источник правды о ландшафте, поэтому
// он однописательный: покраска и чистка сущностей должны наблюдаться
// атомарно (общий мьютекс, purge вызывается до его освобождения не нужен —
// см. Paint).
type WorldManager struct {
	mu        sync.RWMutex
	overlay   map[vec.Vec2]biome.Biome
	generator *WorldGenerator
	purger    EntityPurger

	paintedTiles uint64
}

// NewWorldManager создаёт менеджер мира с указанными параметрами генерации
func NewWorldManager(params GenParams) *WorldManager {
	return &WorldManager{
		overlay:   make(map[vec.Vec2]biome.Biome),
		generator: NewWorldGenerator(params),
	}
}

// SetEntityPurger подключает менеджер сущностей для чистки при покраске
func (wm *WorldManager) SetEntityPurger(purger EntityPurger) {
	wm.mu.Lock()
	defer wm.mu.Unlock()
	wm.purger = purger
}

// Generator возвращает генератор мира (чистый, кэшированный классификатор)
func (wm *WorldManager) Generator() *WorldGenerator {
	return wm.generator
}

// GetOrGenerate возвращает категорию тайла из оверлея, при промахе
// вычисляет её классификатором и закрепляет в оверлее. После первого
// запроса тайл неотличим от покрашенного вручную.
func (wm *WorldManager) GetOrGenerate(tile vec.Vec2) biome.Biome {
	wm.mu.RLock()
	b, exists := wm.overlay[tile]
	wm.mu.RUnlock()
	if exists {
		return b
	}

	// Классификация вне блокировки оверлея: BiomeAt чистая и кэширована
	b = wm.generator.BiomeAt(tile)

	wm.mu.Lock()
	// Повторная проверка: покраска могла опередить ленивую материализацию
	if cur, exists := wm.overlay[tile]; exists {
		wm.mu.Unlock()
		return cur
	}
	wm.overlay[tile] = b
	wm.mu.Unlock()
	return b
}

// Lookup возвращает запись оверлея без ленивой материализации
func (wm *WorldManager) Lookup(tile vec.Vec2) (biome.Biome, bool) {
	wm.mu.RLock()
	defer wm.mu.RUnlock()
	b, exists := wm.overlay[tile]
	return b, exists
}

// Paint безусловно записывает категорию тайла, перекрывая любое ранее
// сгенерированное или покрашенное значение, и сразу чистит сущности,
// ставшие недопустимыми на тайле. Тотальна и идемпотентна.
func (wm *WorldManager) Paint(tile vec.Vec2, b biome.Biome) {
	if !biome.IsValid(b) {
		panic("world: покраска категорией вне перечисления")
	}

	wm.mu.Lock()
	wm.overlay[tile] = b
	wm.paintedTiles++
	purger := wm.purger
	wm.mu.Unlock()

	metricTilesPainted.Inc()
	_ = eventbus.Publish(context.Background(), &eventbus.Event{
		Type:     eventbus.EventTilePainted,
		Source:   "world",
		Tile:     tile,
		Biome:    b,
		Priority: 5, // Покраска — действие оператора, терять нельзя
	})

	// Чистка под тем же логическим шагом: между записью и purge нет тика
	if purger != nil {
		purger.PurgeTile(tile, b)
	}
}

// PaintBrush красит квадратную окрестность радиуса Чебышёва radius-1
// вокруг центра: radius 1 красит ровно центральный тайл,
// radius r — квадрат (2r-1)x(2r-1).
func (wm *WorldManager) PaintBrush(center vec.Vec2, radius int, b biome.Biome) {
	if radius < 1 {
		return
	}
	for dx := -radius + 1; dx < radius; dx++ {
		for dy := -radius + 1; dy < radius; dy++ {
			wm.Paint(center.Offset(dx, dy), b)
		}
	}
}

// QueryRect возвращает категории всех тайлов прямоугольника
// [topLeft, bottomRight] включительно, материализуя недостающие.
// Используется рендерером для обхода видимого окна.
func (wm *WorldManager) QueryRect(topLeft, bottomRight vec.Vec2) map[vec.Vec2]biome.Biome {
	result := make(map[vec.Vec2]biome.Biome)
	for y := topLeft.Y; y <= bottomRight.Y; y++ {
		for x := topLeft.X; x <= bottomRight.X; x++ {
			tile := vec.Vec2{X: x, Y: y}
			result[tile] = wm.GetOrGenerate(tile)
		}
	}
	return result
}

// ForEachInRect вызывает fn для каждого тайла прямоугольника построчно,
// материализуя недостающие. Дешевле QueryRect для построчной отрисовки.
func (wm *WorldManager) ForEachInRect(topLeft, bottomRight vec.Vec2, fn func(tile vec.Vec2, b biome.Biome)) {
	for y := topLeft.Y; y <= bottomRight.Y; y++ {
		for x := topLeft.X; x <= bottomRight.X; x++ {
			tile := vec.Vec2{X: x, Y: y}
			fn(tile, wm.GetOrGenerate(tile))
		}
	}
}

// OverlaySize возвращает число материализованных тайлов
func (wm *WorldManager) OverlaySize() int {
	wm.mu.RLock()
	defer wm.mu.RUnlock()
	return len(wm.overlay)
}

// PaintedTiles возвращает счётчик операций покраски за сессию
func (wm *WorldManager) PaintedTiles() uint64 {
	wm.mu.RLock()
	defer wm.mu.RUnlock()
	return wm.paintedTiles
}
