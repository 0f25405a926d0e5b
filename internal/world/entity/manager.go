package entity

import (
	"context"
	"math"
	"math/rand"
	"sync"

	"github.com/google/uuid"

	"github.com/annel0/endless-map/internal/eventbus"
	"github.com/annel0/endless-map/internal/vec"
	"github.com/annel0/endless-map/internal/world/biome"
)

// TerrainQuery предоставляет сущностям доступ к ландшафту.
// Реализуется WorldManager'ом: проверки валидности идут через оверлей,
// а не напрямую через генератор, поэтому покрашенные тайлы видны сразу.
type TerrainQuery interface {
	GetOrGenerate(tile vec.Vec2) biome.Biome
}

// Params задаёт параметры симуляции сущностей
type Params struct {
	SpawnChance    float64 // Вероятность попытки спауна на впервые увиденном тайле
	MaxPerTile     int     // Предел популяции тайла
	TicksPerSecond float64 // Частота тиков для масштабирования скорости
	Seed           int64   // Сид генератора случайностей спауна
}

// DefaultParams возвращает параметры симуляции по умолчанию
func DefaultParams() Params {
	return Params{
		SpawnChance:    0.08,
		MaxPerTile:     3,
		TicksPerSecond: 60,
		Seed:           1337,
	}
}

// Отступ от границы тайла при отскоке: позиция зажимается чуть внутри,
// чтобы следующий тик не начался ровно на границе.
const tileEpsilon = 1e-3

// Manager владеет ареной сущностей и вторичным индексом тайл → множество
// идентификаторов. Спаун, тик и чистка мутируют арену только под общим
// мьютексом; внутри тика структурные изменения собираются и применяются
// вторым проходом — контейнер не мутируется во время обхода.
type Manager struct {
	mu      sync.RWMutex
	terrain TerrainQuery
	params  Params
	rng     *rand.Rand

	entities map[uuid.UUID]*Entity
	byTile   map[vec.Vec2]map[uuid.UUID]struct{}
	loaded   map[vec.Vec2]struct{} // Тайлы с уже состоявшейся попыткой спауна

	spawnedTotal uint64
	removedTotal uint64
}

// NewManager создаёт менеджер сущностей поверх указанного ландшафта
func NewManager(terrain TerrainQuery, params Params) *Manager {
	return &Manager{
		terrain:  terrain,
		params:   params,
		rng:      rand.New(rand.NewSource(params.Seed)),
		entities: make(map[uuid.UUID]*Entity),
		byTile:   make(map[vec.Vec2]map[uuid.UUID]struct{}),
		loaded:   make(map[vec.Vec2]struct{}),
	}
}

// SpawnForNewlyVisibleTiles выполняет попытку спауна для каждого тайла
// прямоугольника [topLeft, bottomRight], который ещё не посещался.
// Попытка на координату происходит не больше одного раза за сессию:
// повторные вызовы с тем же диапазоном ничего не делают.
func (m *Manager) SpawnForNewlyVisibleTiles(topLeft, bottomRight vec.Vec2) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for y := topLeft.Y; y <= bottomRight.Y; y++ {
		for x := topLeft.X; x <= bottomRight.X; x++ {
			tile := vec.Vec2{X: x, Y: y}
			if _, seen := m.loaded[tile]; seen {
				continue
			}
			m.loaded[tile] = struct{}{}
			m.trySpawnLocked(tile)
		}
	}
}

// trySpawnLocked выполняет одну попытку спауна на тайле; вызывается под mu
func (m *Manager) trySpawnLocked(tile vec.Vec2) {
	if m.rng.Float64() >= m.params.SpawnChance {
		return
	}

	b := m.terrain.GetOrGenerate(tile)
	eligible := TypesForBiome(b)
	if len(eligible) == 0 {
		return
	}
	if len(m.byTile[tile]) >= m.params.MaxPerTile {
		return
	}

	t := eligible[m.rng.Intn(len(eligible))]
	spec := GetSpec(t)

	e := &Entity{
		ID:   uuid.New(),
		Type: t,
		Pos:  tile.Center(),
		Home: tile,
	}
	if spec.Motion == MotionWander {
		// Случайное направление при фиксированной скорости типа
		angle := m.rng.Float64() * 2 * math.Pi
		e.Vel = vec.Vec2Float{
			X: math.Cos(angle) * spec.Speed,
			Y: math.Sin(angle) * spec.Speed,
		}
	}

	m.addLocked(e)
	m.spawnedTotal++
	metricEntitiesSpawned.Inc()
	_ = eventbus.Publish(context.Background(), &eventbus.Event{
		Type:   eventbus.EventEntitySpawned,
		Source: "entity",
		Tile:   tile,
		Biome:  b,
		Entity: spec.Name,
	})
}

// Add добавляет уже созданную сущность в арену (используется, когда
// позиция и скорость задаются внешним кодом). Home выводится из позиции.
func (m *Manager) Add(e *Entity) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e.ID == (uuid.UUID{}) {
		e.ID = uuid.New()
	}
	e.Home = e.Pos.ToTile()
	m.addLocked(e)
}

// addLocked добавляет сущность в арену и индекс; вызывается под mu
func (m *Manager) addLocked(e *Entity) {
	m.entities[e.ID] = e
	set, exists := m.byTile[e.Home]
	if !exists {
		set = make(map[uuid.UUID]struct{})
		m.byTile[e.Home] = set
	}
	set[e.ID] = struct{}{}
}

// removeLocked удаляет сущность из арены и индекса; вызывается под mu
func (m *Manager) removeLocked(id uuid.UUID) {
	e, exists := m.entities[id]
	if !exists {
		return
	}
	delete(m.entities, id)
	if set, ok := m.byTile[e.Home]; ok {
		delete(set, id)
		if len(set) == 0 {
			delete(m.byTile, e.Home)
		}
	}
	m.removedTotal++
	metricEntitiesRemoved.Inc()
	_ = eventbus.Publish(context.Background(), &eventbus.Event{
		Type:   eventbus.EventEntityRemoved,
		Source: "entity",
		Tile:   e.Home,
		Entity: e.Type.String(),
	})
}

// reindexLocked переносит сущность между ключами индекса при смене тайла
func (m *Manager) reindexLocked(e *Entity, newHome vec.Vec2) {
	if e.Home == newHome {
		return
	}
	if set, ok := m.byTile[e.Home]; ok {
		delete(set, e.ID)
		if len(set) == 0 {
			delete(m.byTile, e.Home)
		}
	}
	e.Home = newHome
	set, exists := m.byTile[newHome]
	if !exists {
		set = make(map[uuid.UUID]struct{})
		m.byTile[newHome] = set
	}
	set[e.ID] = struct{}{}
}

// Tick продвигает всех подвижных сущностей на один тик.
//
// Для каждой сущности: позиция смещается на скорость/ticksPerSecond,
// пересчитывается содержащий тайл; если его категория (через оверлей,
// без повторной генерации) недопустима для типа — сущность удаляется,
// и отскок к удаляемой не применяется. Иначе пересечение границы тайла
// отражает соответствующие компоненты скорости и зажимает позицию чуть
// внутри исходного тайла. Удаления и переносы индекса применяются
// вторым проходом после обхода.
func (m *Manager) Tick() {
	m.mu.Lock()
	defer m.mu.Unlock()

	dt := 1.0 / m.params.TicksPerSecond

	var removals []uuid.UUID
	type move struct {
		e       *Entity
		newHome vec.Vec2
	}
	var moves []move

	for _, e := range m.entities {
		if e.Static() {
			continue
		}

		newPos := e.Pos.Add(e.Vel.Mul(dt))
		newTile := newPos.ToTile()

		// Проверка допустимости ландшафта решается до отскока:
		// пересечение границы в недопустимый тайл — удаление, не отскок
		if !e.Type.Eligible(m.terrain.GetOrGenerate(newTile)) {
			removals = append(removals, e.ID)
			continue
		}

		if newTile != e.Home {
			newPos, e.Vel = bounceIntoTile(newPos, e.Vel, e.Home)
			newTile = newPos.ToTile()
		}

		e.Pos = newPos
		if newTile != e.Home {
			moves = append(moves, move{e: e, newHome: newTile})
		}
	}

	// Структурные изменения — вторым проходом
	for _, mv := range moves {
		m.reindexLocked(mv.e, mv.newHome)
	}
	for _, id := range removals {
		m.removeLocked(id)
	}

	metricEntitiesActive.Set(float64(len(m.entities)))
}

// bounceIntoTile отражает компоненты скорости, выведшие позицию за границы
// тайла, и зажимает позицию внутри него
func bounceIntoTile(pos, vel vec.Vec2Float, tile vec.Vec2) (vec.Vec2Float, vec.Vec2Float) {
	minX := float64(tile.X)
	minY := float64(tile.Y)

	if pos.X < minX {
		pos.X = minX + tileEpsilon
		vel.X = -vel.X
	} else if pos.X >= minX+1 {
		pos.X = minX + 1 - tileEpsilon
		vel.X = -vel.X
	}
	if pos.Y < minY {
		pos.Y = minY + tileEpsilon
		vel.Y = -vel.Y
	} else if pos.Y >= minY+1 {
		pos.Y = minY + 1 - tileEpsilon
		vel.Y = -vel.Y
	}
	return pos, vel
}

// PurgeTile удаляет с тайла все сущности, чей тип недопустим для новой
// категории ландшафта. Вызывается миром синхронно из Paint.
func (m *Manager) PurgeTile(tile vec.Vec2, b biome.Biome) {
	m.mu.Lock()
	defer m.mu.Unlock()

	set, exists := m.byTile[tile]
	if !exists {
		return
	}

	// Сначала собираем, потом удаляем: removeLocked мутирует set
	var removals []uuid.UUID
	for id := range set {
		if e, ok := m.entities[id]; ok && !e.Type.Eligible(b) {
			removals = append(removals, id)
		}
	}
	for _, id := range removals {
		m.removeLocked(id)
	}
}

// EntitiesAt возвращает снимок сущностей на тайле (для отрисовки)
func (m *Manager) EntitiesAt(tile vec.Vec2) []*Entity {
	m.mu.RLock()
	defer m.mu.RUnlock()

	set, exists := m.byTile[tile]
	if !exists {
		return nil
	}
	result := make([]*Entity, 0, len(set))
	for id := range set {
		if e, ok := m.entities[id]; ok {
			result = append(result, e)
		}
	}
	return result
}

// ForEachInRect вызывает fn для каждой сущности в прямоугольнике тайлов
func (m *Manager) ForEachInRect(topLeft, bottomRight vec.Vec2, fn func(e *Entity)) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for tile, set := range m.byTile {
		if tile.X < topLeft.X || tile.X > bottomRight.X ||
			tile.Y < topLeft.Y || tile.Y > bottomRight.Y {
			continue
		}
		for id := range set {
			if e, ok := m.entities[id]; ok {
				fn(e)
			}
		}
	}
}

// Get возвращает сущность по идентификатору
func (m *Manager) Get(id uuid.UUID) (*Entity, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, exists := m.entities[id]
	return e, exists
}

// Count возвращает число живых сущностей
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entities)
}

// Stats возвращает счётчики симуляции за сессию
func (m *Manager) Stats() (spawned, removed uint64, active int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.spawnedTotal, m.removedTotal, len(m.entities)
}
