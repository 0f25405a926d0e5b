package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/endless-map/internal/vec"
	"github.com/annel0/endless-map/internal/world/biome"
)

// terrainStub отдаёт фиксированную категорию с точечными переопределениями.
// Позволяет тестировать менеджер без генератора.
type terrainStub struct {
	fallback  biome.Biome
	overrides map[vec.Vec2]biome.Biome
}

func newTerrainStub(fallback biome.Biome) *terrainStub {
	return &terrainStub{
		fallback:  fallback,
		overrides: make(map[vec.Vec2]biome.Biome),
	}
}

func (ts *terrainStub) GetOrGenerate(tile vec.Vec2) biome.Biome {
	if b, exists := ts.overrides[tile]; exists {
		return b
	}
	return ts.fallback
}

func TestManager_SpawnOncePerTile(t *testing.T) {
	terrain := newTerrainStub(biome.Grass)
	params := DefaultParams()
	params.SpawnChance = 1.0 // Каждая попытка спауна обязана сработать

	m := NewManager(terrain, params)
	topLeft := vec.Vec2{X: 0, Y: 0}
	bottomRight := vec.Vec2{X: 9, Y: 9}

	m.SpawnForNewlyVisibleTiles(topLeft, bottomRight)
	first := m.Count()
	require.Equal(t, 100, first, "При вероятности 1.0 спаун идёт на каждом тайле")

	// Повторный проход по тем же тайлам ничего не добавляет
	m.SpawnForNewlyVisibleTiles(topLeft, bottomRight)
	assert.Equal(t, first, m.Count(), "Попытка спауна на тайл — не больше одной")
}

func TestManager_SpawnRespectsEligibility(t *testing.T) {
	terrain := newTerrainStub(biome.Water)
	params := DefaultParams()
	params.SpawnChance = 1.0

	m := NewManager(terrain, params)
	m.SpawnForNewlyVisibleTiles(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 4, Y: 4})

	require.Greater(t, m.Count(), 0)
	m.ForEachInRect(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 4, Y: 4}, func(e *Entity) {
		assert.Equal(t, TypeFish, e.Type, "На воде спаунится только рыба")
		assert.True(t, e.Type.Eligible(biome.Water))
	})
}

func TestManager_SpawnHonorsTileCap(t *testing.T) {
	terrain := newTerrainStub(biome.Grass)
	params := DefaultParams()
	params.SpawnChance = 1.0
	params.MaxPerTile = 0

	m := NewManager(terrain, params)
	m.SpawnForNewlyVisibleTiles(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 9, Y: 9})
	assert.Equal(t, 0, m.Count(), "Нулевой предел популяции запрещает спаун")
}

func TestManager_SpawnPositionAndVelocity(t *testing.T) {
	terrain := newTerrainStub(biome.Grass)
	params := DefaultParams()
	params.SpawnChance = 1.0

	m := NewManager(terrain, params)
	tile := vec.Vec2{X: 7, Y: -3}
	m.SpawnForNewlyVisibleTiles(tile, tile)

	entities := m.EntitiesAt(tile)
	require.Len(t, entities, 1)
	e := entities[0]

	assert.Equal(t, TypeDeer, e.Type, "Единственный допустимый тип травы — олень")
	assert.InDelta(t, float64(tile.X)+0.5, e.Pos.X, 1e-12, "Спаун в центре тайла")
	assert.InDelta(t, float64(tile.Y)+0.5, e.Pos.Y, 1e-12)
	assert.InDelta(t, e.Spec().Speed, e.Vel.Length(), 1e-9,
		"Модуль скорости равен скорости типа")
	assert.Equal(t, tile, e.Home)
}

func TestManager_StaticEntityDoesNotMove(t *testing.T) {
	terrain := newTerrainStub(biome.Rock)
	m := NewManager(terrain, DefaultParams())

	boulder := &Entity{
		Type: TypeBoulder,
		Pos:  vec.Vec2Float{X: 3.5, Y: 3.5},
	}
	m.Add(boulder)

	for i := 0; i < 100; i++ {
		m.Tick()
	}

	got, exists := m.Get(boulder.ID)
	require.True(t, exists)
	assert.Equal(t, vec.Vec2Float{X: 3.5, Y: 3.5}, got.Pos, "Статичная сущность неподвижна")
	assert.Equal(t, 1, m.Count())
}

func TestManager_TickBouncesAtTileBoundary(t *testing.T) {
	terrain := newTerrainStub(biome.Grass)
	params := DefaultParams()
	params.TicksPerSecond = 60

	m := NewManager(terrain, params)
	deer := &Entity{
		Type: TypeDeer,
		Pos:  vec.Vec2Float{X: 0.9, Y: 0.5},
		Vel:  vec.Vec2Float{X: 60, Y: 0},
	}
	m.Add(deer)

	// За один тик позиция ушла бы на x=1.9 — в соседний тайл
	m.Tick()

	got, exists := m.Get(deer.ID)
	require.True(t, exists, "Сосед допустим, значит отскок, а не удаление")
	assert.InDelta(t, 1.0-tileEpsilon, got.Pos.X, 1e-12,
		"Позиция зажимается чуть внутри исходного тайла")
	assert.InDelta(t, 0.5, got.Pos.Y, 1e-12)
	assert.Equal(t, -60.0, got.Vel.X, "Компонента скорости отражается")
	assert.Equal(t, 0.0, got.Vel.Y)
	assert.Equal(t, vec.Vec2{X: 0, Y: 0}, got.Home, "Домашний тайл не меняется")
}

func TestManager_TickRemovesOnIneligibleTerrain(t *testing.T) {
	terrain := newTerrainStub(biome.Grass)
	m := NewManager(terrain, DefaultParams())

	deer := &Entity{
		Type: TypeDeer,
		Pos:  vec.Vec2Float{X: 0.5, Y: 0.5},
		Vel:  vec.Vec2Float{X: 1, Y: 0},
	}
	m.Add(deer)

	// Тайл под сущностью перекрашен в воду: первый же тик удаляет
	terrain.overrides[vec.Vec2{X: 0, Y: 0}] = biome.Water
	m.Tick()

	_, exists := m.Get(deer.ID)
	assert.False(t, exists, "Сущность на ставшем недопустимым тайле удаляется")
	assert.Equal(t, 0, m.Count())

	_, removed, _ := m.Stats()
	assert.Equal(t, uint64(1), removed)
}

func TestManager_RemovalBeatsBounce(t *testing.T) {
	terrain := newTerrainStub(biome.Grass)
	terrain.overrides[vec.Vec2{X: 1, Y: 0}] = biome.Water

	params := DefaultParams()
	params.TicksPerSecond = 60
	m := NewManager(terrain, params)

	deer := &Entity{
		Type: TypeDeer,
		Pos:  vec.Vec2Float{X: 0.9, Y: 0.5},
		Vel:  vec.Vec2Float{X: 60, Y: 0},
	}
	m.Add(deer)
	m.Tick()

	_, exists := m.Get(deer.ID)
	assert.False(t, exists,
		"Пересечение границы в недопустимый тайл — удаление, отскок не применяется")
}

func TestManager_PurgeTileRemovesOnlyIneligible(t *testing.T) {
	terrain := newTerrainStub(biome.Grass)
	m := NewManager(terrain, DefaultParams())

	tile := vec.Vec2{X: 2, Y: 2}
	deer := &Entity{Type: TypeDeer, Pos: tile.Center()}
	m.Add(deer)

	// Лес допустим для оленя — чистка ничего не трогает
	m.PurgeTile(tile, biome.Forest)
	assert.Equal(t, 1, m.Count())

	// Вода недопустима — олень удаляется
	m.PurgeTile(tile, biome.Water)
	assert.Equal(t, 0, m.Count())

	_, exists := m.Get(deer.ID)
	assert.False(t, exists)
}

func TestManager_PurgeTileIgnoresOtherTiles(t *testing.T) {
	terrain := newTerrainStub(biome.Grass)
	m := NewManager(terrain, DefaultParams())

	deer := &Entity{Type: TypeDeer, Pos: vec.Vec2{X: 5, Y: 5}.Center()}
	m.Add(deer)

	m.PurgeTile(vec.Vec2{X: 4, Y: 5}, biome.Water)
	assert.Equal(t, 1, m.Count(), "Чистка соседнего тайла не задевает сущность")
}

func TestManager_EntitiesAtReturnsSnapshot(t *testing.T) {
	terrain := newTerrainStub(biome.Grass)
	m := NewManager(terrain, DefaultParams())

	tile := vec.Vec2{X: 0, Y: 0}
	m.Add(&Entity{Type: TypeDeer, Pos: tile.Center()})
	m.Add(&Entity{Type: TypeDeer, Pos: tile.Center()})

	assert.Len(t, m.EntitiesAt(tile), 2)
	assert.Empty(t, m.EntitiesAt(vec.Vec2{X: 1, Y: 0}))
}

func TestManager_SpawnDeterministicBySeed(t *testing.T) {
	params := DefaultParams()
	params.SpawnChance = 0.5

	build := func() *Manager {
		m := NewManager(newTerrainStub(biome.Grass), params)
		m.SpawnForNewlyVisibleTiles(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 19, Y: 19})
		return m
	}

	a := build()
	b := build()
	assert.Equal(t, a.Count(), b.Count(),
		"Одинаковый сид даёт одинаковый результат спауна")
}

func TestBounceIntoTile_Corner(t *testing.T) {
	// Выход за обе границы сразу отражает обе компоненты
	pos, vel := bounceIntoTile(
		vec.Vec2Float{X: -0.2, Y: 1.3},
		vec.Vec2Float{X: -5, Y: 5},
		vec.Vec2{X: 0, Y: 0},
	)
	assert.InDelta(t, tileEpsilon, pos.X, 1e-12)
	assert.InDelta(t, 1.0-tileEpsilon, pos.Y, 1e-12)
	assert.Equal(t, 5.0, vel.X)
	assert.Equal(t, -5.0, vel.Y)
}
