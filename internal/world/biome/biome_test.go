package biome

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_AllCategoriesRegistered(t *testing.T) {
	all := All()
	require.Len(t, all, int(biomeCount), "Регистр покрывает всё перечисление")

	for _, b := range all {
		info := MustGet(b)
		assert.NotEmpty(t, info.Name, "У категории %d должно быть имя", b)
		assert.True(t, IsValid(b))
	}
}

func TestRegistry_Colors(t *testing.T) {
	// Палитра отрисовки фиксирована
	assert.Equal(t, Color{R: 0, G: 0, B: 200}, MustGet(Water).Color)
	assert.Equal(t, Color{R: 0, G: 50, B: 200}, MustGet(River).Color)
	assert.Equal(t, Color{R: 230, G: 220, B: 130}, MustGet(Sand).Color)
	assert.Equal(t, Color{R: 50, G: 200, B: 50}, MustGet(Grass).Color)
	assert.Equal(t, Color{R: 16, G: 100, B: 16}, MustGet(Forest).Color)
	assert.Equal(t, Color{R: 130, G: 130, B: 130}, MustGet(Rock).Color)
}

func TestRegistry_Walkability(t *testing.T) {
	assert.False(t, MustGet(Water).Walkable)
	assert.False(t, MustGet(River).Walkable)
	assert.True(t, MustGet(Sand).Walkable)
	assert.True(t, MustGet(Grass).Walkable)
	assert.True(t, MustGet(Forest).Walkable)
	assert.True(t, MustGet(Rock).Walkable)
}

func TestRegistry_UnknownCategory(t *testing.T) {
	unknown := Biome(200)

	assert.False(t, IsValid(unknown))
	assert.Equal(t, "unknown", unknown.String())

	_, exists := Get(unknown)
	assert.False(t, exists)

	assert.Panics(t, func() { MustGet(unknown) },
		"MustGet паникует для значения вне перечисления")
}

func TestRegistry_ByName(t *testing.T) {
	b, exists := ByName("forest")
	require.True(t, exists)
	assert.Equal(t, Forest, b)

	_, exists = ByName("lava")
	assert.False(t, exists)
}

func TestRegistry_DuplicateRegistrationPanics(t *testing.T) {
	assert.Panics(t, func() {
		Register(Water, Info{Name: "water2"})
	}, "Повторная регистрация категории — ошибка программирования")
}

func TestBiome_String(t *testing.T) {
	assert.Equal(t, "water", Water.String())
	assert.Equal(t, "rock", Rock.String())
}
