package vec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec2Float_ToTileFloorsNegatives(t *testing.T) {
	// Отрицательные координаты попадают в тайл слева/сверху от нуля,
	// а не усекаются к нулю
	assert.Equal(t, Vec2{X: 0, Y: 0}, Vec2Float{X: 0.5, Y: 0.9}.ToTile())
	assert.Equal(t, Vec2{X: -1, Y: -1}, Vec2Float{X: -0.5, Y: -0.1}.ToTile())
	assert.Equal(t, Vec2{X: -3, Y: 2}, Vec2Float{X: -2.01, Y: 2.99}.ToTile())
	assert.Equal(t, Vec2{X: 5, Y: -6}, Vec2Float{X: 5.0, Y: -6.0}.ToTile())
}

func TestVec2_Center(t *testing.T) {
	assert.Equal(t, Vec2Float{X: 0.5, Y: 0.5}, Vec2{X: 0, Y: 0}.Center())
	assert.Equal(t, Vec2Float{X: -2.5, Y: 7.5}, Vec2{X: -3, Y: 7}.Center())

	// Центр тайла всегда принадлежит самому тайлу
	tile := Vec2{X: -4, Y: 11}
	assert.Equal(t, tile, tile.Center().ToTile())
}

func TestVec2_Chebyshev(t *testing.T) {
	a := Vec2{X: 0, Y: 0}
	assert.Equal(t, 0, a.ChebyshevTo(a))
	assert.Equal(t, 3, a.ChebyshevTo(Vec2{X: 3, Y: 1}))
	assert.Equal(t, 5, a.ChebyshevTo(Vec2{X: -2, Y: -5}))
}

func TestVec2Float_Arithmetic(t *testing.T) {
	v := Vec2Float{X: 3, Y: 4}

	assert.Equal(t, Vec2Float{X: 4, Y: 6}, v.Add(Vec2Float{X: 1, Y: 2}))
	assert.Equal(t, Vec2Float{X: 2, Y: 2}, v.Sub(Vec2Float{X: 1, Y: 2}))
	assert.Equal(t, Vec2Float{X: 1.5, Y: 2}, v.Mul(0.5))
	assert.Equal(t, 5.0, v.Length())
	assert.InDelta(t, 1.0, v.Normalized().Length(), 1e-12)
	assert.Equal(t, Vec2Float{}, Vec2Float{}.Normalized(), "Нулевой вектор нормализуется в ноль")
}
