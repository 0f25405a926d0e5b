package vec

import "math"

// Vec2 представляет целочисленные координаты тайла
type Vec2 struct {
	X, Y int
}

// Add складывает координаты
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

// Offset возвращает координаты, смещённые на (dx, dy)
func (v Vec2) Offset(dx, dy int) Vec2 {
	return Vec2{X: v.X + dx, Y: v.Y + dy}
}

// Center возвращает центр тайла в непрерывных мировых координатах
func (v Vec2) Center() Vec2Float {
	return Vec2Float{X: float64(v.X) + 0.5, Y: float64(v.Y) + 0.5}
}

// DistanceTo вычисляет расстояние до другой точки
func (v Vec2) DistanceTo(other Vec2) float64 {
	dx := float64(v.X - other.X)
	dy := float64(v.Y - other.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// ChebyshevTo возвращает расстояние Чебышёва до другой точки (метрика кисти)
func (v Vec2) ChebyshevTo(other Vec2) int {
	dx := v.X - other.X
	if dx < 0 {
		dx = -dx
	}
	dy := v.Y - other.Y
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}
