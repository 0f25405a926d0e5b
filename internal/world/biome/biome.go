package biome

// Biome представляет категорию ландшафта тайла
type Biome uint8

// Константы категорий ландшафта. Набор закрытый: значения вне
// перечисления — нарушение контракта, а не ошибка времени выполнения.
const (
	Water  Biome = iota // Глубокая вода (ниже уровня моря)
	River               // Река/мелководье (русло дренажа)
	Sand                // Пляж (узкая полоса над уровнем моря)
	Grass               // Равнина (категория по умолчанию)
	Forest              // Лес (высокая влажность)
	Rock                // Горы (выше горного уровня)

	biomeCount // служебный маркер конца перечисления
)

// Color задаёт цвет отрисовки тайла в RGB
type Color struct {
	R, G, B uint8
}

// Info описывает статические атрибуты категории ландшафта
type Info struct {
	Name     string // Имя категории (для логов и конфигурации)
	Color    Color  // Цвет отрисовки
	Walkable bool   // Может ли наземная сущность находиться на тайле
}

// String возвращает имя категории
func (b Biome) String() string {
	if info, ok := Get(b); ok {
		return info.Name
	}
	return "unknown"
}
