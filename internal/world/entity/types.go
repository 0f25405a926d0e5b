package entity

import (
	"fmt"

	"github.com/annel0/endless-map/internal/world/biome"
)

// EntityType представляет тип сущности
type EntityType uint8

const (
	TypeDeer EntityType = iota // Олень: равнины и лес
	TypeFox                    // Лиса: только лес
	TypeFish                   // Рыба: вода и реки
	TypeCrab                   // Краб: пляж
	TypeBoulder                // Валун: статичный объект в горах

	typeCount // служебный маркер конца перечисления
)

// MotionMode задаёт режим движения сущности
type MotionMode uint8

const (
	MotionStatic MotionMode = iota // Не двигается, скорость всегда нулевая
	MotionWander                   // Блуждает внутри своего тайла
)

// Shape задаёт форму отрисовки сущности
type Shape uint8

const (
	ShapeCircle Shape = iota
	ShapeSquare
)

// Spec описывает статические атрибуты типа сущности.
// Таблица закрыта и фиксирована на этапе компиляции; обращение за
// атрибутами типа вне перечисления — нарушение контракта.
type Spec struct {
	Name     string        // Имя типа (для логов)
	Eligible []biome.Biome // Допустимые категории ландшафта
	Motion   MotionMode    // Режим движения
	Speed    float64       // Скорость в тайлах в секунду (0 для статичных)
	Shape    Shape         // Форма отрисовки
	Color    biome.Color   // Цвет отрисовки
}

var specs = map[EntityType]Spec{
	TypeDeer: {
		Name:     "deer",
		Eligible: []biome.Biome{biome.Grass, biome.Forest},
		Motion:   MotionWander,
		Speed:    1.5,
		Shape:    ShapeCircle,
		Color:    biome.Color{R: 150, G: 100, B: 50},
	},
	TypeFox: {
		Name:     "fox",
		Eligible: []biome.Biome{biome.Forest},
		Motion:   MotionWander,
		Speed:    2.0,
		Shape:    ShapeCircle,
		Color:    biome.Color{R: 220, G: 120, B: 30},
	},
	TypeFish: {
		Name:     "fish",
		Eligible: []biome.Biome{biome.Water, biome.River},
		Motion:   MotionWander,
		Speed:    1.0,
		Shape:    ShapeCircle,
		Color:    biome.Color{R: 180, G: 180, B: 255},
	},
	TypeCrab: {
		Name:     "crab",
		Eligible: []biome.Biome{biome.Sand},
		Motion:   MotionWander,
		Speed:    0.8,
		Shape:    ShapeCircle,
		Color:    biome.Color{R: 200, G: 60, B: 40},
	},
	TypeBoulder: {
		Name:     "boulder",
		Eligible: []biome.Biome{biome.Rock},
		Motion:   MotionStatic,
		Speed:    0,
		Shape:    ShapeSquare,
		Color:    biome.Color{R: 90, G: 90, B: 90},
	},
}

// Таблица типов по категориям строится один раз при старте:
// выбор кандидатов на спаун не должен перебирать все типы на каждый тайл.
var typesByBiome = map[biome.Biome][]EntityType{}

func init() {
	if len(specs) != int(typeCount) {
		panic(fmt.Sprintf("entity: описано %d типов из %d", len(specs), typeCount))
	}
	for t := EntityType(0); t < typeCount; t++ {
		spec := specs[t]
		if spec.Motion == MotionStatic && spec.Speed != 0 {
			panic(fmt.Sprintf("entity: статичный тип %s имеет ненулевую скорость", spec.Name))
		}
		for _, b := range spec.Eligible {
			if !biome.IsValid(b) {
				panic(fmt.Sprintf("entity: тип %s ссылается на категорию вне перечисления", spec.Name))
			}
			typesByBiome[b] = append(typesByBiome[b], t)
		}
	}
}

// GetSpec возвращает атрибуты типа или паникует для значения вне перечисления
func GetSpec(t EntityType) Spec {
	spec, exists := specs[t]
	if !exists {
		panic(fmt.Sprintf("entity: неизвестный тип %d", t))
	}
	return spec
}

// IsValidType проверяет, входит ли значение в закрытое перечисление
func IsValidType(t EntityType) bool {
	_, exists := specs[t]
	return exists
}

// TypesForBiome возвращает типы, допустимые для категории ландшафта.
// Возвращаемый срез общий, изменять его нельзя.
func TypesForBiome(b biome.Biome) []EntityType {
	return typesByBiome[b]
}

// Eligible сообщает, допустима ли категория ландшафта для типа
func (t EntityType) Eligible(b biome.Biome) bool {
	for _, allowed := range GetSpec(t).Eligible {
		if allowed == b {
			return true
		}
	}
	return false
}

// String возвращает имя типа
func (t EntityType) String() string {
	if spec, exists := specs[t]; exists {
		return spec.Name
	}
	return "unknown"
}
