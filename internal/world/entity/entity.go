package entity

import (
	"github.com/google/uuid"

	"github.com/annel0/endless-map/internal/vec"
)

// Entity представляет сущность в мире: тип, непрерывную позицию в мировых
// единицах (тайлах) и текущую скорость. Сущности живут в арене менеджера
// и адресуются стабильным идентификатором; Home — тайл, содержащий позицию,
// он же ключ вторичного индекса.
type Entity struct {
	ID   uuid.UUID     // Стабильный идентификатор в арене
	Type EntityType    // Тип из закрытого перечисления
	Pos  vec.Vec2Float // Позиция в мировых координатах
	Vel  vec.Vec2Float // Скорость в тайлах в секунду
	Home vec.Vec2      // Тайл, содержащий позицию
}

// Spec возвращает статические атрибуты типа сущности
func (e *Entity) Spec() Spec {
	return GetSpec(e.Type)
}

// Static сообщает, является ли сущность неподвижной
func (e *Entity) Static() bool {
	return GetSpec(e.Type).Motion == MotionStatic
}
