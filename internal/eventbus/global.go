package eventbus

import (
	"context"
	"time"

	"github.com/google/uuid"
)

var globalBus EventBus

// Init устанавливает глобальную шину.
func Init(bus EventBus) { globalBus = bus }

// Publish отправляет событие в глобальную шину, если она инициализирована.
// Идентификатор и время проставляются здесь: издателям достаточно
// заполнить тип и полезную нагрузку.
func Publish(ctx context.Context, ev *Event) error {
	if globalBus == nil {
		return nil
	}
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now().UTC()
	}
	return globalBus.Publish(ctx, ev)
}
