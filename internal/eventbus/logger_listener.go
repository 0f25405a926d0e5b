package eventbus

import (
	"context"

	"github.com/annel0/endless-map/internal/logging"
)

// StartLoggingListener подписывается на все события и пишет их в стандартный лог.
// Функция неблокирующая.
func StartLoggingListener(bus EventBus) error {
	_, err := bus.Subscribe(context.Background(), Filter{}, func(ctx context.Context, ev *Event) {
		logging.Debug("[EventBus] %s %s src=%s tile=(%d,%d) prio=%d", ev.ID, ev.Type, ev.Source, ev.Tile.X, ev.Tile.Y, ev.Priority)
	})
	if err != nil {
		return err
	}
	logging.Info("🪵 LoggingListener: подписка на все события активирована")
	return nil
}
