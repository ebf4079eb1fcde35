package port

import (
	"context"

	"allow-clicker/internal/domain/entity"
)

// EventLog интерфейс журнала проходов цикла
type EventLog interface {
	// Record сохраняет событие прохода
	Record(ctx context.Context, event entity.CycleEvent) error

	// Recent возвращает последние события, самые новые в конце
	Recent(ctx context.Context, limit int) ([]entity.CycleEvent, error)

	// Stats возвращает агрегированную статистику
	Stats(ctx context.Context) (entity.RunStats, error)
}
