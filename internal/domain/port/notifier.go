package port

import (
	"context"

	"allow-clicker/internal/domain/entity"
)

// ClickNotifier интерфейс уведомления о выполненных кликах
type ClickNotifier interface {
	// Notify сообщает о событии; ошибки доставки не влияют на цикл
	Notify(ctx context.Context, event entity.CycleEvent) error
}
