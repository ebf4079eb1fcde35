package port

import (
	"context"
	"errors"

	"allow-clicker/internal/domain/entity"
)

// ErrCaptureUnavailable: нет разрешения на запись экрана или не подключён дисплей
var ErrCaptureUnavailable = errors.New("screen capture unavailable")

// ScreenCapturer интерфейс источника кадров
type ScreenCapturer interface {
	// Capture делает снимок всего экрана
	Capture(ctx context.Context) (entity.Frame, error)
}
