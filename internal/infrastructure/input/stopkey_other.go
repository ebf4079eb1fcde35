//go:build !windows

package input

import (
	"context"
	"log/slog"
	"sync"

	hook "github.com/robotn/gohook"
)

// keyListener ловит клавишу остановки глобальным хуком клавиатуры.
// На macOS хуку нужен тот же доступ Accessibility, что и кликам.
type keyListener struct {
	name   string
	logger *slog.Logger
}

// NewStopKeyListener создаёт слушатель глобальной клавиши остановки.
func NewStopKeyListener(key string, logger *slog.Logger) (StopKeyListener, error) {
	if _, err := ParseKey(key); err != nil {
		return nil, err
	}
	return &keyListener{name: KeyName(key), logger: logger}, nil
}

func (l *keyListener) Listen(ctx context.Context, onPress func()) error {
	pressed := make(chan struct{})
	var once sync.Once
	hook.Register(hook.KeyDown, []string{l.name}, func(hook.Event) {
		once.Do(func() {
			l.logger.Info("stop key pressed", "key", l.name)
			onPress()
			close(pressed)
		})
	})

	events := hook.Start()
	defer hook.End()
	processed := hook.Process(events)

	l.logger.Info("press the stop key to quit", "key", l.name)
	select {
	case <-ctx.Done():
	case <-pressed:
	case <-processed:
	}
	return nil
}
