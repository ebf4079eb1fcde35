//go:build windows

package input

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sys/windows"
)

var procGetAsyncKeyState = windows.NewLazySystemDLL("user32.dll").NewProc("GetAsyncKeyState")

// keyListener опрашивает состояние клавиши через GetAsyncKeyState.
type keyListener struct {
	vk     uint16
	name   string
	logger *slog.Logger
}

// NewStopKeyListener создаёт слушатель глобальной клавиши остановки.
func NewStopKeyListener(key string, logger *slog.Logger) (StopKeyListener, error) {
	vk, err := ParseKey(key)
	if err != nil {
		return nil, err
	}
	if err := procGetAsyncKeyState.Find(); err != nil {
		return nil, fmt.Errorf("load GetAsyncKeyState: %w", err)
	}
	return &keyListener{vk: vk, name: key, logger: logger}, nil
}

func (l *keyListener) Listen(ctx context.Context, onPress func()) error {
	// сбрасываем флаг "нажата с прошлого вызова"
	_, _, _ = procGetAsyncKeyState.Call(uintptr(l.vk))

	t := time.NewTicker(stopKeyPoll)
	defer t.Stop()

	l.logger.Info("press the stop key to quit", "key", l.name)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			state, _, _ := procGetAsyncKeyState.Call(uintptr(l.vk))
			if state&0x8000 != 0 {
				l.logger.Info("stop key pressed", "key", l.name)
				onPress()
				return nil
			}
		}
	}
}
