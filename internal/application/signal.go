package app

import (
	"context"
	"os"
)

// StopOnSignal переводит первый сигнал в мягкую остановку: текущий проход доводится до клика,
// новый не начинается. Второй сигнал вызывает abort и прерывает проход.
// Возвращается при отмене ctx.
func (m *Monitor) StopOnSignal(ctx context.Context, signals <-chan os.Signal, abort context.CancelFunc) {
	select {
	case <-ctx.Done():
		return
	case sig := <-signals:
		m.logger.Info("stop requested, finishing current cycle", "signal", sig.String())
		m.Stop()
	}

	select {
	case <-ctx.Done():
	case sig := <-signals:
		m.logger.Warn("second signal, aborting", "signal", sig.String())
		abort()
	}
}
