package input

import (
	"context"
	"image"
	"log/slog"
	"sync"

	"allow-clicker/internal/domain/port"
)

// DryRunClicker ничего не нажимает, только логирует и запоминает точки.
type DryRunClicker struct {
	mu     sync.Mutex
	points []image.Point
	logger *slog.Logger
}

func NewDryRunClicker(logger *slog.Logger) *DryRunClicker {
	return &DryRunClicker{logger: logger}
}

func (c *DryRunClicker) Click(ctx context.Context, p image.Point, frameSize image.Point) error {
	c.mu.Lock()
	c.points = append(c.points, p)
	c.mu.Unlock()

	c.logger.Info("test mode: click suppressed", "x", p.X, "y", p.Y)
	return nil
}

// Points возвращает точки, в которые был бы выполнен клик
func (c *DryRunClicker) Points() []image.Point {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]image.Point(nil), c.points...)
}

var _ port.Clicker = (*DryRunClicker)(nil)
