package input

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/go-vgo/robotgo"

	"allow-clicker/internal/domain/port"
)

// pointerTolerance допустимое отклонение курсора после перемещения
const pointerTolerance = 2

// RobotClicker кликает левой кнопкой мыши через robotgo.
type RobotClicker struct {
	settle time.Duration
	logger *slog.Logger
}

func NewRobotClicker(logger *slog.Logger) *RobotClicker {
	return &RobotClicker{settle: 100 * time.Millisecond, logger: logger}
}

// Click переводит точку кадра в координаты экрана, наводит курсор и кликает.
// Если курсор не сдвинулся, у процесса нет права управлять вводом.
func (c *RobotClicker) Click(ctx context.Context, p image.Point, frameSize image.Point) error {
	w, h := robotgo.GetScreenSize()
	target := ScalePoint(p, frameSize, image.Pt(w, h))

	robotgo.Move(target.X, target.Y)
	if err := c.verifyPointer(target); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(c.settle):
	}

	robotgo.Click("left", false)
	c.logger.Debug("mouse clicked", "frame_x", p.X, "frame_y", p.Y, "screen_x", target.X, "screen_y", target.Y)
	return nil
}

// Probe сдвигает курсор на пиксель и возвращает обратно, проверяя доступ к вводу.
func (c *RobotClicker) Probe() error {
	x, y := robotgo.Location()
	target := image.Pt(x+1, y)

	robotgo.Move(target.X, target.Y)
	err := c.verifyPointer(target)
	robotgo.Move(x, y)
	return err
}

func (c *RobotClicker) verifyPointer(target image.Point) error {
	x, y := robotgo.Location()
	if abs(x-target.X) > pointerTolerance || abs(y-target.Y) > pointerTolerance {
		return fmt.Errorf("%w: pointer at (%d,%d), expected (%d,%d)", port.ErrInputInjectionDenied, x, y, target.X, target.Y)
	}
	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

var _ port.Clicker = (*RobotClicker)(nil)
