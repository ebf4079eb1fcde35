package screen

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/kbinani/screenshot"

	"allow-clicker/internal/domain/entity"
	"allow-clicker/internal/domain/port"
)

// Capturer снимает экран через kbinani/screenshot.
type Capturer struct {
	display int
	now     func() time.Time
}

// NewCapturer создаёт источник кадров для дисплея с номером display (0: основной).
func NewCapturer(display int) *Capturer {
	return &Capturer{display: display, now: time.Now}
}

// Capture снимает весь дисплей. Отсутствие дисплея или доступа: ErrCaptureUnavailable.
func (c *Capturer) Capture(ctx context.Context) (entity.Frame, error) {
	if err := ctx.Err(); err != nil {
		return entity.Frame{}, err
	}

	bounds, err := c.bounds()
	if err != nil {
		return entity.Frame{}, err
	}

	img, err := screenshot.CaptureRect(bounds)
	if err != nil {
		return entity.Frame{}, fmt.Errorf("capture display %d: %w", c.display, err)
	}
	return entity.NewFrame(img, c.now()), nil
}

// Probe снимает небольшой участок экрана, чтобы проверить разрешение на запись экрана.
func (c *Capturer) Probe() (image.Rectangle, error) {
	bounds, err := c.bounds()
	if err != nil {
		return image.Rectangle{}, err
	}

	probe := image.Rect(bounds.Min.X, bounds.Min.Y, bounds.Min.X+100, bounds.Min.Y+100).Intersect(bounds)
	if _, err := screenshot.CaptureRect(probe); err != nil {
		return bounds, fmt.Errorf("%w: %v", port.ErrCaptureUnavailable, err)
	}
	return bounds, nil
}

func (c *Capturer) bounds() (image.Rectangle, error) {
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return image.Rectangle{}, fmt.Errorf("%w: no active displays", port.ErrCaptureUnavailable)
	}
	if c.display < 0 || c.display >= n {
		return image.Rectangle{}, fmt.Errorf("%w: display %d not found (%d active)", port.ErrCaptureUnavailable, c.display, n)
	}

	bounds := screenshot.GetDisplayBounds(c.display)
	if bounds.Empty() {
		return image.Rectangle{}, fmt.Errorf("%w: display %d has empty bounds", port.ErrCaptureUnavailable, c.display)
	}
	return bounds, nil
}

var _ port.ScreenCapturer = (*Capturer)(nil)
