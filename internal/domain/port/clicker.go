package port

import (
	"context"
	"errors"
	"image"
)

// ErrInputInjectionDenied: у процесса нет разрешения управлять мышью
var ErrInputInjectionDenied = errors.New("input injection denied")

// Clicker интерфейс эмуляции клика
type Clicker interface {
	// Click кликает в точку, заданную в координатах кадра размера frameSize
	Click(ctx context.Context, p image.Point, frameSize image.Point) error
}
