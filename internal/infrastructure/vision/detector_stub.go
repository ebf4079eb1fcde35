//go:build !gocv
// +build !gocv

package vision

import (
	"errors"

	"allow-clicker/internal/domain/entity"
)

// GoCVAvailable сообщает, собран ли бинарник с OpenCV.
const GoCVAvailable = false

// GoCVDetector заглушка для сборки без тега gocv
type GoCVDetector struct{}

// NewGoCVDetector возвращает ошибку, если сборка без тега gocv.
func NewGoCVDetector() (*GoCVDetector, error) {
	return nil, errors.New("gocv build tag is not enabled")
}

// Detect ничего не находит без OpenCV.
func (d *GoCVDetector) Detect(frame entity.Frame, ranges []entity.ColorRange, filter entity.SizeFilter) []entity.Region {
	return nil
}
