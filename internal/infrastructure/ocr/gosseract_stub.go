//go:build !gosseract
// +build !gosseract

package ocr

import (
	"context"
	"fmt"
	"image"

	"allow-clicker/internal/domain/entity"
	"allow-clicker/internal/domain/port"
)

// GosseractAvailable сообщает, собран ли бинарник с libtesseract.
const GosseractAvailable = false

// GosseractRecognizer заглушка для сборки без тега gosseract
type GosseractRecognizer struct{}

func NewGosseractRecognizer() (*GosseractRecognizer, error) {
	return nil, fmt.Errorf("%w: built without gosseract tag", port.ErrEngineUnavailable)
}

func (g *GosseractRecognizer) Name() string { return "gosseract" }

func (g *GosseractRecognizer) Recognize(ctx context.Context, img image.Image) (entity.Recognition, error) {
	return entity.Recognition{}, port.ErrEngineUnavailable
}

func (g *GosseractRecognizer) Close() error { return nil }
