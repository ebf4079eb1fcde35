package ocr

import (
	"context"
	"image"

	"allow-clicker/internal/domain/entity"
	"allow-clicker/internal/domain/port"
)

// NullRecognizer используется, когда ни один движок OCR не найден.
type NullRecognizer struct{}

func (NullRecognizer) Recognize(ctx context.Context, img image.Image) (entity.Recognition, error) {
	return entity.Recognition{}, port.ErrEngineUnavailable
}

func (NullRecognizer) Name() string { return "none" }

var _ port.TextRecognizer = NullRecognizer{}
