package app

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"allow-clicker/internal/domain/entity"
	"allow-clicker/internal/domain/port"
)

// ConfirmerConfig параметры проверки текста
type ConfirmerConfig struct {
	Padding       int           // отступ вокруг области при вырезании
	MinConfidence float64       // совпадение с меньшей уверенностью не засчитывается
	Timeout       time.Duration // ограничение на один вызов OCR
}

// TextConfirmer проверяет, что на области написано ключевое слово.
type TextConfirmer struct {
	recognizer port.TextRecognizer
	cfg        ConfirmerConfig
}

func NewTextConfirmer(recognizer port.TextRecognizer, cfg ConfirmerConfig) *TextConfirmer {
	return &TextConfirmer{recognizer: recognizer, cfg: cfg}
}

// Confirm вырезает область с отступом, распознаёт текст и ищет в нём keyword.
// Отсутствие движка OCR не ошибка: возвращается Available=false.
func (c *TextConfirmer) Confirm(ctx context.Context, frame entity.Frame, region entity.Region, keyword string) (entity.Confirmation, error) {
	if c.recognizer == nil {
		return entity.Confirmation{}, nil
	}

	if frame.Empty() {
		return entity.Confirmation{Available: true}, nil
	}

	crop := frame.Crop(PaddedRect(region, c.cfg.Padding, frame.Image.Rect))
	if crop.Bounds().Empty() {
		return entity.Confirmation{Available: true}, nil
	}

	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	rec, err := c.recognizer.Recognize(ctx, crop)
	if errors.Is(err, port.ErrEngineUnavailable) {
		return entity.Confirmation{}, nil
	}
	if err != nil {
		return entity.Confirmation{}, fmt.Errorf("recognize region %v: %w", region.Rect(), err)
	}

	out := entity.Confirmation{Available: true, Text: rec.Text}
	if rec.Scored {
		out.Confidence = clamp01(rec.Confidence)
	}
	if !ContainsKeyword(rec.Text, keyword) {
		return out, nil
	}

	// движок без оценки уверенности: совпадение текста считается надёжным
	if !rec.Scored {
		out.Confidence = 1
	}
	out.Matched = out.Confidence >= c.cfg.MinConfidence
	return out, nil
}

// PaddedRect расширяет область на padding пикселей и обрезает по границам кадра.
func PaddedRect(region entity.Region, padding int, bounds image.Rectangle) image.Rectangle {
	r := region.Rect()
	if padding > 0 {
		r = r.Inset(-padding)
	}
	return r.Intersect(bounds)
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
