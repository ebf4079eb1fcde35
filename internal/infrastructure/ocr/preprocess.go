// Package ocr содержит реализации распознавания текста на фрагментах экрана.
package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

// UpscaleFactor во сколько раз увеличивается фрагмент перед распознаванием
const UpscaleFactor = 2

// Preprocess переводит фрагмент в оттенки серого, увеличивает и повышает контраст.
// Мелкий текст на кнопках без увеличения распознаётся плохо.
func Preprocess(img image.Image) *image.NRGBA {
	b := img.Bounds()
	gray := imaging.Grayscale(img)
	scaled := imaging.Resize(gray, b.Dx()*UpscaleFactor, b.Dy()*UpscaleFactor, imaging.Lanczos)
	return imaging.AdjustContrast(scaled, 20)
}

// encodePNG кодирует подготовленный фрагмент для передачи движку.
func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
