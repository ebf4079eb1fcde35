package entity

import (
	"image"
	"image/draw"
	"time"
)

// Frame: снимок экрана. Координаты всегда начинаются с (0,0).
type Frame struct {
	Image      *image.RGBA
	CapturedAt time.Time
}

// NewFrame приводит изображение к RGBA с началом координат в (0,0).
func NewFrame(img image.Image, capturedAt time.Time) Frame {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return Frame{Image: rgba, CapturedAt: capturedAt}
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return Frame{Image: rgba, CapturedAt: capturedAt}
}

// Width возвращает ширину кадра
func (f Frame) Width() int {
	if f.Image == nil {
		return 0
	}
	return f.Image.Rect.Dx()
}

// Height возвращает высоту кадра
func (f Frame) Height() int {
	if f.Image == nil {
		return 0
	}
	return f.Image.Rect.Dy()
}

// Empty сообщает, что кадр не содержит пикселей
func (f Frame) Empty() bool {
	return f.Width() == 0 || f.Height() == 0
}

// Contains проверяет, что точка лежит внутри кадра.
func (f Frame) Contains(p image.Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < f.Width() && p.Y < f.Height()
}

// Crop возвращает подизображение без копирования пикселей.
func (f Frame) Crop(r image.Rectangle) image.Image {
	return f.Image.SubImage(r.Intersect(f.Image.Rect))
}
