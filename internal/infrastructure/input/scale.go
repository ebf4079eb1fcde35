// Package input управляет мышью и клавиатурой.
package input

import "image"

// ScalePoint переводит точку из координат кадра в логические координаты экрана.
// На Retina-дисплеях снимок в два раза больше логического разрешения.
func ScalePoint(p, frameSize, screenSize image.Point) image.Point {
	if frameSize.X <= 0 || frameSize.Y <= 0 || screenSize.X <= 0 || screenSize.Y <= 0 {
		return p
	}
	return image.Pt(
		p.X*screenSize.X/frameSize.X,
		p.Y*screenSize.Y/frameSize.Y,
	)
}
