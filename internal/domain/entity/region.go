package entity

import "image"

// Region представляет прямоугольную область кадра, похожую на кнопку
type Region struct {
	X      int // координата X левого верхнего угла
	Y      int // координата Y левого верхнего угла
	Width  int // ширина области в пикселях
	Height int // высота области в пикселях
	Pixels int // число пикселей нужного цвета внутри области
}

// Center возвращает координаты центра области
func (r Region) Center() (x, y int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Area возвращает площадь ограничивающего прямоугольника
func (r Region) Area() int {
	return r.Width * r.Height
}

// Rect переводит область в image.Rectangle
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Aspect возвращает отношение ширины к высоте
func (r Region) Aspect() float64 {
	if r.Height == 0 {
		return 0
	}
	return float64(r.Width) / float64(r.Height)
}

// OverlapFraction возвращает долю пересечения относительно меньшей из двух областей.
func (r Region) OverlapFraction(o Region) float64 {
	inter := r.Rect().Intersect(o.Rect())
	if inter.Empty() {
		return 0
	}
	smaller := min(r.Area(), o.Area())
	if smaller <= 0 {
		return 0
	}
	return float64(inter.Dx()*inter.Dy()) / float64(smaller)
}

// SizeFilter задаёт допустимые размеры области
type SizeFilter struct {
	MinWidth  int
	MaxWidth  int
	MinHeight int
	MaxHeight int
	MinAspect float64 // 0 отключает проверку
	MaxAspect float64 // 0 отключает проверку
	MinPixels int     // минимальное число пикселей пятна
}

// Accepts проверяет, проходит ли область фильтр.
func (f SizeFilter) Accepts(r Region) bool {
	if r.Width < f.MinWidth || r.Width > f.MaxWidth {
		return false
	}
	if r.Height < f.MinHeight || r.Height > f.MaxHeight {
		return false
	}
	aspect := r.Aspect()
	if f.MinAspect > 0 && aspect < f.MinAspect {
		return false
	}
	if f.MaxAspect > 0 && aspect > f.MaxAspect {
		return false
	}
	return r.Pixels >= f.MinPixels
}
