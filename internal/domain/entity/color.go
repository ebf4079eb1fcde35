package entity

import "math"

// HSV хранит цвет в шкале OpenCV: H в [0,180], S и V в [0,255]
type HSV struct {
	H, S, V uint8
}

// RGBToHSV переводит 8-битный RGB в HSV по формулам OpenCV (COLOR_RGB2HSV).
func RGBToHSV(r, g, b uint8) HSV {
	maxC := max(r, g, b)
	minC := min(r, g, b)
	v := maxC
	diff := float64(maxC) - float64(minC)
	if maxC == 0 || diff == 0 {
		return HSV{H: 0, S: 0, V: v}
	}
	s := math.Round(255 * diff / float64(maxC))

	var h float64
	switch maxC {
	case r:
		h = 60 * (float64(g) - float64(b)) / diff
	case g:
		h = 120 + 60*(float64(b)-float64(r))/diff
	default:
		h = 240 + 60*(float64(r)-float64(g))/diff
	}
	if h < 0 {
		h += 360
	}
	h = math.Round(h / 2)
	if h >= 180 {
		h -= 180
	}
	return HSV{H: uint8(h), S: uint8(s), V: v}
}

// ColorRange задаёт допустимый диапазон HSV (границы включительно)
type ColorRange struct {
	Lower HSV
	Upper HSV
}

// Contains проверяет попадание цвета в диапазон.
func (c ColorRange) Contains(p HSV) bool {
	return p.H >= c.Lower.H && p.H <= c.Upper.H &&
		p.S >= c.Lower.S && p.S <= c.Upper.S &&
		p.V >= c.Lower.V && p.V <= c.Upper.V
}

// AnyContains проверяет попадание хотя бы в один диапазон из набора.
func AnyContains(ranges []ColorRange, p HSV) bool {
	for _, r := range ranges {
		if r.Contains(p) {
			return true
		}
	}
	return false
}

// DefaultColorRanges возвращает стандартные оттенки синего для кнопок.
func DefaultColorRanges() []ColorRange {
	return []ColorRange{
		{Lower: HSV{H: 100, S: 50, V: 50}, Upper: HSV{H: 130, S: 255, V: 255}},
		// более светлые кнопки (например, VS Code)
		{Lower: HSV{H: 90, S: 30, V: 80}, Upper: HSV{H: 140, S: 255, V: 255}},
	}
}
