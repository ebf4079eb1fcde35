package vision

import (
	"allow-clicker/internal/domain/entity"
	"allow-clicker/internal/domain/port"
)

// ColorDetector ищет связные пятна нужного цвета без OpenCV.
// Время работы линейно по числу пикселей кадра.
type ColorDetector struct{}

// NewColorDetector создаёт детектор на чистом Go.
func NewColorDetector() *ColorDetector {
	return &ColorDetector{}
}

// Detect строит маску HSV, группирует 8-связные пятна и фильтрует их ограничивающие прямоугольники.
func (d *ColorDetector) Detect(frame entity.Frame, ranges []entity.ColorRange, filter entity.SizeFilter) []entity.Region {
	if frame.Empty() || len(ranges) == 0 {
		return nil
	}
	w, h := frame.Width(), frame.Height()
	mask := buildMask(frame, ranges)

	var regions []entity.Region
	stack := make([]int, 0, 256)
	for start := range mask {
		if !mask[start] {
			continue
		}
		region := floodFill(mask, w, h, start, &stack)
		if filter.Accepts(region) {
			regions = append(regions, region)
		}
	}
	return regions
}

// buildMask отмечает пиксели, попадающие хотя бы в один диапазон.
func buildMask(frame entity.Frame, ranges []entity.ColorRange) []bool {
	img := frame.Image
	w, h := frame.Width(), frame.Height()
	mask := make([]bool, w*h)

	// последний цвет кэшируется: на экране длинные однотонные участки
	var lastR, lastG, lastB uint8
	lastHit, haveLast := false, false
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for x := 0; x < w; x++ {
			i := x * 4
			r, g, b := row[i], row[i+1], row[i+2]
			if !haveLast || r != lastR || g != lastG || b != lastB {
				lastR, lastG, lastB = r, g, b
				lastHit = entity.AnyContains(ranges, entity.RGBToHSV(r, g, b))
				haveLast = true
			}
			mask[y*w+x] = lastHit
		}
	}
	return mask
}

// floodFill обходит пятно, начиная с start, и стирает его из маски.
func floodFill(mask []bool, w, h, start int, stack *[]int) entity.Region {
	minX, minY := start%w, start/w
	maxX, maxY := minX, minY
	pixels := 0

	s := append((*stack)[:0], start)
	mask[start] = false
	for len(s) > 0 {
		p := s[len(s)-1]
		s = s[:len(s)-1]
		pixels++

		px, py := p%w, p/w
		minX, maxX = min(minX, px), max(maxX, px)
		minY, maxY = min(minY, py), max(maxY, py)

		for dy := -1; dy <= 1; dy++ {
			ny := py + dy
			if ny < 0 || ny >= h {
				continue
			}
			for dx := -1; dx <= 1; dx++ {
				nx := px + dx
				if nx < 0 || nx >= w {
					continue
				}
				n := ny*w + nx
				if mask[n] {
					mask[n] = false
					s = append(s, n)
				}
			}
		}
	}
	*stack = s

	return entity.Region{
		X:      minX,
		Y:      minY,
		Width:  maxX - minX + 1,
		Height: maxY - minY + 1,
		Pixels: pixels,
	}
}

// Проверка реализации интерфейса
var _ port.RegionDetector = (*ColorDetector)(nil)
