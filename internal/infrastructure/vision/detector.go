//go:build gocv
// +build gocv

package vision

import (
	"image"

	"gocv.io/x/gocv"

	"allow-clicker/internal/domain/entity"
	"allow-clicker/internal/domain/port"
)

// GoCVAvailable сообщает, собран ли бинарник с OpenCV.
const GoCVAvailable = true

// GoCVDetector ищет синие области средствами OpenCV.
type GoCVDetector struct {
	MorphKernel image.Point // размер ядра для закрытия/открытия маски
}

// NewGoCVDetector создаёт детектор с ядром морфологии 2x2.
func NewGoCVDetector() (*GoCVDetector, error) {
	return &GoCVDetector{MorphKernel: image.Pt(2, 2)}, nil
}

// Detect строит HSV-маску, чистит её морфологией и возвращает внешние контуры, прошедшие фильтр.
func (d *GoCVDetector) Detect(frame entity.Frame, ranges []entity.ColorRange, filter entity.SizeFilter) []entity.Region {
	if frame.Empty() || len(ranges) == 0 {
		return nil
	}

	mat, err := gocv.ImageToMatRGB(frame.Image)
	if err != nil {
		return nil
	}
	defer mat.Close()

	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(mat, &hsv, gocv.ColorBGRToHSV)

	mask := inRangeAny(hsv, ranges)
	defer mask.Close()

	// Убираем мелкий шум и закрываем разрывы по краям кнопки.
	kernel := gocv.GetStructuringElement(gocv.MorphRect, d.MorphKernel)
	defer kernel.Close()

	closed := gocv.NewMat()
	defer closed.Close()
	gocv.MorphologyEx(mask, &closed, gocv.MorphClose, kernel)

	opened := gocv.NewMat()
	defer opened.Close()
	gocv.MorphologyEx(closed, &opened, gocv.MorphOpen, kernel)

	contours := gocv.FindContours(opened, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	regions := make([]entity.Region, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		rect := gocv.BoundingRect(contours.At(i))
		if rect.Dx() == 0 || rect.Dy() == 0 {
			continue
		}

		roi := opened.Region(rect)
		pixels := gocv.CountNonZero(roi)
		roi.Close()

		region := entity.Region{
			X:      rect.Min.X,
			Y:      rect.Min.Y,
			Width:  rect.Dx(),
			Height: rect.Dy(),
			Pixels: pixels,
		}
		if filter.Accepts(region) {
			regions = append(regions, region)
		}
	}
	return regions
}

// inRangeAny объединяет маски всех диапазонов через OR.
func inRangeAny(hsv gocv.Mat, ranges []entity.ColorRange) gocv.Mat {
	mask := gocv.NewMat()
	for i, r := range ranges {
		lower := gocv.NewScalar(float64(r.Lower.H), float64(r.Lower.S), float64(r.Lower.V), 0)
		upper := gocv.NewScalar(float64(r.Upper.H), float64(r.Upper.S), float64(r.Upper.V), 0)
		if i == 0 {
			gocv.InRangeWithScalar(hsv, lower, upper, &mask)
			continue
		}

		part := gocv.NewMat()
		gocv.InRangeWithScalar(hsv, lower, upper, &part)
		merged := gocv.NewMat()
		gocv.BitwiseOr(mask, part, &merged)
		part.Close()
		mask.Close()
		mask = merged
	}
	return mask
}

var _ port.RegionDetector = (*GoCVDetector)(nil)
