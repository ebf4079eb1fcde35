package app

import (
	"context"
	"image"

	"allow-clicker/internal/domain/entity"
	"allow-clicker/internal/domain/port"
)

// minScanSide: если область сканирования меньше, сканируется весь кадр
const minScanSide = 50

// PipelineConfig параметры одного прохода поиска
type PipelineConfig struct {
	ColorRanges []entity.ColorRange
	SizeFilter  entity.SizeFilter
	Keyword     string
	ScanStartX  float64 // доля ширины, с которой начинается поиск (0: с левого края)
	ScanStartY  float64 // доля высоты, с которой начинается поиск (0: с верхнего края)
}

// Detection результат поиска на одном кадре
type Detection struct {
	Regions   []entity.Region
	Candidate *entity.Candidate
}

// Pipeline связывает детектор и ранжирование: кадр -> области -> лучший кандидат.
type Pipeline struct {
	detector port.RegionDetector
	ranker   *Ranker
	cfg      PipelineConfig
}

func NewPipeline(detector port.RegionDetector, ranker *Ranker, cfg PipelineConfig) *Pipeline {
	return &Pipeline{detector: detector, ranker: ranker, cfg: cfg}
}

// Process ищет кнопку на кадре. Координаты областей всегда в системе всего кадра.
func (p *Pipeline) Process(ctx context.Context, frame entity.Frame) (Detection, error) {
	if frame.Empty() {
		return Detection{}, nil
	}

	regions := p.detect(frame)
	if len(regions) == 0 {
		return Detection{}, nil
	}

	candidate, err := p.ranker.Rank(ctx, frame, regions, p.cfg.Keyword)
	if err != nil {
		return Detection{Regions: regions}, err
	}
	return Detection{Regions: regions, Candidate: candidate}, nil
}

func (p *Pipeline) detect(frame entity.Frame) []entity.Region {
	area := ScanArea(frame.Image.Rect, p.cfg.ScanStartX, p.cfg.ScanStartY)
	if area == frame.Image.Rect {
		return p.detector.Detect(frame, p.cfg.ColorRanges, p.cfg.SizeFilter)
	}

	sub := entity.NewFrame(frame.Crop(area), frame.CapturedAt)
	regions := p.detector.Detect(sub, p.cfg.ColorRanges, p.cfg.SizeFilter)
	for i := range regions {
		regions[i].X += area.Min.X
		regions[i].Y += area.Min.Y
	}
	return regions
}

// ScanArea возвращает часть кадра от заданных долей до правого нижнего угла.
// Слишком маленькая область заменяется всем кадром.
func ScanArea(bounds image.Rectangle, startX, startY float64) image.Rectangle {
	if startX <= 0 && startY <= 0 {
		return bounds
	}
	startX, startY = clamp01(startX), clamp01(startY)

	area := image.Rect(
		bounds.Min.X+int(float64(bounds.Dx())*startX),
		bounds.Min.Y+int(float64(bounds.Dy())*startY),
		bounds.Max.X,
		bounds.Max.Y,
	)
	if area.Dx() < minScanSide || area.Dy() < minScanSide {
		return bounds
	}
	return area
}
