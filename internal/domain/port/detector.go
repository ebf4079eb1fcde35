package port

import (
	"allow-clicker/internal/domain/entity"
)

// RegionDetector интерфейс поиска цветных областей
type RegionDetector interface {
	// Detect возвращает области нужного цвета, прошедшие фильтр размеров, в порядке обнаружения
	Detect(frame entity.Frame, ranges []entity.ColorRange, filter entity.SizeFilter) []entity.Region
}
