package ocr

import (
	"fmt"
	"log/slog"

	"allow-clicker/internal/domain/port"
)

// Имена движков в конфигурации
const (
	EngineAuto      = "auto"
	EngineTesseract = "tesseract"
	EngineGosseract = "gosseract"
	EngineNone      = "none"
)

// Select выбирает движок по имени. В режиме auto пробуются gosseract, затем tesseract;
// если ничего не найдено, возвращается NullRecognizer. Отсутствие движка не ошибка.
func Select(engine, tesseractPath string, logger *slog.Logger) (port.TextRecognizer, error) {
	switch engine {
	case EngineNone:
		return NullRecognizer{}, nil

	case EngineGosseract:
		g, err := NewGosseractRecognizer()
		if err != nil {
			return unavailable(logger, engine, err), nil
		}
		return g, nil

	case EngineTesseract:
		t, err := NewTesseractRecognizer(tesseractPath)
		if err != nil {
			return unavailable(logger, engine, err), nil
		}
		return t, nil

	case EngineAuto, "":
		if GosseractAvailable {
			if g, err := NewGosseractRecognizer(); err == nil {
				return g, nil
			}
		}
		t, err := NewTesseractRecognizer(tesseractPath)
		if err != nil {
			return unavailable(logger, EngineAuto, err), nil
		}
		return t, nil

	default:
		return nil, fmt.Errorf("unknown ocr engine %q", engine)
	}
}

func unavailable(logger *slog.Logger, engine string, err error) port.TextRecognizer {
	logger.Warn("ocr engine unavailable, falling back to color-only detection",
		"engine", engine, "error", err)
	return NullRecognizer{}
}
