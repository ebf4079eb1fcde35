package port

import (
	"context"
	"errors"
	"image"

	"allow-clicker/internal/domain/entity"
)

// ErrEngineUnavailable: движок OCR не установлен. Не считается фатальной ошибкой.
var ErrEngineUnavailable = errors.New("ocr engine unavailable")

// TextRecognizer интерфейс распознавания текста
type TextRecognizer interface {
	// Recognize извлекает текст из фрагмента изображения
	Recognize(ctx context.Context, img image.Image) (entity.Recognition, error)

	// Name возвращает имя движка для логов
	Name() string
}
