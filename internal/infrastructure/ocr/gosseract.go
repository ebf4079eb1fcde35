//go:build gosseract
// +build gosseract

package ocr

import (
	"context"
	"fmt"
	"image"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"

	"allow-clicker/internal/domain/entity"
	"allow-clicker/internal/domain/port"
)

// GosseractAvailable сообщает, собран ли бинарник с libtesseract.
const GosseractAvailable = true

// GosseractRecognizer распознаёт текст через libtesseract без запуска процесса.
// Клиент tesseract не потокобезопасен, поэтому вызовы сериализуются.
type GosseractRecognizer struct {
	mu     sync.Mutex
	client *gosseract.Client
}

func NewGosseractRecognizer() (*GosseractRecognizer, error) {
	client := gosseract.NewClient()
	if err := client.SetLanguage("eng"); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: %v", port.ErrEngineUnavailable, err)
	}
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_LINE); err != nil {
		client.Close()
		return nil, fmt.Errorf("set page seg mode: %w", err)
	}
	return &GosseractRecognizer{client: client}, nil
}

func (g *GosseractRecognizer) Name() string { return "gosseract" }

func (g *GosseractRecognizer) Recognize(ctx context.Context, img image.Image) (entity.Recognition, error) {
	data, err := encodePNG(Preprocess(img))
	if err != nil {
		return entity.Recognition{}, err
	}
	if err := ctx.Err(); err != nil {
		return entity.Recognition{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.client.SetImageFromBytes(data); err != nil {
		return entity.Recognition{}, fmt.Errorf("gosseract set image: %w", err)
	}
	boxes, err := g.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return entity.Recognition{}, fmt.Errorf("gosseract recognize: %w", err)
	}

	var (
		words []string
		total float64
	)
	for _, b := range boxes {
		w := strings.TrimSpace(b.Word)
		if w == "" {
			continue
		}
		words = append(words, w)
		total += b.Confidence
	}

	rec := entity.Recognition{Text: strings.Join(words, " ")}
	if len(words) > 0 {
		rec.Confidence = total / float64(len(words)) / 100
		rec.Scored = true
	}
	return rec, nil
}

// Close освобождает клиент libtesseract
func (g *GosseractRecognizer) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.client.Close()
}

var _ port.TextRecognizer = (*GosseractRecognizer)(nil)
