package ocr

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"os/exec"
	"strconv"
	"strings"

	"allow-clicker/internal/domain/entity"
	"allow-clicker/internal/domain/port"
)

// TesseractRecognizer вызывает tesseract из командной строки и разбирает вывод в формате TSV.
type TesseractRecognizer struct {
	path string
	args []string
}

// NewTesseractRecognizer находит бинарник tesseract. Если его нет, возвращает ErrEngineUnavailable.
func NewTesseractRecognizer(path string) (*TesseractRecognizer, error) {
	if path == "" {
		path = "tesseract"
	}
	resolved, err := exec.LookPath(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", port.ErrEngineUnavailable, path, err)
	}
	return &TesseractRecognizer{
		path: resolved,
		// --psm 7: одна строка текста, как на кнопке
		args: []string{"stdin", "stdout", "--oem", "3", "--psm", "7", "-l", "eng", "tsv"},
	}, nil
}

func (t *TesseractRecognizer) Name() string { return "tesseract" }

// Recognize передаёт фрагмент через stdin и считает среднюю уверенность по словам.
func (t *TesseractRecognizer) Recognize(ctx context.Context, img image.Image) (entity.Recognition, error) {
	data, err := encodePNG(Preprocess(img))
	if err != nil {
		return entity.Recognition{}, err
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, t.path, t.args...)
	cmd.Stdin = bytes.NewReader(data)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return entity.Recognition{}, fmt.Errorf("%w: %v", port.ErrEngineUnavailable, err)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return entity.Recognition{}, fmt.Errorf("tesseract: %w", ctxErr)
		}
		return entity.Recognition{}, fmt.Errorf("tesseract: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	return ParseTSV(stdout.Bytes())
}

// ParseTSV собирает слова из вывода tesseract tsv. Уровень 5: слово; conf -1 у пустых блоков.
func ParseTSV(data []byte) (entity.Recognition, error) {
	var (
		words []string
		total float64
		rated int
	)

	sc := bufio.NewScanner(bytes.NewReader(data))
	header := true
	for sc.Scan() {
		if header {
			header = false
			continue
		}
		cols := strings.Split(sc.Text(), "\t")
		if len(cols) < 12 || cols[0] != "5" {
			continue
		}

		text := strings.TrimSpace(cols[11])
		if text == "" {
			continue
		}
		words = append(words, text)

		conf, err := strconv.ParseFloat(cols[10], 64)
		if err != nil || conf < 0 {
			continue
		}
		total += conf
		rated++
	}
	if err := sc.Err(); err != nil {
		return entity.Recognition{}, fmt.Errorf("read tsv: %w", err)
	}

	rec := entity.Recognition{Text: strings.Join(words, " ")}
	if rated > 0 {
		rec.Confidence = total / float64(rated) / 100
		rec.Scored = true
	}
	return rec, nil
}

var _ port.TextRecognizer = (*TesseractRecognizer)(nil)
