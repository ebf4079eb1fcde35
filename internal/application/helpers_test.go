package app

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"io"
	"log/slog"
	"sync"
	"time"

	"allow-clicker/internal/domain/entity"
)

var (
	discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
	steelBlue     = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	buttonRect    = image.Rect(100, 200, 150, 225) // 50x25, центр (125, 212)
)

func defaultFilter() entity.SizeFilter {
	return entity.SizeFilter{
		MinWidth: 30, MaxWidth: 200,
		MinHeight: 15, MaxHeight: 60,
		MinAspect: 0.8, MaxAspect: 8,
		MinPixels: 100,
	}
}

// frameWith рисует на белом фоне 400x300 синие прямоугольники с белыми штрихами внутри.
func frameWith(rects ...image.Rectangle) entity.Frame {
	img := image.NewRGBA(image.Rect(0, 0, 400, 300))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	for _, r := range rects {
		draw.Draw(img, r, image.NewUniform(steelBlue), image.Point{}, draw.Src)
		inner := r.Inset(4)
		for x := inner.Min.X; x < inner.Max.X; x += 4 {
			draw.Draw(img, image.Rect(x, inner.Min.Y, x+1, inner.Max.Y), image.NewUniform(color.White), image.Point{}, draw.Src)
		}
	}
	return entity.NewFrame(img, time.Unix(1700000000, 0))
}

type fakeRecognizer struct {
	mu     sync.Mutex
	result entity.Recognition
	err    error
	calls  int
	bounds []image.Rectangle
}

func (f *fakeRecognizer) Recognize(ctx context.Context, img image.Image) (entity.Recognition, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.bounds = append(f.bounds, img.Bounds())
	return f.result, f.err
}

func (f *fakeRecognizer) Name() string { return "fake" }

func allowRecognizer() *fakeRecognizer {
	return &fakeRecognizer{result: entity.Recognition{Text: "Allow", Confidence: 0.9, Scored: true}}
}

// textByRegion распознаёт текст по позиции фрагмента
type textByRegion struct {
	texts map[image.Point]string
}

func (f *textByRegion) Recognize(ctx context.Context, img image.Image) (entity.Recognition, error) {
	for p, text := range f.texts {
		if p.In(img.Bounds()) {
			return entity.Recognition{Text: text, Confidence: 0.8, Scored: true}, nil
		}
	}
	return entity.Recognition{}, nil
}

func (f *textByRegion) Name() string { return "by-region" }

type fakeCapturer struct {
	mu     sync.Mutex
	frame  entity.Frame
	errs   []error // ошибки по очереди; nil: вернуть кадр
	calls  int
	onCall func(n int)
}

func (f *fakeCapturer) Capture(ctx context.Context) (entity.Frame, error) {
	f.mu.Lock()
	f.calls++
	n := f.calls
	var err error
	if len(f.errs) > 0 {
		err, f.errs = f.errs[0], f.errs[1:]
	}
	hook := f.onCall
	f.mu.Unlock()

	if hook != nil {
		hook(n)
	}
	if err != nil {
		return entity.Frame{}, err
	}
	return f.frame, nil
}

func (f *fakeCapturer) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeClicker struct {
	mu     sync.Mutex
	points []image.Point
	err    error
}

func (f *fakeClicker) Click(ctx context.Context, p image.Point, frameSize image.Point) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.points = append(f.points, p)
	return nil
}

func (f *fakeClicker) Points() []image.Point {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]image.Point(nil), f.points...)
}
