package vision

import (
	"image"
	"image/color"
	"image/draw"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"allow-clicker/internal/domain/entity"
)

var steelBlue = color.RGBA{R: 70, G: 130, B: 180, A: 255}

func defaultFilter() entity.SizeFilter {
	return entity.SizeFilter{
		MinWidth: 30, MaxWidth: 200,
		MinHeight: 15, MaxHeight: 60,
		MinAspect: 0.8, MaxAspect: 8,
		MinPixels: 100,
	}
}

func newCanvas(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	return img
}

func fill(img *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

// drawButton рисует синюю кнопку с белыми "буквами" внутри.
func drawButton(img *image.RGBA, r image.Rectangle) {
	fill(img, r, steelBlue)
	inner := r.Inset(6)
	for x := inner.Min.X; x < inner.Max.X; x += 4 {
		fill(img, image.Rect(x, inner.Min.Y, x+2, inner.Max.Y), color.White)
	}
}

func TestColorDetector_NoBluePixels(t *testing.T) {
	img := newCanvas(200, 150)
	fill(img, image.Rect(20, 20, 80, 50), color.RGBA{R: 200, G: 40, B: 40, A: 255})

	regions := NewColorDetector().Detect(entity.NewFrame(img, time.Now()), entity.DefaultColorRanges(), defaultFilter())
	require.Empty(t, regions)
}

func TestColorDetector_EmptyFrame(t *testing.T) {
	d := NewColorDetector()
	require.Empty(t, d.Detect(entity.Frame{}, entity.DefaultColorRanges(), defaultFilter()))

	img := newCanvas(10, 10)
	require.Empty(t, d.Detect(entity.NewFrame(img, time.Now()), nil, defaultFilter()))
}

func TestColorDetector_SingleButton(t *testing.T) {
	img := newCanvas(400, 300)
	drawButton(img, image.Rect(100, 200, 150, 225))

	regions := NewColorDetector().Detect(entity.NewFrame(img, time.Now()), entity.DefaultColorRanges(), defaultFilter())
	require.Len(t, regions, 1)

	r := regions[0]
	require.Equal(t, 100, r.X)
	require.Equal(t, 200, r.Y)
	require.Equal(t, 50, r.Width)
	require.Equal(t, 25, r.Height)
	require.Less(t, r.Pixels, 50*25)
	require.GreaterOrEqual(t, r.Pixels, 100)

	x, y := r.Center()
	require.Equal(t, 125, x)
	require.Equal(t, 212, y)
}

func TestColorDetector_SizeFilterExcludesSmallBlobs(t *testing.T) {
	img := newCanvas(300, 200)
	fill(img, image.Rect(10, 10, 20, 20), steelBlue)     // слишком маленький
	fill(img, image.Rect(50, 50, 290, 70), steelBlue)    // слишком широкий
	fill(img, image.Rect(100, 100, 140, 195), steelBlue) // слишком высокий

	regions := NewColorDetector().Detect(entity.NewFrame(img, time.Now()), entity.DefaultColorRanges(), defaultFilter())
	require.Empty(t, regions)
}

func TestColorDetector_TwoButtonsInDiscoveryOrder(t *testing.T) {
	img := newCanvas(400, 300)
	drawButton(img, image.Rect(200, 40, 260, 65))
	drawButton(img, image.Rect(20, 150, 100, 180))

	regions := NewColorDetector().Detect(entity.NewFrame(img, time.Now()), entity.DefaultColorRanges(), defaultFilter())
	require.Len(t, regions, 2)
	require.Equal(t, 200, regions[0].X)
	require.Equal(t, 20, regions[1].X)

	f := defaultFilter()
	for _, r := range regions {
		require.True(t, f.Accepts(r))
	}
}

func TestColorDetector_DiagonalPixelsAreConnected(t *testing.T) {
	img := newCanvas(120, 80)
	fill(img, image.Rect(10, 10, 50, 30), steelBlue)
	fill(img, image.Rect(50, 30, 90, 50), steelBlue)

	f := defaultFilter()
	f.MaxHeight = 60
	regions := NewColorDetector().Detect(entity.NewFrame(img, time.Now()), entity.DefaultColorRanges(), f)
	require.Len(t, regions, 1)
	require.Equal(t, image.Rect(10, 10, 90, 50), regions[0].Rect())
	require.Equal(t, 40*20*2, regions[0].Pixels)
}

func TestColorDetector_Idempotent(t *testing.T) {
	img := newCanvas(400, 300)
	drawButton(img, image.Rect(100, 200, 150, 225))
	drawButton(img, image.Rect(250, 100, 330, 130))
	frame := entity.NewFrame(img, time.Now())

	d := NewColorDetector()
	first := d.Detect(frame, entity.DefaultColorRanges(), defaultFilter())
	second := d.Detect(frame, entity.DefaultColorRanges(), defaultFilter())
	require.Equal(t, first, second)
	require.Len(t, first, 2)
}

func TestColorDetector_NonZeroOrigin(t *testing.T) {
	img := newCanvas(400, 300)
	drawButton(img, image.Rect(100, 200, 150, 225))
	sub := img.SubImage(image.Rect(50, 100, 400, 300))

	regions := NewColorDetector().Detect(entity.NewFrame(sub, time.Now()), entity.DefaultColorRanges(), defaultFilter())
	require.Len(t, regions, 1)
	require.Equal(t, 50, regions[0].X)
	require.Equal(t, 100, regions[0].Y)
}
