package app

import (
	"context"
	"image"
	"testing"

	"github.com/stretchr/testify/require"

	"allow-clicker/internal/domain/entity"
	"allow-clicker/internal/infrastructure/vision"
)

func TestScanArea(t *testing.T) {
	bounds := image.Rect(0, 0, 400, 300)

	tests := []struct {
		name   string
		bounds image.Rectangle
		x, y   float64
		want   image.Rectangle
	}{
		{"full frame", bounds, 0, 0, bounds},
		{"bottom right", bounds, 0.55, 0.4, image.Rect(220, 120, 400, 300)},
		{"too small falls back", bounds, 0.9, 0.9, bounds},
		{"ratios clamped", bounds, -1, 0.5, image.Rect(0, 150, 400, 300)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ScanArea(tt.bounds, tt.x, tt.y))
		})
	}
}

func TestPipeline_ScanAreaKeepsFrameCoordinates(t *testing.T) {
	left := image.Rect(20, 200, 70, 225)
	right := image.Rect(300, 200, 350, 225)

	p := NewPipeline(vision.NewColorDetector(), newRanker(allowRecognizer(), true), PipelineConfig{
		ColorRanges: entity.DefaultColorRanges(),
		SizeFilter:  defaultFilter(),
		Keyword:     "allow",
		ScanStartX:  0.55,
		ScanStartY:  0.4,
	})

	det, err := p.Process(context.Background(), frameWith(left, right))
	require.NoError(t, err)
	require.Len(t, det.Regions, 1)
	require.Equal(t, right, det.Regions[0].Rect())
	require.Equal(t, image.Pt(325, 212), det.Candidate.ClickPoint)
}

func TestPipeline_EmptyFrame(t *testing.T) {
	det, err := newPipeline(allowRecognizer(), false).Process(context.Background(), entity.Frame{})
	require.NoError(t, err)
	require.Nil(t, det.Candidate)
	require.Empty(t, det.Regions)
}
