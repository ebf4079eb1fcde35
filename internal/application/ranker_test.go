package app

import (
	"context"
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"allow-clicker/internal/domain/entity"
	"allow-clicker/internal/domain/port"
	"allow-clicker/internal/infrastructure/vision"
)

func newRanker(rec port.TextRecognizer, requireText bool) *Ranker {
	return NewRanker(newConfirmer(rec), RankerConfig{
		RequireTextMatch: requireText,
		OverlapThreshold: 0.5,
		ColorOnlyMinY:    100,
	}, discardLogger)
}

func newPipeline(rec port.TextRecognizer, requireText bool) *Pipeline {
	return NewPipeline(vision.NewColorDetector(), newRanker(rec, requireText), PipelineConfig{
		ColorRanges: entity.DefaultColorRanges(),
		SizeFilter:  defaultFilter(),
		Keyword:     "allow",
	})
}

func TestRankerPicksBlueButtonWithKeyword(t *testing.T) {
	det, err := newPipeline(allowRecognizer(), true).Process(context.Background(), frameWith(buttonRect))
	require.NoError(t, err)
	require.Len(t, det.Regions, 1)
	require.NotNil(t, det.Candidate)
	require.True(t, det.Candidate.Matched)

	d := NewGate(2*time.Second).Evaluate(det.Candidate, time.Now())
	require.True(t, d.Click)
	require.Equal(t, image.Pt(125, 212), d.Point)
}

func TestRankerIgnoresTinyBlueRegion(t *testing.T) {
	rec := allowRecognizer()
	det, err := newPipeline(rec, false).Process(context.Background(), frameWith(image.Rect(100, 200, 110, 210)))
	require.NoError(t, err)
	require.Empty(t, det.Regions)
	require.Nil(t, det.Candidate)
	require.Zero(t, rec.calls)
}

func TestRankerFallsBackToColorWhenEngineMissing(t *testing.T) {
	rec := &fakeRecognizer{err: port.ErrEngineUnavailable}

	det, err := newPipeline(rec, false).Process(context.Background(), frameWith(buttonRect))
	require.NoError(t, err)
	require.NotNil(t, det.Candidate)
	require.False(t, det.Candidate.Matched)
	require.Less(t, det.Candidate.Score, 1.0)
	require.Equal(t, image.Pt(125, 212), det.Candidate.ClickPoint)

	det, err = newPipeline(rec, true).Process(context.Background(), frameWith(buttonRect))
	require.NoError(t, err)
	require.Nil(t, det.Candidate)
}

func TestRanker_MatchedBeatsColorOnly(t *testing.T) {
	deny := image.Rect(200, 150, 280, 180)
	allow := image.Rect(100, 200, 150, 225)
	rec := &textByRegion{texts: map[image.Point]string{
		image.Pt(240, 165): "Deny",
		image.Pt(125, 212): "Allow",
	}}
	frame := frameWith(deny, allow)

	best, err := newRanker(rec, false).Rank(context.Background(), frame, []entity.Region{regionOf(deny), regionOf(allow)}, "allow")
	require.NoError(t, err)
	require.NotNil(t, best)
	require.True(t, best.Matched)
	require.Equal(t, image.Pt(125, 212), best.ClickPoint)
}

func TestRanker_DedupOverlappingRegions(t *testing.T) {
	a := entity.Region{X: 100, Y: 200, Width: 50, Height: 25, Pixels: 1000}
	b := entity.Region{X: 105, Y: 202, Width: 50, Height: 25, Pixels: 1000}
	far := entity.Region{X: 250, Y: 200, Width: 60, Height: 25, Pixels: 1200}
	require.Greater(t, a.OverlapFraction(b), 0.5)

	got, err := newRanker(allowRecognizer(), false).Candidates(context.Background(), frameWith(), []entity.Region{a, b, far}, "allow")
	require.NoError(t, err)
	require.Len(t, got, 2)

	for i := range got {
		for j := i + 1; j < len(got); j++ {
			require.LessOrEqual(t, got[i].Region.OverlapFraction(got[j].Region), 0.5)
		}
	}
}

func TestRanker_TieBreakPrefersLargerThenEarlier(t *testing.T) {
	small := entity.Region{X: 10, Y: 150, Width: 40, Height: 20, Pixels: 800}
	large := entity.Region{X: 200, Y: 150, Width: 60, Height: 25, Pixels: 1500}
	twin := entity.Region{X: 300, Y: 150, Width: 60, Height: 25, Pixels: 1500}

	best, err := newRanker(allowRecognizer(), true).Rank(context.Background(), frameWith(), []entity.Region{small, large, twin}, "allow")
	require.NoError(t, err)
	require.Equal(t, large, best.Region)
}

func TestRanker_ColorOnlyHeuristics(t *testing.T) {
	rec := &fakeRecognizer{err: port.ErrEngineUnavailable}
	r := newRanker(rec, false)
	frame := frameWith()

	tests := []struct {
		name   string
		region entity.Region
		ok     bool
	}{
		{"button shaped", entity.Region{X: 50, Y: 150, Width: 60, Height: 25}, true},
		{"menu bar", entity.Region{X: 50, Y: 20, Width: 60, Height: 25}, false},
		{"square in the middle", entity.Region{X: 100, Y: 120, Width: 30, Height: 30}, false},
		{"square bottom right", entity.Region{X: 300, Y: 220, Width: 30, Height: 30}, true},
		{"top edge on the line", entity.Region{X: 50, Y: 100, Width: 60, Height: 25}, false},
		{"top above line, centre below", entity.Region{X: 50, Y: 95, Width: 60, Height: 20}, false},
		{"wide banner", entity.Region{X: 50, Y: 150, Width: 180, Height: 50}, false},
		{"too tall", entity.Region{X: 50, Y: 150, Width: 120, Height: 55}, false},
		{"largest medium button", entity.Region{X: 50, Y: 150, Width: 150, Height: 50}, true},
		{"too narrow bottom right", entity.Region{X: 300, Y: 220, Width: 25, Height: 20}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Candidates(context.Background(), frame, []entity.Region{tt.region}, "allow")
			require.NoError(t, err)
			if tt.ok {
				require.Len(t, got, 1)
				require.Less(t, got[0].Score, 1.0)
			} else {
				require.Empty(t, got)
			}
		})
	}
}

func TestRanker_NoRegions(t *testing.T) {
	best, err := newRanker(allowRecognizer(), false).Rank(context.Background(), frameWith(), nil, "allow")
	require.NoError(t, err)
	require.Nil(t, best)
}
