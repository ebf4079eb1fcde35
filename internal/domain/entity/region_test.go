package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegionCenter(t *testing.T) {
	r := Region{X: 10, Y: 20, Width: 8, Height: 6}
	x, y := r.Center()
	require.Equal(t, 14, x)
	require.Equal(t, 23, y)
}

func TestRegionOverlapFraction(t *testing.T) {
	a := Region{X: 0, Y: 0, Width: 10, Height: 10}
	b := Region{X: 5, Y: 0, Width: 10, Height: 10}
	require.InDelta(t, 0.5, a.OverlapFraction(b), 1e-9)

	inner := Region{X: 2, Y: 2, Width: 4, Height: 4}
	require.InDelta(t, 1.0, a.OverlapFraction(inner), 1e-9)

	far := Region{X: 50, Y: 50, Width: 10, Height: 10}
	require.Zero(t, a.OverlapFraction(far))
}

func TestSizeFilterAccepts(t *testing.T) {
	f := SizeFilter{MinWidth: 30, MaxWidth: 200, MinHeight: 15, MaxHeight: 60, MinAspect: 0.8, MaxAspect: 8, MinPixels: 100}

	tests := []struct {
		name string
		r    Region
		want bool
	}{
		{"button", Region{Width: 50, Height: 25, Pixels: 1000}, true},
		{"too narrow", Region{Width: 10, Height: 25, Pixels: 250}, false},
		{"too tall", Region{Width: 50, Height: 61, Pixels: 3000}, false},
		{"too wide", Region{Width: 201, Height: 30, Pixels: 6000}, false},
		{"too flat", Region{Width: 190, Height: 20, Pixels: 3800}, false},
		{"sparse", Region{Width: 50, Height: 25, Pixels: 99}, false},
		{"bounds inclusive", Region{Width: 30, Height: 15, Pixels: 450}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, f.Accepts(tt.r))
		})
	}
}
