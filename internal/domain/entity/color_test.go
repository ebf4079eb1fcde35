package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRGBToHSV(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		want    HSV
	}{
		{"pure blue", 0, 0, 255, HSV{H: 120, S: 255, V: 255}},
		{"steel blue", 70, 130, 180, HSV{H: 104, S: 156, V: 180}},
		{"white", 255, 255, 255, HSV{H: 0, S: 0, V: 255}},
		{"black", 0, 0, 0, HSV{}},
		{"red", 255, 0, 0, HSV{H: 0, S: 255, V: 255}},
		{"green", 0, 255, 0, HSV{H: 60, S: 255, V: 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, RGBToHSV(tt.r, tt.g, tt.b))
		})
	}
}

func TestDefaultColorRangesMatchBlues(t *testing.T) {
	ranges := DefaultColorRanges()

	blues := [][3]uint8{{50, 100, 200}, {70, 130, 180}, {100, 149, 237}, {0, 122, 204}}
	for _, c := range blues {
		require.True(t, AnyContains(ranges, RGBToHSV(c[0], c[1], c[2])), "expected blue: %v", c)
	}

	others := [][3]uint8{{200, 50, 50}, {50, 200, 50}, {128, 128, 128}, {255, 255, 255}}
	for _, c := range others {
		require.False(t, AnyContains(ranges, RGBToHSV(c[0], c[1], c[2])), "unexpected blue: %v", c)
	}
}
