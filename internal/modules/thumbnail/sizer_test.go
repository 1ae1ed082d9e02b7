package thumbnail

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSize(t *testing.T) {
	cases := []struct {
		name          string
		width, height float64
		want          Dimensions
	}{
		{"inside every limit", 300, 300, Dimensions{300, 300}},
		{"small", 120, 45, Dimensions{120, 45}},
		{"width and height limits hold but area does not", 600, 400, Dimensions{367, 245}},
		{"width clamp then area clamp", 1200, 800, Dimensions{367, 245}},
		{"width clamp only", 2000, 500, Dimensions{600, 150}},
		{"height clamp only", 500, 2000, Dimensions{100, 400}},
		{"all three compound", 1000, 1000, Dimensions{300, 300}},
		{"area clamp only", 500, 300, Dimensions{387, 232}},
		{"fractional input rounds", 100.4, 50.5, Dimensions{100, 51}},
		{"extreme aspect keeps one pixel", 100000, 10, Dimensions{600, 1}},
		{"sub-pixel side grows to one pixel", 0.3, 20, Dimensions{1, 20}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Size(c.width, c.height)
			require.NoError(t, err)
			require.Equal(t, c.want, got)
		})
	}
}

func TestSizeRejectsInvalidInput(t *testing.T) {
	for _, v := range [][2]float64{
		{0, 10},
		{10, 0},
		{-1, 10},
		{10, -5},
		{math.NaN(), 10},
		{10, math.Inf(1)},
	} {
		_, err := Size(v[0], v[1])
		require.ErrorIs(t, err, ErrInvalidDimension, "%v", v)
	}
}

func TestSizeBounds(t *testing.T) {
	for w := 1.0; w <= 5000; w += 97 {
		for h := 1.0; h <= 5000; h += 89 {
			got, err := Size(w, h)
			require.NoError(t, err)
			require.LessOrEqual(t, got.Width, MaxWidth)
			require.LessOrEqual(t, got.Height, MaxHeight)
			// rounding can push the area over by at most one row plus one column
			require.LessOrEqual(t, got.Width*got.Height, MaxPixels+got.Width+got.Height)
			require.LessOrEqual(t, float64(got.Width), math.Round(w))
			require.LessOrEqual(t, float64(got.Height), math.Max(1, math.Round(h)))
			require.Positive(t, got.Width)
			require.Positive(t, got.Height)
		}
	}
}
