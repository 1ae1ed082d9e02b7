package thumbnail

import (
	"errors"
	"fmt"
	"math"
)

// Server-side thumbnail limits. Sizing to exactly these avoids a second
// downscale on the server while keeping every pixel it would keep.
const (
	MaxWidth  = 600
	MaxHeight = 400
	MaxPixels = 300 * 300
)

var ErrInvalidDimension = errors.New("invalid dimension")

type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Size returns the dimensions a width x height image is scaled down to.
//
// The width, height and area limits are applied in that order, each on the
// result of the previous one, and the result is rounded half away from zero.
// Images already inside every limit are returned unchanged. A side that
// rounds to zero is kept at one pixel, so a side under half a pixel is the
// one case where the result is larger than the input.
func Size(width, height float64) (Dimensions, error) {
	if !validSide(width) || !validSide(height) {
		return Dimensions{}, fmt.Errorf("%w: %vx%v", ErrInvalidDimension, width, height)
	}

	if width > MaxWidth {
		factor := MaxWidth / width
		width *= factor
		height *= factor
	}
	if height > MaxHeight {
		factor := MaxHeight / height
		width *= factor
		height *= factor
	}
	if width*height > MaxPixels {
		factor := math.Sqrt(MaxPixels / (width * height))
		width *= factor
		height *= factor
	}

	return Dimensions{
		Width:  roundSide(width),
		Height: roundSide(height),
	}, nil
}

func validSide(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

func roundSide(v float64) int {
	r := int(math.Round(v))
	if r < 1 {
		return 1
	}
	return r
}
