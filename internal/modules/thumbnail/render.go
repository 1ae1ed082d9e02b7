package thumbnail

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/reusedev/sbi-hub/internal/consts"
	_ "golang.org/x/image/webp"
)

// DefaultMaxSourcePixels bounds the decoded size of a source image.
const DefaultMaxSourcePixels = 50_000_000

var ErrTooManyPixels = errors.New("image has too many pixels")

type Thumbnail struct {
	DataURL  string     `json:"data_url"`
	Size     Dimensions `json:"size"`
	Original Dimensions `json:"original"`
	Bytes    []byte     `json:"-"`
}

// Render is RenderLimited with DefaultMaxSourcePixels.
func Render(data []byte) (*Thumbnail, error) {
	return RenderLimited(data, DefaultMaxSourcePixels)
}

// RenderLimited decodes an image and redraws it at Size over a white
// background, so transparent regions do not turn black in the JPEG output.
// Images above maxPixels are rejected from their header, before any pixel
// is decoded. A maxPixels of zero means no limit.
func RenderLimited(data []byte, maxPixels int64) (*Thumbnail, error) {
	if maxPixels > 0 {
		cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decode image config: %w", err)
		}
		if pixels := int64(cfg.Width) * int64(cfg.Height); pixels > maxPixels {
			return nil, fmt.Errorf("%w: %dx%d (max %d)", ErrTooManyPixels, cfg.Width, cfg.Height, maxPixels)
		}
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return RenderImage(img)
}

func RenderImage(img image.Image) (*Thumbnail, error) {
	b := img.Bounds()
	original := Dimensions{Width: b.Dx(), Height: b.Dy()}
	size, err := Size(float64(original.Width), float64(original.Height))
	if err != nil {
		return nil, err
	}

	canvas := imaging.New(size.Width, size.Height, color.White)
	resized := imaging.Resize(img, size.Width, size.Height, imaging.Lanczos)
	canvas = imaging.Overlay(canvas, resized, image.Pt(0, 0), 1.0)

	var buf bytes.Buffer
	err = imaging.Encode(&buf, canvas, imaging.JPEG, imaging.JPEGQuality(consts.ThumbnailQuality))
	if err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return &Thumbnail{
		DataURL:  "data:" + consts.ThumbnailMediaType + ";base64," + base64.StdEncoding.EncodeToString(buf.Bytes()),
		Size:     size,
		Original: original,
		Bytes:    buf.Bytes(),
	}, nil
}
