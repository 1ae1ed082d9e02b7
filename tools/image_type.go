package tools

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

type ImageType string

const (
	ImageTypePNG     ImageType = "png"
	ImageTypeJPEG    ImageType = "jpeg"
	ImageTypeGIF     ImageType = "gif"
	ImageTypeWEBP    ImageType = "webp"
	ImageTypeBMP     ImageType = "bmp"
	ImageTypeTIFF    ImageType = "tiff"
	ImageTypeICO     ImageType = "x-icon"
	ImageTypeUnknown ImageType = "bin"
)

func (i ImageType) String() string {
	return string(i)
}

// DetectImageType sniffs the image format from the leading bytes.
func DetectImageType(b []byte) ImageType {
	m := mimetype.Detect(b).String()
	if !strings.HasPrefix(m, "image/") {
		return ImageTypeUnknown
	}
	switch t := ImageType(strings.TrimPrefix(m, "image/")); t {
	case ImageTypePNG, ImageTypeJPEG, ImageTypeGIF, ImageTypeWEBP, ImageTypeBMP, ImageTypeTIFF, ImageTypeICO:
		return t
	default:
		return ImageTypeUnknown
	}
}
