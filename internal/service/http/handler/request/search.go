package request

import (
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/reusedev/sbi-hub/internal/modules/thumbnail"
)

type Search struct {
	URL      string `json:"url" form:"url"`           // image URL or data: URL
	Selected *bool  `json:"selected" form:"selected"` // open the result in the foreground, default true
	ClientId string `json:"client_id" form:"client_id"`
}

func (s *Search) Valid() error {
	if strings.TrimSpace(s.URL) == "" {
		return fmt.Errorf("url is required")
	}
	return nil
}

func (s *Search) IsSelected() bool {
	return s.Selected == nil || *s.Selected
}

type Lookup struct {
	ImageURL string `form:"image_url"`
}

func (l *Lookup) Valid() error {
	if l.ImageURL == "" {
		return fmt.Errorf("image_url is required")
	}
	return nil
}

type Upload struct {
	File      *multipart.FileHeader `form:"file"`
	MimeType  string                `form:"mime_type"` // sniffed from the file when empty
	Width     int                   `form:"width"`     // of the original image
	Height    int                   `form:"height"`
	Thumbnail bool                  `form:"thumbnail"` // downscale before building the request
}

func (u *Upload) Valid() error {
	if u.File == nil {
		return fmt.Errorf("file is required")
	}
	if u.Width < 0 || u.Height < 0 {
		return fmt.Errorf("invalid size %dx%d", u.Width, u.Height)
	}
	return nil
}

// Dimensions is nil unless both width and height were given.
func (u *Upload) Dimensions() *thumbnail.Dimensions {
	if u.Width == 0 || u.Height == 0 {
		return nil
	}
	return &thumbnail.Dimensions{Width: u.Width, Height: u.Height}
}

type Record struct {
	RequestId string `form:"request_id"`
}

func (r *Record) Valid() error {
	if r.RequestId == "" {
		return fmt.Errorf("request_id is required")
	}
	return nil
}
