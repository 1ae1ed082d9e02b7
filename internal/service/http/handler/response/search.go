package response

import (
	"time"

	"github.com/reusedev/sbi-hub/internal/modules/hover"
	"github.com/reusedev/sbi-hub/internal/modules/model"
)

type Record struct {
	RequestId       string    `json:"request_id"`
	ClientId        string    `json:"client_id"`
	Mode            string    `json:"mode"`
	SourceURL       string    `json:"source_url,omitempty"`
	OriginalWidth   int       `json:"original_width,omitempty"`
	OriginalHeight  int       `json:"original_height,omitempty"`
	ThumbnailWidth  int       `json:"thumbnail_width,omitempty"`
	ThumbnailHeight int       `json:"thumbnail_height,omitempty"`
	Selected        bool      `json:"selected"`
	StorageSupplier string    `json:"storage_supplier,omitempty"`
	ArchiveURL      string    `json:"archive_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func NewRecord(r model.SearchRecord, archiveURL string) Record {
	return Record{
		RequestId:       r.RequestId,
		ClientId:        r.ClientId,
		Mode:            r.Mode,
		SourceURL:       r.SourceURL,
		OriginalWidth:   r.OriginalWidth,
		OriginalHeight:  r.OriginalHeight,
		ThumbnailWidth:  r.ThumbnailWidth,
		ThumbnailHeight: r.ThumbnailHeight,
		Selected:        r.Selected,
		StorageSupplier: r.StorageSupplier.String,
		ArchiveURL:      archiveURL,
		CreatedAt:       r.CreatedAt,
	}
}

type Payload struct {
	URL string `json:"url"`
}

type Eligible struct {
	Eligible bool `json:"eligible"`
}

type Overlay struct {
	Visible bool         `json:"visible"`
	Target  *hover.Image `json:"target,omitempty"`
}

func NewOverlay(o *hover.Overlay) Overlay {
	ret := Overlay{Visible: o.Visible()}
	if target, ok := o.Target(); ok {
		ret.Target = &target
	}
	return ret
}
