package sbi

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/reusedev/sbi-hub/internal/consts"
	"github.com/reusedev/sbi-hub/internal/modules/cache"
	"github.com/reusedev/sbi-hub/internal/modules/image"
	"github.com/reusedev/sbi-hub/internal/modules/logs"
	"github.com/reusedev/sbi-hub/internal/modules/model"
	"github.com/reusedev/sbi-hub/internal/modules/preference"
	"github.com/reusedev/sbi-hub/internal/modules/thumbnail"
)

type Fetcher interface {
	Fetch(ctx context.Context, url string) (*image.Fetched, error)
}

type Recorder interface {
	Record(record model.SearchRecord, thumbnail []byte)
}

type Request struct {
	URL       string
	Selected  bool
	ClientId  string
	RequestId string
}

type Result struct {
	RequestId string                `json:"request_id"`
	URL       string                `json:"url"`
	Selected  bool                  `json:"selected"`
	Mode      consts.SearchMode     `json:"mode"`
	Original  *thumbnail.Dimensions `json:"original,omitempty"`
	Thumbnail *thumbnail.Dimensions `json:"thumbnail,omitempty"`
	// Page is the HTML behind URL for upload searches.
	Page string `json:"-"`
}

type Service struct {
	builder  *Builder
	fetcher  Fetcher
	cache    *cache.Manager[string]
	cacheTTL time.Duration
	recorder Recorder
	// maxPixels caps the decoded size of fetched images.
	maxPixels int64
}

type Option func(s *Service)

func WithCache(m *cache.Manager[string], ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = m
		s.cacheTTL = ttl
	}
}

func WithMaxPixels(n int64) Option {
	return func(s *Service) {
		s.maxPixels = n
	}
}

func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		s.recorder = r
	}
}

func NewService(builder *Builder, fetcher Fetcher, opts ...Option) *Service {
	s := &Service{builder: builder, fetcher: fetcher, maxPixels: thumbnail.DefaultMaxSourcePixels}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Builder() *Builder {
	return s.builder
}

func (s *Service) MaxPixels() int64 {
	return s.maxPixels
}

// Search turns an image URL into a search the caller opens for the user.
// data: URLs are sent as they are, the GET preference selects a lookup URL,
// and anything else is fetched and sent as a thumbnail. An image that cannot
// be fetched or decoded yields ErrImageUnavailable.
func (s *Service) Search(ctx context.Context, req Request, prefs preference.Preferences) (*Result, error) {
	if req.RequestId == "" {
		req.RequestId = uuid.NewString()
	}
	ret := &Result{RequestId: req.RequestId, Selected: req.Selected}
	var thumbBytes []byte

	switch {
	case strings.HasPrefix(req.URL, "data:"):
		page, err := s.builder.UploadPage(req.URL, nil)
		if err != nil {
			return nil, err
		}
		ret.Mode = consts.SearchModeInline
		ret.setPage(page)
	case prefs.UseGetRequests:
		ret.Mode = consts.SearchModeLookup
		ret.URL = s.builder.BuildLookup(req.URL)
	default:
		thumb, err := s.thumbnail(ctx, req.URL)
		if err != nil {
			return nil, err
		}
		page, err := s.builder.UploadPage(thumb.DataURL, &thumb.Original)
		if err != nil {
			return nil, err
		}
		ret.Mode = consts.SearchModeUpload
		ret.Original = &thumb.Original
		ret.Thumbnail = &thumb.Size
		ret.setPage(page)
		thumbBytes = thumb.Bytes
	}

	logs.Logger.Info().
		Str("request_id", ret.RequestId).
		Str("client_id", req.ClientId).
		Str("mode", ret.Mode.String()).
		Bool("selected", ret.Selected).
		Msg("search built")
	if s.recorder != nil {
		s.recorder.Record(ret.record(req), thumbBytes)
	}
	return ret, nil
}

func (r *Result) setPage(page string) {
	r.Page = page
	r.URL = consts.HTMLDataURLPrefix + encodeStd(page)
}

func (r *Result) record(req Request) model.SearchRecord {
	rec := model.SearchRecord{
		RequestId: r.RequestId,
		ClientId:  req.ClientId,
		Mode:      r.Mode.String(),
		Selected:  r.Selected,
	}
	// inline data: URLs are the image itself, not worth keeping twice
	if r.Mode != consts.SearchModeInline {
		rec.SourceURL = req.URL
	}
	if r.Original != nil {
		rec.OriginalWidth, rec.OriginalHeight = r.Original.Width, r.Original.Height
	}
	if r.Thumbnail != nil {
		rec.ThumbnailWidth, rec.ThumbnailHeight = r.Thumbnail.Width, r.Thumbnail.Height
	}
	return rec
}

// thumbnail returns a cached thumbnail for url or builds one. Cache hits
// carry no Bytes, so a repeated search is not archived again.
func (s *Service) thumbnail(ctx context.Context, url string) (*thumbnail.Thumbnail, error) {
	key := "thumbnail_" + url
	if s.cache != nil {
		v, err := s.cache.GetValue(key)
		if err != nil {
			logs.Logger.Err(err).Str("key", key).Msg("thumbnail cache get")
		} else if v != "" {
			var cached thumbnail.Thumbnail
			if err := jsoniter.UnmarshalFromString(v, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	fetched, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrImageUnavailable, err)
	}
	thumb, err := thumbnail.RenderLimited(fetched.Data, s.maxPixels)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrImageUnavailable, err)
	}

	if s.cache != nil {
		v, err := jsoniter.MarshalToString(thumb)
		if err == nil {
			err = s.cache.SetWithExpiration(key, v, s.cacheTTL)
		}
		if err != nil {
			logs.Logger.Err(err).Str("key", key).Msg("thumbnail cache set")
		}
	}
	return thumb, nil
}
