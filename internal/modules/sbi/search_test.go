package sbi

import (
	"bytes"
	"context"
	"encoding/base64"
	goimage "image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/reusedev/sbi-hub/internal/consts"
	"github.com/reusedev/sbi-hub/internal/modules/cache"
	"github.com/reusedev/sbi-hub/internal/modules/image"
	"github.com/reusedev/sbi-hub/internal/modules/model"
	"github.com/reusedev/sbi-hub/internal/modules/preference"
	"github.com/reusedev/sbi-hub/internal/modules/thumbnail"
	"github.com/stretchr/testify/require"
)

type memoryRecorder struct {
	records    []model.SearchRecord
	thumbnails [][]byte
}

func (m *memoryRecorder) Record(record model.SearchRecord, thumb []byte) {
	m.records = append(m.records, record)
	m.thumbnails = append(m.thumbnails, thumb)
}

func imageServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, goimage.NewRGBA(goimage.Rect(0, 0, 1200, 800))))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		switch r.URL.Path {
		case "/cat.png":
			w.Write(buf.Bytes())
		case "/broken.png":
			w.Write([]byte("definitely not a png"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestService(rec Recorder, opts ...Option) *Service {
	opts = append(opts, WithRecorder(rec))
	return NewService(NewBuilder("", ""), image.NewFetcher(5*time.Second, 0, image.WithPrivateNetworks()), opts...)
}

func TestSearchUploadsThumbnail(t *testing.T) {
	var hits atomic.Int32
	srv := imageServer(t, &hits)
	rec := &memoryRecorder{}
	s := newTestService(rec)

	ret, err := s.Search(context.Background(), Request{URL: srv.URL + "/cat.png", Selected: true, ClientId: "c1"}, preference.DefaultPreferences())
	require.NoError(t, err)
	require.Equal(t, consts.SearchModeUpload, ret.Mode)
	require.True(t, ret.Selected)
	require.NotEmpty(t, ret.RequestId)
	require.Equal(t, &thumbnail.Dimensions{Width: 1200, Height: 800}, ret.Original)
	require.Equal(t, &thumbnail.Dimensions{Width: 367, Height: 245}, ret.Thumbnail)

	require.True(t, strings.HasPrefix(ret.URL, consts.HTMLDataURLPrefix))
	page, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(ret.URL, consts.HTMLDataURLPrefix))
	require.NoError(t, err)
	require.Equal(t, ret.Page, string(page))
	require.Contains(t, ret.Page, `name="width" value="1200"`)
	require.Contains(t, ret.Page, `name="height" value="800"`)

	require.Len(t, rec.records, 1)
	require.Equal(t, "c1", rec.records[0].ClientId)
	require.Equal(t, srv.URL+"/cat.png", rec.records[0].SourceURL)
	require.Equal(t, 367, rec.records[0].ThumbnailWidth)
	require.NotEmpty(t, rec.thumbnails[0])
}

func TestSearchLookupPreference(t *testing.T) {
	var hits atomic.Int32
	srv := imageServer(t, &hits)
	rec := &memoryRecorder{}
	s := newTestService(rec)
	prefs := preference.DefaultPreferences()
	prefs.UseGetRequests = true

	ret, err := s.Search(context.Background(), Request{URL: srv.URL + "/cat.png"}, prefs)
	require.NoError(t, err)
	require.Equal(t, consts.SearchModeLookup, ret.Mode)
	require.Equal(t, BuildLookup(srv.URL+"/cat.png"), ret.URL)
	require.Empty(t, ret.Page)
	require.Zero(t, hits.Load())
	require.Len(t, rec.records, 1)
}

func TestSearchInlineDataURL(t *testing.T) {
	rec := &memoryRecorder{}
	s := newTestService(rec)
	prefs := preference.DefaultPreferences()
	// data: URLs are never sent as lookups
	prefs.UseGetRequests = true

	ret, err := s.Search(context.Background(), Request{URL: "data:image/png;base64,AAAA"}, prefs)
	require.NoError(t, err)
	require.Equal(t, consts.SearchModeInline, ret.Mode)
	require.Contains(t, ret.Page, `name="image_content" value="AAAA"`)
	require.NotContains(t, ret.Page, `name="width"`)
	require.Empty(t, rec.records[0].SourceURL)

	_, err = s.Search(context.Background(), Request{URL: "data:image/svg+xml;base64,AAAA"}, prefs)
	require.ErrorIs(t, err, ErrUnsupportedContentType)
	require.Len(t, rec.records, 1)
}

func TestSearchImageUnavailable(t *testing.T) {
	var hits atomic.Int32
	srv := imageServer(t, &hits)
	rec := &memoryRecorder{}
	s := newTestService(rec)

	_, err := s.Search(context.Background(), Request{URL: srv.URL + "/missing.png"}, preference.DefaultPreferences())
	require.ErrorIs(t, err, ErrImageUnavailable)

	_, err = s.Search(context.Background(), Request{URL: srv.URL + "/broken.png"}, preference.DefaultPreferences())
	require.ErrorIs(t, err, ErrImageUnavailable)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Search(ctx, Request{URL: srv.URL + "/cat.png"}, preference.DefaultPreferences())
	require.ErrorIs(t, err, ErrImageUnavailable)
	require.ErrorIs(t, err, context.Canceled)

	require.Empty(t, rec.records)
}

func TestSearchUsesThumbnailCache(t *testing.T) {
	var hits atomic.Int32
	srv := imageServer(t, &hits)
	rec := &memoryRecorder{}
	s := newTestService(rec, WithCache(cache.NewManager[string](time.Minute, time.Minute), time.Minute))

	first, err := s.Search(context.Background(), Request{URL: srv.URL + "/cat.png"}, preference.DefaultPreferences())
	require.NoError(t, err)
	second, err := s.Search(context.Background(), Request{URL: srv.URL + "/cat.png"}, preference.DefaultPreferences())
	require.NoError(t, err)

	require.Equal(t, int32(1), hits.Load())
	require.Equal(t, first.Page, second.Page)
	require.NotEqual(t, first.RequestId, second.RequestId)
	require.NotEmpty(t, rec.thumbnails[0])
	require.Empty(t, rec.thumbnails[1])
}

func TestSearchRejectsOversizedImage(t *testing.T) {
	var hits atomic.Int32
	srv := imageServer(t, &hits)
	rec := &memoryRecorder{}
	s := newTestService(rec, WithMaxPixels(1200*800-1))

	_, err := s.Search(context.Background(), Request{URL: srv.URL + "/cat.png"}, preference.DefaultPreferences())
	require.ErrorIs(t, err, ErrImageUnavailable)
	require.ErrorIs(t, err, thumbnail.ErrTooManyPixels)
	require.Empty(t, rec.records)
}

func TestSearchDoesNotFetchPrivateAddresses(t *testing.T) {
	var hits atomic.Int32
	srv := imageServer(t, &hits)
	s := NewService(NewBuilder("", ""), image.NewFetcher(5*time.Second, 0))

	_, err := s.Search(context.Background(), Request{URL: srv.URL + "/cat.png"}, preference.DefaultPreferences())
	require.ErrorIs(t, err, ErrImageUnavailable)
	require.ErrorIs(t, err, image.ErrForbiddenAddress)
	require.Zero(t, hits.Load())
}
