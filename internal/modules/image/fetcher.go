package image

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/reusedev/sbi-hub/internal/modules/http_client"
)

var ErrTooLarge = errors.New("image too large")

type Fetched struct {
	Data        []byte
	ContentType string
	FileName    string
}

type Fetcher struct {
	client       *http_client.HttpClient
	maxBytes     int64
	allowPrivate bool
}

type FetcherOption func(f *Fetcher)

// WithPrivateNetworks lets the fetcher reach loopback, link-local and
// private addresses.
func WithPrivateNetworks() FetcherOption {
	return func(f *Fetcher) {
		f.allowPrivate = true
	}
}

func NewFetcher(timeout time.Duration, maxBytes int64, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{maxBytes: maxBytes}
	for _, opt := range opts {
		opt(f)
	}
	if f.allowPrivate {
		f.client = http_client.NewWithTimeout(timeout)
	} else {
		f.client = http_client.NewWithTransport(timeout, publicTransport())
	}
	return f
}

// Fetch downloads an http or https url. A maxBytes of zero means no limit.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Fetched, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
	req, err := f.client.NewRequest(http.MethodGet, rawURL,
		http_client.WithContext(ctx),
		http_client.WithHeader("Accept", "image/*"),
	)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image, status code: %d", resp.StatusCode)
	}

	var body io.Reader = resp.Body
	if f.maxBytes > 0 {
		body = io.LimitReader(resp.Body, f.maxBytes+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	if f.maxBytes > 0 && int64(len(data)) > f.maxBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, f.maxBytes)
	}

	ret := &Fetched{
		Data:        data,
		ContentType: mimetype.Detect(data).String(),
	}
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		for _, part := range strings.Split(cd, ";") {
			if strings.Contains(part, "filename=") {
				ret.FileName = strings.Trim(strings.SplitN(part, "=", 2)[1], "\"")
				break
			}
		}
	}
	return ret, nil
}
