package sbi

import (
	"encoding/base64"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/reusedev/sbi-hub/internal/consts"
	"github.com/reusedev/sbi-hub/internal/modules/thumbnail"
	"github.com/reusedev/sbi-hub/tools"
)

var allowedImageTypes = []string{
	"bmp", "gif", "jpeg", "jpg", "png", "webp", "tiff", "x-ico", "x-tiff",
}

// Builder turns images into search requests for one search host.
type Builder struct {
	Host  string
	Title string
}

var defaultBuilder = NewBuilder(consts.SearchServer, consts.DefaultPageTitle)

func NewBuilder(host, title string) *Builder {
	if host == "" {
		host = consts.SearchServer
	}
	if title == "" {
		title = consts.DefaultPageTitle
	}
	return &Builder{Host: host, Title: title}
}

func BuildUpload(dataURL string, dims *thumbnail.Dimensions) (string, error) {
	return defaultBuilder.BuildUpload(dataURL, dims)
}

func BuildUploadPayload(raw []byte, mimeType string, dims *thumbnail.Dimensions) (string, error) {
	return defaultBuilder.BuildUploadPayload(raw, mimeType, dims)
}

func BuildLookup(sourceURL string) string {
	return defaultBuilder.BuildLookup(sourceURL)
}

// ValidateDataURL runs the content-type gate and returns the base64 payload.
// The checks run in order and the first failure wins: image type prefix,
// ',' separator, payload alphabet.
func ValidateDataURL(dataURL string) (string, error) {
	lower := strings.ToLower(dataURL)
	allowed := false
	for _, t := range allowedImageTypes {
		if strings.HasPrefix(lower, "data:image/"+t+";") {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", fmt.Errorf("%w: %.32q", ErrUnsupportedContentType, dataURL)
	}
	offset := strings.IndexByte(dataURL, ',')
	if offset == -1 {
		return "", fmt.Errorf("%w: missing ',' separator", ErrInvalidEncoding)
	}
	payload := dataURL[offset+1:]
	if !ValidRelaxedBase64(payload) {
		return "", fmt.Errorf("%w: payload outside base64 alphabet", ErrInvalidEncoding)
	}
	return payload, nil
}

// BuildUpload returns a data: URL of an HTML page that posts the image to
// the search server as soon as it loads. dims are the dimensions of the
// original image, not of the thumbnail, and are sent only when known.
func (b *Builder) BuildUpload(dataURL string, dims *thumbnail.Dimensions) (string, error) {
	page, err := b.UploadPage(dataURL, dims)
	if err != nil {
		return "", err
	}
	return consts.HTMLDataURLPrefix + encodeStd(page), nil
}

func encodeStd(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

func (b *Builder) BuildUploadPayload(raw []byte, mimeType string, dims *thumbnail.Dimensions) (string, error) {
	return b.BuildUpload(NewEncodedImage(raw, mimeType).DataURL(), dims)
}

// UploadPage is BuildUpload without the outer data: URL.
func (b *Builder) UploadPage(dataURL string, dims *thumbnail.Dimensions) (string, error) {
	payload, err := ValidateDataURL(dataURL)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(`<html><head><title>`)
	sb.WriteString(html.EscapeString(b.Title))
	sb.WriteString(`</title></head><body><form id="f" method="POST" action="`)
	sb.WriteString(tools.FullURL("https://"+b.Host, consts.UploadPath))
	sb.WriteString(`" enctype="multipart/form-data">`)
	writeHidden(&sb, "image_content", WebSafe(payload))
	writeHidden(&sb, "filename", "")
	writeHidden(&sb, "image_url", "")
	writeHidden(&sb, consts.VersionParamName, consts.Version)
	if dims != nil {
		writeHidden(&sb, "width", strconv.Itoa(dims.Width))
		writeHidden(&sb, "height", strconv.Itoa(dims.Height))
	}
	sb.WriteString(`</form><script>document.getElementById("f").submit();</script></body></html>`)
	return sb.String(), nil
}

func writeHidden(sb *strings.Builder, name, value string) {
	sb.WriteString(`<input type="hidden" name="`)
	sb.WriteString(name)
	sb.WriteString(`" value="`)
	sb.WriteString(value)
	sb.WriteString(`">`)
}

// BuildLookup returns a GET URL that asks the server to fetch sourceURL
// itself. Only for debugging; uploads are the default.
func (b *Builder) BuildLookup(sourceURL string) string {
	return tools.FullURL("http://"+b.Host, consts.LookupPath) + "?" +
		consts.VersionParamName + "=" + consts.Version +
		"&image_url=" + EncodeURIComponent(sourceURL)
}
