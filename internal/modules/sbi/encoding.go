package sbi

import (
	"encoding/base64"
	"net/url"
	"strings"
)

var (
	// The server decodes '-', '_' and '=' in place of '+', '/' and '.'.
	// '.' is a padding alias some encoders emit, so it maps onto '='.
	webSafeReplacer = strings.NewReplacer("+", "-", "/", "_", ".", "=")

	// url.QueryEscape escapes more than a browser's encodeURIComponent does.
	uriComponentReplacer = strings.NewReplacer(
		"+", "%20",
		"%21", "!",
		"%27", "'",
		"%28", "(",
		"%29", ")",
		"%2A", "*",
	)
)

// ValidRelaxedBase64 reports whether s only holds A-Z, a-z, 0-9, '+', '/', '.'
// and '='. It checks the alphabet only; an empty string is valid.
func ValidRelaxedBase64(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z',
			c >= 'A' && c <= 'Z',
			c >= '0' && c <= '9',
			c == '+', c == '/', c == '.', c == '=':
			continue
		}
		return false
	}
	return true
}

func WebSafe(s string) string {
	return webSafeReplacer.Replace(s)
}

func EncodeURIComponent(s string) string {
	return uriComponentReplacer.Replace(url.QueryEscape(s))
}

type EncodedImage struct {
	MimeType string
	Data     string // standard base64
}

func NewEncodedImage(raw []byte, mimeType string) EncodedImage {
	return EncodedImage{
		MimeType: mimeType,
		Data:     base64.StdEncoding.EncodeToString(raw),
	}
}

func (e EncodedImage) DataURL() string {
	return "data:" + e.MimeType + ";base64," + e.Data
}
