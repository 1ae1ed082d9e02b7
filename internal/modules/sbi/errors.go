package sbi

import "errors"

var (
	ErrUnsupportedContentType = errors.New("unsupported content type")
	ErrInvalidEncoding        = errors.New("invalid encoding")
	// ErrImageUnavailable means the source image could not be fetched or
	// decoded. The search is skipped rather than reported to the user.
	ErrImageUnavailable = errors.New("image unavailable")
)
