package request

import (
	"fmt"
	"strings"

	"github.com/reusedev/sbi-hub/internal/modules/hover"
)

type HoverEligible struct {
	ClientId string      `json:"client_id"`
	Image    hover.Image `json:"image"`
}

type HoverClick struct {
	ClientId  string          `json:"client_id"`
	Image     hover.Image     `json:"image"`
	Modifiers hover.Modifiers `json:"modifiers"`
}

func (h *HoverClick) Valid() error {
	if strings.TrimSpace(h.Image.Src) == "" {
		return fmt.Errorf("image.src is required")
	}
	return nil
}

const (
	HoverEventMouseover = "mouseover"
	HoverEventMouseout  = "mouseout"
)

type HoverEvent struct {
	Type  string       `json:"type"`
	Image *hover.Image `json:"image,omitempty"` // mouseover only
	Point *hover.Point `json:"point,omitempty"` // mouseout only
}

// HoverReplay is a page's mouse events in the order they happened.
type HoverReplay struct {
	ClientId string       `json:"client_id"`
	Events   []HoverEvent `json:"events"`
}

func (h *HoverReplay) Valid() error {
	if len(h.Events) == 0 {
		return fmt.Errorf("events is required")
	}
	for i, e := range h.Events {
		switch e.Type {
		case HoverEventMouseover:
			if e.Image == nil {
				return fmt.Errorf("events[%d]: mouseover needs an image", i)
			}
		case HoverEventMouseout:
			if e.Point == nil {
				return fmt.Errorf("events[%d]: mouseout needs a point", i)
			}
		default:
			return fmt.Errorf("events[%d]: unknown type %q", i, e.Type)
		}
	}
	return nil
}
