package preference

import (
	"context"
	"fmt"
	"strconv"

	"github.com/reusedev/sbi-hub/internal/consts"
)

var Keys = []string{consts.PrefGetURL, consts.PrefOption, consts.PrefHoverMinDims}

// Store is a read-mostly key/value store of per-client preferences.
// Missing keys are simply absent from the returned map.
type Store interface {
	Get(ctx context.Context, clientId string, keys []string) (map[string]string, error)
}

type Writer interface {
	Set(ctx context.Context, clientId string, values map[string]string) error
}

// Preferences is resolved once per search and handed to the pure code.
type Preferences struct {
	UseGetRequests bool               `json:"sbi_get_url"`
	HoverOption    consts.HoverOption `json:"sbi_option"`
	HoverMinWidth  int                `json:"hover_min_width"`
	HoverMinHeight int                `json:"hover_min_height"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		HoverOption:    consts.HoverMouseover,
		HoverMinWidth:  consts.DefaultHoverMinPx,
		HoverMinHeight: consts.DefaultHoverMinPx,
	}
}

// Resolve reads the client's preferences, falling back to defaults for keys
// the store does not have.
func Resolve(ctx context.Context, store Store, clientId string, defaults Preferences) (Preferences, error) {
	values, err := store.Get(ctx, clientId, Keys)
	if err != nil {
		return Preferences{}, fmt.Errorf("get preferences: %w", err)
	}
	p := defaults
	if v, ok := values[consts.PrefGetURL]; ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Preferences{}, fmt.Errorf("parse %s: %w", consts.PrefGetURL, err)
		}
		p.UseGetRequests = b
	}
	if v, ok := values[consts.PrefOption]; ok {
		p.HoverOption = consts.HoverOption(v)
	}
	if v, ok := values[consts.PrefHoverMinDims]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Preferences{}, fmt.Errorf("parse %s: %w", consts.PrefHoverMinDims, err)
		}
		p.HoverMinWidth = n
		p.HoverMinHeight = n
	}
	return p, nil
}

// Validate checks values a client wants to store.
func Validate(values map[string]string) error {
	for k, v := range values {
		switch k {
		case consts.PrefGetURL:
			if _, err := strconv.ParseBool(v); err != nil {
				return fmt.Errorf("invalid %s: %s", k, v)
			}
		case consts.PrefOption:
			if v != consts.HoverMouseover.String() && v != consts.HoverNever.String() {
				return fmt.Errorf("invalid %s: %s, must be 'mouseover' or 'never'", k, v)
			}
		case consts.PrefHoverMinDims:
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				return fmt.Errorf("invalid %s: %s, must be a non-negative integer", k, v)
			}
		default:
			return fmt.Errorf("unknown preference: %s", k)
		}
	}
	return nil
}
