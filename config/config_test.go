package config

import (
	"testing"

	"github.com/reusedev/sbi-hub/internal/consts"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]byte("log_level: debug\n"))
	require.NoError(t, err)
	require.NoError(t, cfg.Verify())
	require.Equal(t, consts.DefaultPageTitle, cfg.Search.PageTitle)
	require.Equal(t, consts.SearchServer, cfg.Search.Server)
	require.Equal(t, consts.HoverMouseover.String(), cfg.Preferences.Option)
	require.Equal(t, consts.DefaultHoverMinPx, *cfg.Preferences.HoverMinDims)
	require.Equal(t, int64(20<<20), cfg.Search.MaxImageBytes)
	require.Equal(t, "30s", cfg.Search.FetchTimeout)
	require.Equal(t, int64(50_000_000), cfg.Search.MaxImagePixels)
	require.False(t, cfg.Search.AllowPrivateNetworks)
}

func TestParseKeepsExplicitZeroHoverDims(t *testing.T) {
	cfg, err := Parse([]byte("preferences:\n  hover_min_dims: 0\n"))
	require.NoError(t, err)
	require.Equal(t, 0, *cfg.Preferences.HoverMinDims)
}

func TestVerify(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		ok   bool
	}{
		{"local storage", "history_enabled: true\nstorage_enabled: true\nstorage_supplier: local\n", true},
		{"unknown storage", "history_enabled: true\nstorage_enabled: true\nstorage_supplier: s3\n", false},
		{"storage without history", "storage_enabled: true\nstorage_supplier: local\n", false},
		{"bad timeout", "search:\n  fetch_timeout: soon\n", false},
		{"bad option", "preferences:\n  option: always\n", false},
		{"negative dims", "preferences:\n  hover_min_dims: -1\n", false},
		{"negative pixels", "search:\n  max_image_pixels: -1\n", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg, err := Parse([]byte(c.yaml))
			require.NoError(t, err)
			if c.ok {
				require.NoError(t, cfg.Verify())
			} else {
				require.Error(t, cfg.Verify())
			}
		})
	}
}
