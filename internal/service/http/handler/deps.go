package handler

import (
	"time"

	"github.com/reusedev/sbi-hub/internal/modules/history"
	"github.com/reusedev/sbi-hub/internal/modules/preference"
	"github.com/reusedev/sbi-hub/internal/modules/sbi"
)

type Dependencies struct {
	Search             *sbi.Service
	Preferences        preference.Store
	DefaultPreferences preference.Preferences
	// Recorder is nil when search history is disabled.
	Recorder   *history.Recorder
	URLExpires time.Duration
	// MaxImageBytes caps uploaded files. Zero means no limit.
	MaxImageBytes int64
}

var deps Dependencies

func Init(d Dependencies) {
	deps = d
}
