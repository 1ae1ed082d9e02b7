package storage

import (
	"context"
	"time"

	"github.com/reusedev/sbi-hub/internal/consts"
)

// Archiver keeps a copy of each thumbnail that was sent to the search server.
type Archiver interface {
	Supplier() consts.StorageSupplier
	// Archive stores data and returns the key it was stored under.
	Archive(ctx context.Context, data []byte) (string, error)
	// URL returns a link to a stored key, valid for at least expire.
	URL(ctx context.Context, key string, expire time.Duration) (string, error)
}
