package history

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/reusedev/sbi-hub/internal/consts"
	"github.com/reusedev/sbi-hub/internal/modules/model"
	"github.com/reusedev/sbi-hub/internal/modules/queue"
	"github.com/reusedev/sbi-hub/internal/modules/storage/local"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&model.SearchRecord{}))
	return db
}

type brokenArchiver struct{}

func (brokenArchiver) Supplier() consts.StorageSupplier { return consts.AliOSS }
func (brokenArchiver) Archive(context.Context, []byte) (string, error) {
	return "", errors.New("bucket gone")
}
func (brokenArchiver) URL(context.Context, string, time.Duration) (string, error) {
	return "", errors.New("bucket gone")
}

func drain(t *testing.T, q *queue.Queue) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	wg := &sync.WaitGroup{}
	q.Run(ctx, wg)
	cancel()
	wg.Wait()
}

func TestRecordWithLocalArchive(t *testing.T) {
	db := openTestDB(t)
	q := queue.New(10)
	r := NewRecorder(db, local.NewArchiver(t.TempDir()), q)

	r.Record(model.SearchRecord{RequestId: "r1", Mode: consts.SearchModeUpload.String()}, []byte{0xFF, 0xD8, 0xFF, 0xE0})
	drain(t, q)

	got, err := r.Find(context.Background(), "r1")
	require.NoError(t, err)
	require.True(t, got.ArchiveKey.Valid)
	require.Equal(t, consts.LocalStorage.String(), got.StorageSupplier.String)

	url, err := r.Archiver().URL(context.Background(), got.ArchiveKey.String, time.Hour)
	require.NoError(t, err)
	require.Equal(t, got.ArchiveKey.String, url)
}

func TestRecordSurvivesArchiveFailure(t *testing.T) {
	db := openTestDB(t)
	q := queue.New(10)
	r := NewRecorder(db, brokenArchiver{}, q)

	r.Record(model.SearchRecord{RequestId: "r2", Mode: consts.SearchModeUpload.String()}, []byte{1, 2, 3})
	drain(t, q)

	got, err := r.Find(context.Background(), "r2")
	require.NoError(t, err)
	require.False(t, got.ArchiveKey.Valid)
}

func TestRecordWithoutArchiver(t *testing.T) {
	db := openTestDB(t)
	q := queue.New(10)
	r := NewRecorder(db, nil, q)

	r.Record(model.SearchRecord{RequestId: "r3", Mode: consts.SearchModeLookup.String(), SourceURL: "https://example.com/a.png"}, nil)
	drain(t, q)

	got, err := r.Find(context.Background(), "r3")
	require.NoError(t, err)
	require.Equal(t, "https://example.com/a.png", got.SourceURL)
}
