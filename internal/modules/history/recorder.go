package history

import (
	"context"
	"database/sql"
	"time"

	"github.com/reusedev/sbi-hub/internal/modules/dao"
	"github.com/reusedev/sbi-hub/internal/modules/logs"
	"github.com/reusedev/sbi-hub/internal/modules/model"
	"github.com/reusedev/sbi-hub/internal/modules/queue"
	"github.com/reusedev/sbi-hub/internal/modules/storage"
	"gorm.io/gorm"
)

const writeTimeout = 10 * time.Second

// Recorder persists performed searches in the background. A nil archiver
// records searches without keeping thumbnails.
type Recorder struct {
	db       *gorm.DB
	archiver storage.Archiver
	queue    *queue.Queue
}

func NewRecorder(db *gorm.DB, archiver storage.Archiver, q *queue.Queue) *Recorder {
	return &Recorder{db: db, archiver: archiver, queue: q}
}

func (r *Recorder) Record(record model.SearchRecord, thumbnail []byte) {
	ok := r.queue.Enqueue(&recordTask{recorder: r, record: record, thumbnail: thumbnail})
	if !ok {
		logs.Logger.Warn().Str("request_id", record.RequestId).Msg("search record dropped")
	}
}

// Archiver exposes the archiver for lookups of stored thumbnails.
func (r *Recorder) Archiver() storage.Archiver {
	return r.archiver
}

func (r *Recorder) Find(ctx context.Context, requestId string) (model.SearchRecord, error) {
	return dao.SearchRecordByRequestId(r.db.WithContext(ctx), requestId)
}

type recordTask struct {
	recorder  *Recorder
	record    model.SearchRecord
	thumbnail []byte
}

// Execute outlives shutdown so the queue can drain into the database.
func (t *recordTask) Execute(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
	defer cancel()

	if t.recorder.archiver != nil && len(t.thumbnail) > 0 {
		key, err := t.recorder.archiver.Archive(ctx, t.thumbnail)
		if err != nil {
			logs.Logger.Err(err).Str("request_id", t.record.RequestId).Msg("archive thumbnail")
		} else {
			t.record.StorageSupplier = sql.NullString{String: t.recorder.archiver.Supplier().String(), Valid: true}
			t.record.ArchiveKey = sql.NullString{String: key, Valid: true}
		}
	}
	return dao.CreateSearchRecord(t.recorder.db.WithContext(ctx), &t.record)
}
