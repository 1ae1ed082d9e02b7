package model

import (
	"database/sql"
	"time"
)

type SearchRecord struct {
	Id              int            `json:"id" gorm:"primaryKey"`
	RequestId       string         `json:"request_id" gorm:"column:request_id;type:varchar(36);index"`
	ClientId        string         `json:"client_id" gorm:"column:client_id;type:varchar(64);index"`
	Mode            string         `json:"mode" gorm:"column:mode;type:varchar(10)"`
	SourceURL       string         `json:"source_url" gorm:"column:source_url;type:text"`
	OriginalWidth   int            `json:"original_width" gorm:"column:original_width;type:int"`
	OriginalHeight  int            `json:"original_height" gorm:"column:original_height;type:int"`
	ThumbnailWidth  int            `json:"thumbnail_width" gorm:"column:thumbnail_width;type:int"`
	ThumbnailHeight int            `json:"thumbnail_height" gorm:"column:thumbnail_height;type:int"`
	Selected        bool           `json:"selected" gorm:"column:selected"`
	StorageSupplier sql.NullString `json:"storage_supplier" gorm:"column:storage_supplier;type:varchar(20)"`
	ArchiveKey      sql.NullString `json:"archive_key" gorm:"column:archive_key;type:varchar(255)"`
	CreatedAt       time.Time      `json:"created_at" gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP"`
}

func (SearchRecord) TableName() string {
	return "search_record"
}

type Preference struct {
	ClientId  string    `json:"client_id" gorm:"column:client_id;type:varchar(64);primaryKey"`
	Key       string    `json:"key" gorm:"column:key;type:varchar(64);primaryKey"`
	Value     string    `json:"value" gorm:"column:value;type:varchar(255)"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at;not null;default:CURRENT_TIMESTAMP"`
}

func (Preference) TableName() string {
	return "preference"
}
