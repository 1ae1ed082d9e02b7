package dao

import (
	"github.com/reusedev/sbi-hub/internal/modules/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func CreateSearchRecord(db *gorm.DB, record *model.SearchRecord) error {
	return db.Model(&model.SearchRecord{}).Create(record).Error
}

func SearchRecordByRequestId(db *gorm.DB, requestId string) (model.SearchRecord, error) {
	var record model.SearchRecord
	err := db.Model(&model.SearchRecord{}).Where("request_id = ?", requestId).First(&record).Error
	if err != nil {
		return model.SearchRecord{}, err
	}
	return record, nil
}

func PreferencesByClient(db *gorm.DB, clientId string, keys []string) ([]model.Preference, error) {
	var prefs []model.Preference
	err := db.Model(&model.Preference{}).Where("client_id = ? AND `key` IN ?", clientId, keys).Find(&prefs).Error
	if err != nil {
		return nil, err
	}
	return prefs, nil
}

func UpsertPreferences(db *gorm.DB, prefs []model.Preference) error {
	if len(prefs) == 0 {
		return nil
	}
	return db.Model(&model.Preference{}).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "client_id"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&prefs).Error
}
