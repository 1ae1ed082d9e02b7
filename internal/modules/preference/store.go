package preference

import (
	"context"

	"github.com/reusedev/sbi-hub/internal/modules/dao"
	"github.com/reusedev/sbi-hub/internal/modules/model"
	"gorm.io/gorm"
)

// StaticStore serves a fixed set of values to every client.
type StaticStore map[string]string

func (s StaticStore) Get(_ context.Context, _ string, keys []string) (map[string]string, error) {
	ret := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := s[k]; ok {
			ret[k] = v
		}
	}
	return ret, nil
}

type DBStore struct {
	db *gorm.DB
}

func NewDBStore(db *gorm.DB) *DBStore {
	return &DBStore{db: db}
}

func (s *DBStore) Get(ctx context.Context, clientId string, keys []string) (map[string]string, error) {
	prefs, err := dao.PreferencesByClient(s.db.WithContext(ctx), clientId, keys)
	if err != nil {
		return nil, err
	}
	ret := make(map[string]string, len(prefs))
	for _, p := range prefs {
		ret[p.Key] = p.Value
	}
	return ret, nil
}

func (s *DBStore) Set(ctx context.Context, clientId string, values map[string]string) error {
	prefs := make([]model.Preference, 0, len(values))
	for k, v := range values {
		prefs = append(prefs, model.Preference{ClientId: clientId, Key: k, Value: v})
	}
	return dao.UpsertPreferences(s.db.WithContext(ctx), prefs)
}
