package store

import (
	"github.com/Saurav-Paul/drop/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KeyLastCleanup is bookkeeping written by the cleanup pass and only
// ever read back by the dashboard
const KeyLastCleanup = "last_cleanup_at"

// Settings is a point-in-time snapshot of the run-time configurable
// values. Operations fetch one snapshot up front and pass it down
// instead of re-reading the database mid-stream
type Settings struct {
	DefaultExpiry string `json:"default_expiry"`
	MaxExpiry     string `json:"max_expiry"`
	MaxFileSize   string `json:"max_file_size"`
	StorageLimit  string `json:"storage_limit"`
	UploadAPIKey  string `json:"upload_api_key"`
	LastCleanupAt string `json:"last_cleanup_at,omitempty"`
}

var settingsDefaults = map[string]string{
	"default_expiry": "24h",
	"max_expiry":     "7d",
	"max_file_size":  "100MB",
	"storage_limit":  "1GB",
	"upload_api_key": "",
}

// SettingsStore persists the settings key/value pairs
type SettingsStore struct {
	DB *gorm.DB
}

func NewSettingsStore(db *gorm.DB) *SettingsStore {
	return &SettingsStore{DB: db}
}

// Snapshot reads all settings, filling in defaults for unset keys
func (s *SettingsStore) Snapshot() (*Settings, error) {
	var rows []model.Setting

	if err := s.DB.Find(&rows).Error; err != nil {
		return nil, err
	}

	raw := make(map[string]string, len(rows))
	for _, r := range rows {
		raw[r.Key] = r.Value
	}

	get := func(key string) string {
		if v, ok := raw[key]; ok {
			return v
		}
		return settingsDefaults[key]
	}

	return &Settings{
		DefaultExpiry: get("default_expiry"),
		MaxExpiry:     get("max_expiry"),
		MaxFileSize:   get("max_file_size"),
		StorageLimit:  get("storage_limit"),
		UploadAPIKey:  get("upload_api_key"),
		LastCleanupAt: raw[KeyLastCleanup],
	}, nil
}

// Set upserts a single key
func (s *SettingsStore) Set(key, value string) error {
	return s.DB.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(&model.Setting{Key: key, Value: value}).
		Error
}

// SetMany upserts the given keys in one transaction
func (s *SettingsStore) SetMany(values map[string]string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		for key, value := range values {
			err := tx.
				Clauses(clause.OnConflict{
					Columns:   []clause.Column{{Name: "key"}},
					DoUpdates: clause.AssignmentColumns([]string{"value"}),
				}).
				Create(&model.Setting{Key: key, Value: value}).
				Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
