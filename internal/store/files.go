// Package store is the data access layer over the metadata database
package store

import (
	"errors"
	"time"

	"github.com/Saurav-Paul/drop/internal/model"

	"gorm.io/gorm"
)

// ErrNotFound is returned when no record exists for a code
var ErrNotFound = errors.New("file not found")

// FileStore persists file records. It is the only component allowed to
// touch the files table
type FileStore struct {
	DB *gorm.DB
}

func NewFileStore(db *gorm.DB) *FileStore {
	return &FileStore{DB: db}
}

func (s *FileStore) Create(f *model.File) error {
	return s.DB.Create(f).Error
}

func (s *FileStore) GetByCode(code string) (*model.File, error) {
	var f model.File

	err := s.DB.
		Where("code = ?", code).
		First(&f).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &f, nil
}

func (s *FileStore) CodeExists(code string) (bool, error) {
	var n int64

	err := s.DB.
		Model(model.File{}).
		Where("code = ?", code).
		Count(&n).
		Error

	return n > 0, err
}

// ListAll returns every record, newest first
func (s *FileStore) ListAll() ([]model.File, error) {
	var files []model.File

	err := s.DB.
		Order("created_at DESC").
		Find(&files).
		Error

	return files, err
}

// IncrementDownload bumps the download counter in a single UPDATE so
// concurrent downloads of the same code never lose an increment
func (s *FileStore) IncrementDownload(code string) error {
	return s.DB.
		Model(model.File{}).
		Where("code = ?", code).
		Update("download_count", gorm.Expr("download_count + ?", 1)).
		Error
}

func (s *FileStore) DeleteByCode(code string) error {
	res := s.DB.
		Where("code = ?", code).
		Delete(model.File{})
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// Expired returns records whose expiry timestamp is in the past
func (s *FileStore) Expired(now time.Time) ([]model.File, error) {
	var files []model.File

	err := s.DB.
		Where("expires_at IS NOT NULL AND expires_at <= ?", now).
		Find(&files).
		Error

	return files, err
}

// Exhausted returns records that reached their download cap
func (s *FileStore) Exhausted() ([]model.File, error) {
	var files []model.File

	err := s.DB.
		Where("max_downloads IS NOT NULL AND download_count >= max_downloads").
		Find(&files).
		Error

	return files, err
}

// TotalSize is the aggregate size of all stored files in bytes
func (s *FileStore) TotalSize() (int64, error) {
	var total int64

	err := s.DB.
		Model(model.File{}).
		Select("COALESCE(SUM(size), 0)").
		Scan(&total).
		Error

	return total, err
}

// Codes returns the set of codes that have a metadata record. The
// cleanup pass diffs this against the blob store to find orphans
func (s *FileStore) Codes() (map[string]struct{}, error) {
	var codes []string

	err := s.DB.
		Model(model.File{}).
		Pluck("code", &codes).
		Error
	if err != nil {
		return nil, err
	}

	set := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		set[c] = struct{}{}
	}

	return set, nil
}
