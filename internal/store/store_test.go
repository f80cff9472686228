package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/Saurav-Paul/drop/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.File{}, model.Setting{}))

	return db
}

func ptr[T any](v T) *T { return &v }

func TestFileStoreRoundTrip(t *testing.T) {
	s := NewFileStore(newTestDB(t))

	rec := &model.File{
		Code:       "abc123",
		Filename:   "a.txt",
		StorageKey: "abc123/a.txt",
		Size:       42,
		CreatedAt:  time.Now().UTC(),
	}
	require.NoError(t, s.Create(rec))

	got, err := s.GetByCode("abc123")
	require.NoError(t, err)
	assert.Equal(t, "a.txt", got.Filename)
	assert.Equal(t, int64(42), got.Size)
	assert.Zero(t, got.DownloadCount)

	exists, err := s.CodeExists("abc123")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = s.CodeExists("zzzzzz")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = s.GetByCode("zzzzzz")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStoreIncrementDownload(t *testing.T) {
	s := NewFileStore(newTestDB(t))

	require.NoError(t, s.Create(&model.File{Code: "abc123", Filename: "a.txt", StorageKey: "abc123/a.txt", CreatedAt: time.Now().UTC()}))

	require.NoError(t, s.IncrementDownload("abc123"))
	require.NoError(t, s.IncrementDownload("abc123"))

	got, err := s.GetByCode("abc123")
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.DownloadCount)
}

func TestFileStoreDelete(t *testing.T) {
	s := NewFileStore(newTestDB(t))

	require.NoError(t, s.Create(&model.File{Code: "abc123", Filename: "a.txt", StorageKey: "abc123/a.txt", CreatedAt: time.Now().UTC()}))

	require.NoError(t, s.DeleteByCode("abc123"))
	assert.ErrorIs(t, s.DeleteByCode("abc123"), ErrNotFound)
}

func TestFileStoreExpiredAndExhausted(t *testing.T) {
	s := NewFileStore(newTestDB(t))
	now := time.Now().UTC()

	require.NoError(t, s.Create(&model.File{Code: "live01", Filename: "a", StorageKey: "live01/a", CreatedAt: now}))
	require.NoError(t, s.Create(&model.File{Code: "exp001", Filename: "b", StorageKey: "exp001/b", ExpiresAt: ptr(now.Add(-time.Hour)), CreatedAt: now}))
	require.NoError(t, s.Create(&model.File{Code: "fut001", Filename: "c", StorageKey: "fut001/c", ExpiresAt: ptr(now.Add(time.Hour)), CreatedAt: now}))
	require.NoError(t, s.Create(&model.File{Code: "done01", Filename: "d", StorageKey: "done01/d", MaxDownloads: ptr(int64(2)), DownloadCount: 2, CreatedAt: now}))
	require.NoError(t, s.Create(&model.File{Code: "part01", Filename: "e", StorageKey: "part01/e", MaxDownloads: ptr(int64(2)), DownloadCount: 1, CreatedAt: now}))

	expired, err := s.Expired(now)
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, "exp001", expired[0].Code)

	exhausted, err := s.Exhausted()
	require.NoError(t, err)
	require.Len(t, exhausted, 1)
	assert.Equal(t, "done01", exhausted[0].Code)
}

func TestFileStoreTotalSizeAndCodes(t *testing.T) {
	s := NewFileStore(newTestDB(t))
	now := time.Now().UTC()

	total, err := s.TotalSize()
	require.NoError(t, err)
	assert.Zero(t, total)

	require.NoError(t, s.Create(&model.File{Code: "aaa111", Filename: "a", StorageKey: "aaa111/a", Size: 100, CreatedAt: now}))
	require.NoError(t, s.Create(&model.File{Code: "bbb222", Filename: "b", StorageKey: "bbb222/b", Size: 250, CreatedAt: now}))

	total, err = s.TotalSize()
	require.NoError(t, err)
	assert.Equal(t, int64(350), total)

	codes, err := s.Codes()
	require.NoError(t, err)
	assert.Len(t, codes, 2)
	assert.Contains(t, codes, "aaa111")
	assert.Contains(t, codes, "bbb222")
}

func TestSettingsDefaults(t *testing.T) {
	s := NewSettingsStore(newTestDB(t))

	snap, err := s.Snapshot()
	require.NoError(t, err)

	assert.Equal(t, "24h", snap.DefaultExpiry)
	assert.Equal(t, "7d", snap.MaxExpiry)
	assert.Equal(t, "100MB", snap.MaxFileSize)
	assert.Equal(t, "1GB", snap.StorageLimit)
	assert.Empty(t, snap.UploadAPIKey)
	assert.Empty(t, snap.LastCleanupAt)
}

func TestSettingsSetMany(t *testing.T) {
	s := NewSettingsStore(newTestDB(t))

	require.NoError(t, s.SetMany(map[string]string{
		"max_file_size": "10MB",
		"max_expiry":    "2d",
	}))
	require.NoError(t, s.Set("max_file_size", "20MB"))

	snap, err := s.Snapshot()
	require.NoError(t, err)

	assert.Equal(t, "20MB", snap.MaxFileSize)
	assert.Equal(t, "2d", snap.MaxExpiry)
	// Untouched keys keep their defaults
	assert.Equal(t, "24h", snap.DefaultExpiry)
}
