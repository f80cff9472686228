package service

import (
	"fmt"
	"testing"

	"github.com/Saurav-Paul/drop/internal/blob"
	"github.com/Saurav-Paul/drop/internal/model"
	"github.com/Saurav-Paul/drop/internal/store"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	Files    *store.FileStore
	Settings *store.SettingsStore
	Blobs    *blob.Store
	FS       afero.Fs
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.File{}, model.Setting{}))

	fs := afero.NewMemMapFs()
	blobs, err := blob.NewStore(fs, "/data/files")
	require.NoError(t, err)

	return &testEnv{
		Files:    store.NewFileStore(db),
		Settings: store.NewSettingsStore(db),
		Blobs:    blobs,
		FS:       fs,
	}
}

func (e *testEnv) uploader() *Uploader {
	return &Uploader{Files: e.Files, Settings: e.Settings, Blobs: e.Blobs}
}

func (e *testEnv) gate() *Gate {
	return &Gate{Files: e.Files, Blobs: e.Blobs}
}

func (e *testEnv) cleaner() *Cleaner {
	return &Cleaner{Files: e.Files, Settings: e.Settings, Blobs: e.Blobs}
}

// noLeftovers asserts the blob root holds neither temp files nor code
// directories
func (e *testEnv) noLeftovers(t *testing.T) {
	t.Helper()

	entries, err := afero.ReadDir(e.FS, "/data/files")
	require.NoError(t, err)
	require.Empty(t, entries)
}

func ptr[T any](v T) *T { return &v }
