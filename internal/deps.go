package internal

import (
	"github.com/Saurav-Paul/drop/internal/blob"
	"github.com/Saurav-Paul/drop/internal/service"
	"github.com/Saurav-Paul/drop/internal/store"

	"gorm.io/gorm"
)

type Deps struct {
	DB       *gorm.DB
	Files    *store.FileStore
	Settings *store.SettingsStore
	Blobs    *blob.Store
	Uploader *service.Uploader
	Gate     *service.Gate
	Cleaner  *service.Cleaner
}
