package service

import (
	"time"

	"github.com/Saurav-Paul/drop/internal/blob"
	"github.com/Saurav-Paul/drop/internal/model"
	"github.com/Saurav-Paul/drop/internal/store"

	"go.uber.org/zap"
)

// Gate decides whether a code+filename pair may be downloaded
type Gate struct {
	Files *store.FileStore
	Blobs *blob.Store
}

// Authorize validates a download request. Every way a request can be
// invalid (unknown code, wrong filename, expired, download cap hit,
// missing blob) collapses into store.ErrNotFound so a caller probing
// for codes learns nothing about why they were refused
func (g *Gate) Authorize(code, filename string) (*model.File, error) {
	rec, err := g.Files.GetByCode(code)
	if err != nil {
		return nil, err
	}

	// Exact, case-sensitive match
	if rec.Filename != filename {
		return nil, store.ErrNotFound
	}

	if rec.ExpiresAt != nil && time.Now().UTC().After(*rec.ExpiresAt) {
		return nil, store.ErrNotFound
	}

	if rec.MaxDownloads != nil && rec.DownloadCount >= *rec.MaxDownloads {
		return nil, store.ErrNotFound
	}

	if !g.Blobs.Exists(code, filename) {
		return nil, store.ErrNotFound
	}

	return rec, nil
}

// RecordDownload bumps the counter. It fires at authorization time,
// not at stream completion, so an interrupted transfer still counts
// against the cap
func (g *Gate) RecordDownload(code string) {
	if err := g.Files.IncrementDownload(code); err != nil {
		zap.L().Error("Failed to increment download counter", zap.String("code", code), zap.Error(err))
	}
}
