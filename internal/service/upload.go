package service

import (
	"crypto/subtle"
	"fmt"
	"io"
	"time"

	"github.com/Saurav-Paul/drop/internal/blob"
	"github.com/Saurav-Paul/drop/internal/model"
	"github.com/Saurav-Paul/drop/internal/store"
	"github.com/Saurav-Paul/drop/pkg/util"

	"go.uber.org/zap"
)

// Streamed bytes never touch memory in bigger pieces than this
const chunkSize = 1 << 20

// Uploader is the streaming upload engine. It receives request bodies
// chunk by chunk, enforces quotas while the stream is still arriving
// and only creates a metadata record once the bytes are safely on disk
type Uploader struct {
	Files    *store.FileStore
	Settings *store.SettingsStore
	Blobs    *blob.Store
}

// UploadRequest carries everything the engine needs besides the body
type UploadRequest struct {
	Filename     string
	Expires      string
	MaxDownloads *int64
	UploadKey    string

	// Privileged callers bypass size and storage quotas as well as the
	// upload key check
	Privileged bool

	BaseURL string
}

type UploadResult struct {
	URL          string     `json:"url"`
	Code         string     `json:"code"`
	Filename     string     `json:"filename"`
	Size         int64      `json:"size"`
	ExpiresAt    *time.Time `json:"expires_at"`
	MaxDownloads *int64     `json:"max_downloads"`
}

// Save streams the body into the blob store and creates the record.
// Any failure before the record exists leaves neither a blob nor a
// record behind; the worst a crash can leave is an orphan blob, which
// the next cleanup pass reclaims.
func (u *Uploader) Save(body io.Reader, req UploadRequest) (*UploadResult, error) {
	settings, err := u.Settings.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings, %w", err)
	}

	// A malformed caller expiry means "no expiry", it does not fall
	// back to the default. Only an absent one does
	var expiresAt *time.Time
	if req.Expires != "" {
		expiresAt = util.ParseExpiry(req.Expires)
	} else {
		expiresAt = util.ParseExpiry(settings.DefaultExpiry)
	}

	if !req.Privileged && expiresAt != nil {
		if max := util.ParseExpiry(settings.MaxExpiry); max != nil && expiresAt.After(*max) {
			expiresAt = max
		}
	}

	maxFileSize := util.ParseSize(settings.MaxFileSize)
	storageLimit := util.ParseSize(settings.StorageLimit)

	// Snapshot of what's stored right now. Not re-read per chunk, so
	// concurrent uploads racing the same limit can transiently exceed
	// it. Accepted for a single-admin deployment
	currentStorage, err := u.Files.TotalSize()
	if err != nil {
		return nil, fmt.Errorf("failed to read current storage usage, %w", err)
	}

	tmp, err := u.Blobs.CreateTemp()
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file, %w", err)
	}

	var size int64
	buf := make([]byte, chunkSize)

	for {
		n, rerr := body.Read(buf)
		if n > 0 {
			size += int64(n)

			if !req.Privileged {
				if maxFileSize > 0 && size > maxFileSize {
					u.Blobs.Discard(tmp)
					return nil, &QuotaError{Limit: "max_file_size", Configured: settings.MaxFileSize}
				}

				if storageLimit > 0 && currentStorage+size > storageLimit {
					u.Blobs.Discard(tmp)
					return nil, &QuotaError{Limit: "storage_limit", Configured: settings.StorageLimit}
				}
			}

			if _, werr := tmp.Write(buf[:n]); werr != nil {
				u.Blobs.Discard(tmp)
				return nil, fmt.Errorf("failed to write chunk, %w", werr)
			}
		}

		if rerr == io.EOF {
			break
		}

		// Aborted client connections surface here. Same outcome as a
		// quota violation: the temp file goes away
		if rerr != nil {
			u.Blobs.Discard(tmp)
			return nil, fmt.Errorf("failed to read request body, %w", rerr)
		}
	}

	code, err := GenerateCode(u.Files)
	if err != nil {
		u.Blobs.Discard(tmp)
		return nil, err
	}

	if err := u.Blobs.Promote(tmp, code, req.Filename); err != nil {
		return nil, err
	}

	// The upload key is checked only after the bytes are fully written.
	// That ordering matches the original deployment and is documented
	// behavior; reordering it would change what unauthenticated callers
	// observe
	if settings.UploadAPIKey != "" && !req.Privileged {
		if subtle.ConstantTimeCompare([]byte(req.UploadKey), []byte(settings.UploadAPIKey)) != 1 {
			if err := u.Blobs.Delete(code); err != nil {
				zap.L().Error("Failed to remove blob after rejected upload", zap.String("code", code), zap.Error(err))
			}
			return nil, ErrForbidden
		}
	}

	rec := &model.File{
		Code:         code,
		Filename:     req.Filename,
		StorageKey:   code + "/" + req.Filename,
		Size:         size,
		MaxDownloads: req.MaxDownloads,
		ExpiresAt:    expiresAt,
		CreatedAt:    time.Now().UTC(),
	}

	if err := u.Files.Create(rec); err != nil {
		// No record may exist without its blob and vice versa
		if derr := u.Blobs.Delete(code); derr != nil {
			zap.L().Error("Failed to remove blob after record creation failure", zap.String("code", code), zap.Error(derr))
		}
		return nil, fmt.Errorf("failed to create file record, %w", err)
	}

	return &UploadResult{
		URL:          req.BaseURL + "/" + code + "/" + req.Filename,
		Code:         code,
		Filename:     req.Filename,
		Size:         size,
		ExpiresAt:    expiresAt,
		MaxDownloads: req.MaxDownloads,
	}, nil
}
