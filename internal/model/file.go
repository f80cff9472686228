// Package model defines database models
package model

import "time"

// File is one completed upload. A record only exists once the bytes
// are fully on disk, and is removed together with its storage either
// by an admin or by the cleanup pass.
type File struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Code string `gorm:"uniqueIndex;not null" json:"code"`

	// Original file name. Downloads must present it together with the
	// code, so guessing a code alone is not enough to fetch a file
	Filename string `gorm:"not null" json:"filename"`

	// Blob store key of the stored bytes, "<code>/<filename>"
	StorageKey string `gorm:"not null" json:"-"`

	Size int64 `json:"size"`

	// nil means unlimited
	MaxDownloads  *int64 `json:"max_downloads"`
	DownloadCount int64  `gorm:"not null;default:0" json:"download_count"`

	// nil means the file never expires
	ExpiresAt *time.Time `json:"expires_at"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
}
