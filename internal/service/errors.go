// Package service holds the upload, download and cleanup logic
package service

import (
	"errors"
	"fmt"
)

var (
	// ErrForbidden means an upload key is configured and the caller
	// supplied a missing or wrong one
	ErrForbidden = errors.New("invalid upload key")

	// ErrCodeSpaceExhausted means code generation kept colliding until
	// the attempt cap. Practically unreachable with a 6 character code
	ErrCodeSpaceExhausted = errors.New("code space exhausted")
)

// QuotaError is returned when a streaming upload hits a configured
// limit mid-stream. It carries which limit was violated so the caller
// can tell a too-large file from a full server
type QuotaError struct {
	// Limit is "max_file_size" or "storage_limit"
	Limit      string
	Configured string
}

func (e *QuotaError) Error() string {
	if e.Limit == "storage_limit" {
		return fmt.Sprintf("storage limit of %s would be exceeded", e.Configured)
	}
	return fmt.Sprintf("file exceeds max size of %s", e.Configured)
}
