// Package validators holds request input validation
package validators

import (
	"errors"
	"strings"
)

var (
	ErrNoFilename      = errors.New("no filename provided")
	ErrFilenameTooLong = errors.New("filename is too long")
	ErrFilenameInvalid = errors.New("filename contains invalid characters")
)

const maxFilenameLen = 255

// FilenameValidator rejects names that can't safely become part of a
// path inside the blob store
func FilenameValidator(name string) error {
	if name == "" || name == "." || name == ".." {
		return ErrNoFilename
	}

	if len(name) > maxFilenameLen {
		return ErrFilenameTooLong
	}

	if strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return ErrFilenameInvalid
	}

	return nil
}
