package service

import (
	"github.com/Saurav-Paul/drop/internal/store"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	codeLength = 6

	// Collisions are vanishingly rare at this scale, the retry loop
	// exists for correctness. The cap only guards against a pathological
	// database, hitting it returns ErrCodeSpaceExhausted
	maxCodeAttempts = 100
)

// GenerateCode produces a short URL-safe code that is guaranteed not
// to collide with any existing record at the time of the check
func GenerateCode(files *store.FileStore) (string, error) {
	for i := 0; i < maxCodeAttempts; i++ {
		code, err := gonanoid.New(codeLength)
		if err != nil {
			return "", err
		}

		exists, err := files.CodeExists(code)
		if err != nil {
			return "", err
		}

		if !exists {
			return code, nil
		}
	}

	return "", ErrCodeSpaceExhausted
}
