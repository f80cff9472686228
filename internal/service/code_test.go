package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCode(t *testing.T) {
	e := newTestEnv(t)

	seen := map[string]struct{}{}

	for i := 0; i < 50; i++ {
		code, err := GenerateCode(e.Files)
		require.NoError(t, err)
		assert.Len(t, code, codeLength)

		_, dup := seen[code]
		assert.False(t, dup, "duplicate code %q", code)
		seen[code] = struct{}{}
	}
}
