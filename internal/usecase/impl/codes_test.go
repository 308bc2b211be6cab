package impl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateNumericCode_Length(t *testing.T) {
	for range 50 {
		code, err := generateNumericCode(verificationCodeDigits)
		require.NoError(t, err)
		assert.Len(t, code, verificationCodeDigits)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9')
		}
	}
}

func TestGenerateOpaqueCode_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for range 50 {
		code, err := generateOpaqueCode(opaqueCodeBytes)
		require.NoError(t, err)
		assert.False(t, seen[code])
		seen[code] = true
	}
}
