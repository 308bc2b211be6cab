package impl

import (
	"crypto/rand"
	"encoding/base64"
	"math/big"

	"zentora/internal/errors"
)

const (
	verificationCodeDigits = 6
	opaqueCodeBytes        = 24
)

// generateNumericCode returns a zero-padded numeric one-time code.
func generateNumericCode(digits int) (string, error) {
	max := big.NewInt(1)
	for range digits {
		max.Mul(max, big.NewInt(10))
	}

	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate numeric code")
	}

	code := n.String()
	for len(code) < digits {
		code = "0" + code
	}

	return code, nil
}

// generateOpaqueCode returns a URL-safe random string for OAuth states
// and exchange codes.
func generateOpaqueCode(numBytes int) (string, error) {
	buf := make([]byte, numBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "failed to generate opaque code")
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}
