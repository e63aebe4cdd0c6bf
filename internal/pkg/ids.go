package pkg

import (
	"crypto/rand"
	"encoding/base64"
	"math/big"
)

// GenerateNewSessionID - generates a random url-safe player session id.
func GenerateNewSessionID() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "error-generating-session-id"
	}

	return base64.RawURLEncoding.EncodeToString(b)
}

// GenerateGameID - generates a numeric game id.
func GenerateGameID() string {
	n, err := rand.Int(rand.Reader, big.NewInt(99999999))
	if err != nil {
		return ""
	}

	return n.String()
}
