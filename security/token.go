package security

import (
	"crypto/rand"
	"encoding/hex"
)

// Token generates a cryptographically random token of n bytes, hex encoded.
func Token(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
