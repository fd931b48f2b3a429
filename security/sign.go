package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"strings"
)

// Sign appends an HMAC-SHA256 signature to value, producing
// "value.signature" with the signature base64url encoded.
func Sign(secret []byte, value string) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(value))
	sig := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
	return value + "." + sig
}

// Verify checks a value produced by Sign and returns the original value.
// It reports false for malformed input or a signature mismatch.
func Verify(secret []byte, signed string) (string, bool) {
	i := strings.LastIndex(signed, ".")
	if i < 0 {
		return "", false
	}
	value := signed[:i]
	expected := Sign(secret, value)
	if subtle.ConstantTimeCompare([]byte(expected), []byte(signed)) != 1 {
		return "", false
	}
	return value, true
}
