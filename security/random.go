package security

import "math/rand"

// RandomString generates a random string of length s composed of lowercase
// letters, uppercase letters, and digits. It is suitable for identifiers,
// not for secrets; use Token for anything security sensitive.
func RandomString(s int) string {
	asciiLower := "abcdefghijklmnopqrstuvwxyz"
	asciiUpper := "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits := "0123456789"
	chars := []rune(asciiLower + asciiUpper + digits)
	r := make([]rune, s)
	for i := range r {
		r[i] = chars[rand.Intn(len(chars))]
	}
	return string(r)
}
