package utils

import (
	"crypto/rand"
	"math/big"
)

// Ambiguous characters (0, O, l, 1) are left out.
const alphanumeric = "abcdefghjkmnpqrstuvwxyz23456789"

// GenerateRandomString returns a random string of n characters, used for
// password reset tokens.
func GenerateRandomString(n int) string {
	result := make([]byte, n)
	for i := 0; i < n; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphanumeric))))
		if err != nil {
			result[i] = alphanumeric[i%len(alphanumeric)]
			continue
		}
		result[i] = alphanumeric[num.Int64()]
	}
	return string(result)
}
