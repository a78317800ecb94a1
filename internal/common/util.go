package common

import (
	"crypto/rand"
	"math/big"
)

const alphanumeric = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// MakeRandAlphanumeric returns a string of the given length drawn uniformly
// from [0-9A-Za-z] using crypto/rand.
func MakeRandAlphanumeric(length int) (string, error) {
	if length <= 0 {
		return "", nil
	}

	limit := big.NewInt(int64(len(alphanumeric)))
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		buf[i] = alphanumeric[n.Int64()]
	}
	return string(buf), nil
}

// GeneratePublicID returns a fresh externally visible user id.
func GeneratePublicID() (string, error) {
	return MakeRandAlphanumeric(PublicIDLength)
}

// WipeByteArray overwrites the contents of b with zeros. It is used to
// drop passwords from memory after use. A nil slice is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
