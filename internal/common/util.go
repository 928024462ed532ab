package common

import (
	"crypto/rand"
	"encoding/base64"
)

// MakeRandURLSafeString generates an opaque random string of size bytes of
// entropy, encoded with the unpadded URL-safe base64 alphabet so the result
// can travel in a URL path segment. size=32 yields 256 bits of entropy in a
// 43-character string.
func MakeRandURLSafeString(size int) (string, error) {
	b := make([]byte, size)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}

// WipeByteArray overwrites the contents of the provided byte slice with zeros.
// This is useful for removing sensitive data such as passwords from memory
// after use.
//
// If the slice is nil, the function does nothing.
func WipeByteArray(b []byte) {
	if b == nil {
		return
	}
	for i := range b {
		b[i] = 0
	}
}
