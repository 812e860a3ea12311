package secret

import (
	"crypto/rand"
	"math/big"
)

const (
	alphanumerics = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	digits        = "0123456789"

	// DefaultPasswordLength is used by PasswordGenerator for length <= 0.
	DefaultPasswordLength = 40
	// DefaultTokenLength is used by TokenGenerator for length <= 0.
	DefaultTokenLength = 256
	// DefaultCodeLength is used by CodeGenerator for length <= 0.
	DefaultCodeLength = 6
)

// PasswordGenerator returns a random alphanumeric string of exactly length
// characters.
func PasswordGenerator(length int) (string, error) {
	if length <= 0 {
		length = DefaultPasswordLength
	}
	return randomString(length, alphanumerics)
}

// TokenGenerator returns a random alphanumeric string of exactly length
// characters, sized for session and one-time token secrets.
func TokenGenerator(length int) (string, error) {
	if length <= 0 {
		length = DefaultTokenLength
	}
	return randomString(length, alphanumerics)
}

// CodeGenerator returns a random digits-only string of exactly length
// characters, for codes a user types by hand (phone/email verification).
func CodeGenerator(length int) (string, error) {
	if length <= 0 {
		length = DefaultCodeLength
	}
	return randomString(length, digits)
}

// randomString draws each character uniformly from charset via crypto/rand.
func randomString(length int, charset string) (string, error) {
	out := make([]byte, length)
	limit := big.NewInt(int64(len(charset)))

	for i := range out {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		out[i] = charset[n.Int64()]
	}

	return string(out), nil
}
