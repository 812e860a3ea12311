package hash

import (
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// SHA3 implements Hash using a plain hex SHA3-512 digest.
//
// Imported digests were produced with SHA3-512, not SHA-2, so the variant is
// part of the stored wire format and pinned by fixtures in the tests.
type SHA3 struct{}

// Hash returns the hex SHA3-512 digest of plaintext.
func (*SHA3) Hash(plaintext string) ([]byte, error) {
	sum := sha3.Sum512([]byte(plaintext))
	out := make([]byte, hex.EncodedLen(len(sum)))
	hex.Encode(out, sum[:])
	return out, nil
}

// Verify recomputes the digest and compares.
func (s *SHA3) Verify(hashed, plaintext string) bool {
	computed, _ := s.Hash(plaintext)
	return subtle.ConstantTimeCompare([]byte(hashed), computed) == 1
}
