package hash

import (
	"crypto/md5" //nolint:gosec // legacy import compatibility only
	"crypto/subtle"
	"encoding/hex"
)

// MD5 implements Hash for legacy md5 password imports.
//
// Never use for new records; it exists so imported accounts keep working
// until their next successful login triggers a rehash.
type MD5 struct{}

// Hash returns the hex md5 digest of plaintext.
func (*MD5) Hash(plaintext string) ([]byte, error) {
	sum := md5.Sum([]byte(plaintext)) //nolint:gosec // see type comment
	out := make([]byte, hex.EncodedLen(len(sum)))
	hex.Encode(out, sum[:])
	return out, nil
}

// Verify recomputes the digest and compares.
func (m *MD5) Verify(hashed, plaintext string) bool {
	computed, _ := m.Hash(plaintext)
	return subtle.ConstantTimeCompare([]byte(hashed), computed) == 1
}
