package secret

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest returns the fixed SHA-256 hex digest (64 characters) used to index
// and compare session and token secrets.
//
// Deterministic and unsalted by design; see the package comment.
func Digest(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}
