package entity

import (
	"crypto/subtle"
	"time"

	"github.com/shandysiswandi/gotrust/internal/pkg/secret"
)

// VerifySession returns the ID of the first session whose stored digest
// matches the presented secret and which is still inside the validity window
// (strictly before CreatedAt + window). A non-positive window expires
// everything.
//
// The miss result ("", false) is deliberately uniform: wrong secret, expired
// session and empty input are indistinguishable to the caller.
func VerifySession(sessions []Session, plaintext string, window time.Duration, now time.Time) (string, bool) {
	digest := secret.Digest(plaintext)

	for _, s := range sessions {
		if !digestEqual(s.SecretDigest, digest) {
			continue
		}
		if !now.Before(s.CreatedAt.Add(window)) {
			continue
		}
		return s.ID, true
	}

	return "", false
}

// VerifyToken returns the ID of the first token of the given type whose
// stored digest matches the presented secret and whose stored expiry is
// strictly in the future. Miss semantics match VerifySession.
func VerifyToken(tokens []Token, typ TokenType, plaintext string, now time.Time) (string, bool) {
	digest := secret.Digest(plaintext)

	for _, t := range tokens {
		if t.Type != typ {
			continue
		}
		if !digestEqual(t.SecretDigest, digest) {
			continue
		}
		if !now.Before(t.ExpiresAt) {
			continue
		}
		return t.ID, true
	}

	return "", false
}

func digestEqual(stored, computed string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(computed)) == 1
}
