package entity

import (
	"testing"
	"time"

	"github.com/shandysiswandi/gotrust/internal/pkg/secret"
)

func TestVerifySession(t *testing.T) {
	now := time.Now()
	sessions := []Session{
		{ID: "stale", SecretDigest: secret.Digest("other-secret"), CreatedAt: now.Add(-48 * time.Hour)},
		{ID: "current", SecretDigest: secret.Digest("session-secret"), CreatedAt: now.Add(-time.Hour)},
	}

	t.Run("valid secret inside window", func(t *testing.T) {
		id, ok := VerifySession(sessions, "session-secret", 24*time.Hour, now)
		if !ok || id != "current" {
			t.Fatalf("VerifySession = (%q, %t), want (current, true)", id, ok)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		if id, ok := VerifySession(sessions, "nope", 24*time.Hour, now); ok {
			t.Fatalf("VerifySession = (%q, true), want miss", id)
		}
	})

	t.Run("expired by window", func(t *testing.T) {
		if id, ok := VerifySession(sessions, "session-secret", 30*time.Minute, now); ok {
			t.Fatalf("VerifySession = (%q, true), want miss", id)
		}
	})

	t.Run("negative window expires everything", func(t *testing.T) {
		if _, ok := VerifySession(sessions, "session-secret", -time.Hour, now); ok {
			t.Fatal("negative window must never validate")
		}
	})

	t.Run("expiry boundary is exclusive", func(t *testing.T) {
		boundary := []Session{{ID: "s", SecretDigest: secret.Digest("x"), CreatedAt: now.Add(-time.Hour)}}
		if _, ok := VerifySession(boundary, "x", time.Hour, now); ok {
			t.Fatal("session expiring exactly now must be invalid")
		}
	})

	t.Run("no sessions", func(t *testing.T) {
		if _, ok := VerifySession(nil, "session-secret", 24*time.Hour, now); ok {
			t.Fatal("empty session list must miss")
		}
	})
}

func TestVerifyToken(t *testing.T) {
	now := time.Now()
	tokens := []Token{
		{ID: "expired", Type: TokenTypeRecovery, SecretDigest: secret.Digest("old"), ExpiresAt: now.Add(-time.Minute)},
		{ID: "recovery", Type: TokenTypeRecovery, SecretDigest: secret.Digest("reset-me"), ExpiresAt: now.Add(time.Hour)},
		{ID: "invite", Type: TokenTypeInvite, SecretDigest: secret.Digest("join-us"), ExpiresAt: now.Add(time.Hour)},
	}

	t.Run("matching type and secret", func(t *testing.T) {
		id, ok := VerifyToken(tokens, TokenTypeRecovery, "reset-me", now)
		if !ok || id != "recovery" {
			t.Fatalf("VerifyToken = (%q, %t), want (recovery, true)", id, ok)
		}
	})

	t.Run("right secret wrong type", func(t *testing.T) {
		if id, ok := VerifyToken(tokens, TokenTypeInvite, "reset-me", now); ok {
			t.Fatalf("VerifyToken = (%q, true), want miss", id)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		if _, ok := VerifyToken(tokens, TokenTypeRecovery, "old", now); ok {
			t.Fatal("expired token must miss")
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		if _, ok := VerifyToken(tokens, TokenTypeRecovery, "guess", now); ok {
			t.Fatal("wrong secret must miss")
		}
	})
}
