package tests

import (
	"net/http"
	"testing"
)

func TestCreateSession(t *testing.T) {
	user, sess := registeredSession(t)

	if sess.UserID != user.ID {
		t.Fatalf("session user mismatch: got %q want %q", sess.UserID, user.ID)
	}
	if sess.SessionID == "" || sess.Token == "" {
		t.Fatal("expected session id and token")
	}
	if sess.ExpiresAt.IsZero() {
		t.Fatal("expected expiry")
	}
}

func TestCreateSessionWrongPassword(t *testing.T) {
	user := registerUser(t)

	payload := map[string]string{
		"email":    user.Email,
		"password": "WrongPassword1!",
	}

	status, body := doJSON(t, http.MethodPost, "/api/v1/access/sessions", payload, "")
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", status, body)
	}
}

func TestCreateSessionUnknownEmail(t *testing.T) {
	payload := map[string]string{
		"email":    uniqueEmail("nobody"),
		"password": "Secret123!",
	}

	status, body := doJSON(t, http.MethodPost, "/api/v1/access/sessions", payload, "")
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", status, body)
	}

	// The message must not reveal whether the account exists.
	errEnv := decodeError(t, body)
	if errEnv.Message == "" {
		t.Fatal("expected error message")
	}
}

func TestGetCurrentSession(t *testing.T) {
	user, sess := registeredSession(t)

	status, body := doJSON(t, http.MethodGet, "/api/v1/access/sessions/current", nil, sess.Token)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}

	var data struct {
		ID      string `json:"id"`
		UserID  string `json:"user_id"`
		Current bool   `json:"current"`
	}
	decodeSuccess(t, body, &data)

	if data.ID != sess.SessionID {
		t.Fatalf("session id mismatch: got %q want %q", data.ID, sess.SessionID)
	}
	if data.UserID != user.ID {
		t.Fatalf("user id mismatch: got %q want %q", data.UserID, user.ID)
	}
	if !data.Current {
		t.Fatal("expected current flag")
	}
}

func TestGetSessionUnauthenticated(t *testing.T) {
	status, body := doJSON(t, http.MethodGet, "/api/v1/access/sessions/current", nil, "")
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", status, body)
	}
}

func TestDeleteCurrentSession(t *testing.T) {
	_, sess := registeredSession(t)

	status, body := doJSON(t, http.MethodDelete, "/api/v1/access/sessions/current", nil, sess.Token)
	if status != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", status, body)
	}

	// The token must stop resolving once its session is gone.
	status, body = doJSON(t, http.MethodGet, "/api/v1/access/sessions/current", nil, sess.Token)
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d: %s", status, body)
	}
}

func TestDeleteAllSessions(t *testing.T) {
	user, first := registeredSession(t)
	second := createSession(t, user.Email, user.Password)

	status, body := doJSON(t, http.MethodDelete, "/api/v1/access/sessions", nil, first.Token)
	if status != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", status, body)
	}

	for _, token := range []string{first.Token, second.Token} {
		status, body = doJSON(t, http.MethodGet, "/api/v1/access/sessions/current", nil, token)
		if status != http.StatusUnauthorized {
			t.Fatalf("expected 401 after logout all, got %d: %s", status, body)
		}
	}
}
