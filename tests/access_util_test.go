package tests

import (
	"fmt"
	"net/http"
	"testing"
	"time"
)

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@example.com", prefix, time.Now().UnixNano())
}

type testUser struct {
	ID       string
	Email    string
	Password string
}

type sessionData struct {
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func registerUser(t *testing.T) testUser {
	t.Helper()

	user := testUser{
		Email:    uniqueEmail("real-user"),
		Password: "Secret123!",
	}

	payload := map[string]string{
		"email":    user.Email,
		"password": user.Password,
	}

	status, body := doJSON(t, http.MethodPost, "/api/v1/access/users", payload, "")
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("register failed: status=%d message=%q", status, errEnv.Message)
	}

	var data struct {
		UserID string `json:"user_id"`
	}
	decodeSuccess(t, body, &data)
	if data.UserID == "" {
		t.Fatal("register response missing user_id")
	}
	user.ID = data.UserID

	return user
}

func createSession(t *testing.T, email, password string) sessionData {
	t.Helper()

	payload := map[string]string{
		"email":    email,
		"password": password,
	}

	status, body := doJSON(t, http.MethodPost, "/api/v1/access/sessions", payload, "")
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("create session failed: status=%d message=%q", status, errEnv.Message)
	}

	var data sessionData
	decodeSuccess(t, body, &data)
	if data.Token == "" {
		t.Fatal("create session response missing token")
	}

	return data
}

// registeredSession registers a fresh user and logs it in.
func registeredSession(t *testing.T) (testUser, sessionData) {
	t.Helper()

	user := registerUser(t)
	sess := createSession(t, user.Email, user.Password)

	return user, sess
}

// operatorHeaders returns headers carrying the operator secret, skipping the
// test when GOTRUST_OPERATOR_SECRET is not set.
func operatorHeaders(t *testing.T) map[string]string {
	t.Helper()

	if operatorSecret == "" {
		t.Skip("GOTRUST_OPERATOR_SECRET not set")
	}

	return map[string]string{"X-GoTrust-Operator": operatorSecret}
}

type tokenData struct {
	TokenID   string     `json:"token_id"`
	UserID    string     `json:"user_id"`
	ExpiresAt *time.Time `json:"expires_at"`
	Secret    string     `json:"secret"`
}

// createTokenAsOperator issues a token with the operator secret so the
// response discloses the plaintext secret.
func createTokenAsOperator(t *testing.T, email, typ string) tokenData {
	t.Helper()

	headers := operatorHeaders(t)
	payload := map[string]string{
		"email": email,
		"type":  typ,
	}

	status, body := doJSONHeaders(t, http.MethodPost, "/api/v1/access/tokens", payload, headers)
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("create token failed: status=%d message=%q", status, errEnv.Message)
	}

	var data tokenData
	decodeSuccess(t, body, &data)
	if data.Secret == "" {
		t.Fatal("create token response missing secret for privileged caller")
	}

	return data
}
