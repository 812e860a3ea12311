package tests

import (
	"net/http"
	"testing"
)

func TestCreateTokenHidesSecretFromAnonymous(t *testing.T) {
	user := registerUser(t)

	payload := map[string]string{
		"email": user.Email,
		"type":  "recovery",
	}

	status, body := doJSON(t, http.MethodPost, "/api/v1/access/tokens", payload, "")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}

	var data tokenData
	decodeSuccess(t, body, &data)
	if data.Secret != "" {
		t.Fatal("secret must not be disclosed to anonymous callers")
	}
}

func TestCreateTokenUnknownEmail(t *testing.T) {
	payload := map[string]string{
		"email": uniqueEmail("nobody"),
		"type":  "recovery",
	}

	// Unknown emails get the same 200 as known ones.
	status, body := doJSON(t, http.MethodPost, "/api/v1/access/tokens", payload, "")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}
}

func TestCreateTokenRejectsInvite(t *testing.T) {
	user := registerUser(t)

	payload := map[string]string{
		"email": user.Email,
		"type":  "invite",
	}

	status, body := doJSON(t, http.MethodPost, "/api/v1/access/tokens", payload, "")
	if status == http.StatusOK {
		t.Fatalf("invite tokens must come from membership invitations, got 200: %s", body)
	}
}

func TestRedeemRecoveryToken(t *testing.T) {
	user := registerUser(t)
	token := createTokenAsOperator(t, user.Email, "recovery")

	payload := map[string]string{
		"user_id": user.ID,
		"type":    "recovery",
		"secret":  token.Secret,
	}

	status, body := doJSON(t, http.MethodPost, "/api/v1/access/tokens/redeem", payload, "")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}

	var data struct {
		SessionToken string `json:"session_token"`
		SessionID    string `json:"session_id"`
	}
	decodeSuccess(t, body, &data)
	if data.SessionToken == "" || data.SessionID == "" {
		t.Fatal("recovery redemption must open a session")
	}

	// The minted session is usable.
	status, body = doJSON(t, http.MethodGet, "/api/v1/access/sessions/current", nil, data.SessionToken)
	if status != http.StatusOK {
		t.Fatalf("expected 200 with redeemed session, got %d: %s", status, body)
	}
}

func TestRedeemTokenSingleUse(t *testing.T) {
	user := registerUser(t)
	token := createTokenAsOperator(t, user.Email, "recovery")

	payload := map[string]string{
		"user_id": user.ID,
		"type":    "recovery",
		"secret":  token.Secret,
	}

	status, body := doJSON(t, http.MethodPost, "/api/v1/access/tokens/redeem", payload, "")
	if status != http.StatusOK {
		t.Fatalf("first redemption expected 200, got %d: %s", status, body)
	}

	status, body = doJSON(t, http.MethodPost, "/api/v1/access/tokens/redeem", payload, "")
	if status != http.StatusUnauthorized {
		t.Fatalf("second redemption expected 401, got %d: %s", status, body)
	}
}

func TestRedeemTokenWrongSecret(t *testing.T) {
	user := registerUser(t)
	createTokenAsOperator(t, user.Email, "recovery")

	payload := map[string]string{
		"user_id": user.ID,
		"type":    "recovery",
		"secret":  "definitely-not-the-secret",
	}

	status, body := doJSON(t, http.MethodPost, "/api/v1/access/tokens/redeem", payload, "")
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", status, body)
	}
}

func TestRedeemVerificationTokenMarksEmailVerified(t *testing.T) {
	user := registerUser(t)
	token := createTokenAsOperator(t, user.Email, "verification")

	payload := map[string]string{
		"user_id": user.ID,
		"type":    "verification",
		"secret":  token.Secret,
	}

	status, body := doJSON(t, http.MethodPost, "/api/v1/access/tokens/redeem", payload, "")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}

	// Verification flips the role dimension from unverified to verified.
	sess := createSession(t, user.Email, user.Password)
	status, body = doJSON(t, http.MethodGet, "/api/v1/access/roles", nil, sess.Token)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}

	var data struct {
		Roles []string `json:"roles"`
	}
	decodeSuccess(t, body, &data)

	found := false
	for _, r := range data.Roles {
		if r == "users/verified" {
			found = true
		}
		if r == "users/unverified" {
			t.Fatalf("verified user still carries unverified role: %v", data.Roles)
		}
	}
	if !found {
		t.Fatalf("expected users/verified role, got %v", data.Roles)
	}
}
