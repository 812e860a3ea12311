package tests

import (
	"net/http"
	"slices"
	"testing"
)

func TestGetRolesAnonymous(t *testing.T) {
	status, body := doJSON(t, http.MethodGet, "/api/v1/access/roles", nil, "")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}

	var data struct {
		Roles []string `json:"roles"`
	}
	decodeSuccess(t, body, &data)

	if len(data.Roles) != 1 || data.Roles[0] != "guests" {
		t.Fatalf("expected [guests], got %v", data.Roles)
	}
}

func TestGetRolesAuthenticated(t *testing.T) {
	user, sess := registeredSession(t)

	status, body := doJSON(t, http.MethodGet, "/api/v1/access/roles", nil, sess.Token)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}

	var data struct {
		Roles []string `json:"roles"`
	}
	decodeSuccess(t, body, &data)

	for _, want := range []string{"user:" + user.ID, "users", "users/unverified", "user:" + user.ID + "/unverified"} {
		if !slices.Contains(data.Roles, want) {
			t.Fatalf("missing role %q in %v", want, data.Roles)
		}
	}
}

func TestGetRolesForOtherUserRequiresPrivilege(t *testing.T) {
	target := registerUser(t)
	_, sess := registeredSession(t)

	status, body := doJSON(t, http.MethodGet, "/api/v1/access/roles?user_id="+target.ID, nil, sess.Token)
	if status != http.StatusForbidden && status != http.StatusUnauthorized {
		t.Fatalf("expected 401/403, got %d: %s", status, body)
	}
}

func TestGetRolesForOtherUserAsOperator(t *testing.T) {
	target := registerUser(t)
	headers := operatorHeaders(t)

	status, body := doJSONHeaders(t, http.MethodGet, "/api/v1/access/roles?user_id="+target.ID, nil, headers)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}

	var data struct {
		Roles []string `json:"roles"`
	}
	decodeSuccess(t, body, &data)

	if !slices.Contains(data.Roles, "user:"+target.ID) {
		t.Fatalf("expected user role for %q, got %v", target.ID, data.Roles)
	}
}

func TestCreateJWT(t *testing.T) {
	_, sess := registeredSession(t)

	status, body := doJSON(t, http.MethodPost, "/api/v1/access/jwt", nil, sess.Token)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}

	var data struct {
		JWT string `json:"jwt"`
	}
	decodeSuccess(t, body, &data)
	if data.JWT == "" {
		t.Fatal("expected jwt")
	}

	// The JWT authenticates requests on its own.
	status, body = doJSONHeaders(t, http.MethodGet, "/api/v1/access/roles", nil, map[string]string{
		"Authorization": "Bearer " + data.JWT,
	})
	if status != http.StatusOK {
		t.Fatalf("expected 200 with jwt, got %d: %s", status, body)
	}

	var roles struct {
		Roles []string `json:"roles"`
	}
	decodeSuccess(t, body, &roles)
	if slices.Contains(roles.Roles, "guests") {
		t.Fatalf("jwt caller must not be a guest: %v", roles.Roles)
	}
}

func TestJWTDiesWithSession(t *testing.T) {
	_, sess := registeredSession(t)

	status, body := doJSON(t, http.MethodPost, "/api/v1/access/jwt", nil, sess.Token)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}

	var data struct {
		JWT string `json:"jwt"`
	}
	decodeSuccess(t, body, &data)

	status, body = doJSON(t, http.MethodDelete, "/api/v1/access/sessions/current", nil, sess.Token)
	if status != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", status, body)
	}

	status, body = doJSONHeaders(t, http.MethodGet, "/api/v1/access/roles", nil, map[string]string{
		"Authorization": "Bearer " + data.JWT,
	})
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}

	var roles struct {
		Roles []string `json:"roles"`
	}
	decodeSuccess(t, body, &roles)
	if !slices.Contains(roles.Roles, "guests") {
		t.Fatalf("jwt must stop resolving once its session is deleted, got %v", roles.Roles)
	}
}

func TestJWTRequiresSession(t *testing.T) {
	status, body := doJSON(t, http.MethodPost, "/api/v1/access/jwt", nil, "")
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", status, body)
	}
}
