package tests

import (
	"net/http"
	"testing"
)

func TestRegister(t *testing.T) {
	user := registerUser(t)
	if user.ID == "" {
		t.Fatal("expected user id")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	user := registerUser(t)

	payload := map[string]string{
		"email":    user.Email,
		"password": user.Password,
	}

	status, body := doJSON(t, http.MethodPost, "/api/v1/access/users", payload, "")
	if status != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", status, body)
	}
}

func TestRegisterValidation(t *testing.T) {
	cases := []struct {
		name    string
		payload map[string]string
	}{
		{"missing email", map[string]string{"password": "Secret123!"}},
		{"invalid email", map[string]string{"email": "not-an-email", "password": "Secret123!"}},
		{"short password", map[string]string{"email": uniqueEmail("short"), "password": "short"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := doJSON(t, http.MethodPost, "/api/v1/access/users", tc.payload, "")
			if status != http.StatusUnprocessableEntity && status != http.StatusBadRequest {
				t.Fatalf("expected validation error, got %d: %s", status, body)
			}
		})
	}
}
