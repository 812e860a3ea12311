package tests

import (
	"net/http"
	"testing"
	"time"
)

type auditEntry struct {
	ID        string         `json:"id"`
	Actor     string         `json:"actor"`
	Action    string         `json:"action"`
	Resource  string         `json:"resource"`
	Metadata  map[string]any `json:"metadata"`
	CreatedAt time.Time      `json:"created_at"`
}

type auditListData struct {
	Entries []auditEntry `json:"entries"`
	Total   int64        `json:"total"`
}

func TestAuditListRequiresAuthorizedRole(t *testing.T) {
	status, body := doJSON(t, http.MethodGet, "/api/v1/audit/entries", nil, "")
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", status, body)
	}

	_, sess := registeredSession(t)
	status, body = doJSON(t, http.MethodGet, "/api/v1/audit/entries", nil, sess.Token)
	if status != http.StatusForbidden {
		t.Fatalf("ordinary user must not read the audit log, got %d: %s", status, body)
	}
}

func TestAuditRecordsRegistration(t *testing.T) {
	headers := operatorHeaders(t)

	user := registerUser(t)

	// The entry arrives through the message queue; poll briefly.
	deadline := time.Now().Add(10 * time.Second)
	for {
		status, body := doJSONHeaders(t, http.MethodGet,
			"/api/v1/audit/entries?action=user.registered&actor="+user.ID, nil, headers)
		if status != http.StatusOK {
			t.Fatalf("list audit entries failed: %d: %s", status, body)
		}

		var data auditListData
		decodeSuccess(t, body, &data)
		if data.Total > 0 {
			e := data.Entries[0]
			if e.Resource != "user:"+user.ID {
				t.Fatalf("resource = %q, want %q", e.Resource, "user:"+user.ID)
			}
			return
		}

		if time.Now().After(deadline) {
			t.Fatal("registration audit entry never arrived")
		}
		time.Sleep(500 * time.Millisecond)
	}
}

func TestAuditArchiveEmptyDay(t *testing.T) {
	headers := operatorHeaders(t)

	status, body := doJSONHeaders(t, http.MethodPost, "/api/v1/audit/archives", map[string]string{
		"day": "1999-01-01",
	}, headers)
	if status != http.StatusNotFound {
		t.Fatalf("expected 404 for a day with no entries, got %d: %s", status, body)
	}
}

func TestAuditArchiveInvalidDay(t *testing.T) {
	headers := operatorHeaders(t)

	status, body := doJSONHeaders(t, http.MethodPost, "/api/v1/audit/archives", map[string]string{
		"day": "not-a-date",
	}, headers)
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", status, body)
	}
}
