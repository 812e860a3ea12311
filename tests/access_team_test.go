package tests

import (
	"net/http"
	"slices"
	"testing"
	"time"
)

func createTeam(t *testing.T, sessionToken, name string) (teamID, membershipID string) {
	t.Helper()

	status, body := doJSON(t, http.MethodPost, "/api/v1/access/teams", map[string]string{"name": name}, sessionToken)
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("create team failed: status=%d message=%q", status, errEnv.Message)
	}

	var data struct {
		TeamID       string `json:"team_id"`
		MembershipID string `json:"membership_id"`
	}
	decodeSuccess(t, body, &data)
	if data.TeamID == "" || data.MembershipID == "" {
		t.Fatal("create team response missing ids")
	}

	return data.TeamID, data.MembershipID
}

func TestCreateTeamGrantsOwnerRoles(t *testing.T) {
	_, sess := registeredSession(t)
	teamID, membershipID := createTeam(t, sess.Token, "real-team-"+time.Now().Format("150405.000"))

	status, body := doJSON(t, http.MethodGet, "/api/v1/access/roles", nil, sess.Token)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}

	var data struct {
		Roles []string `json:"roles"`
	}
	decodeSuccess(t, body, &data)

	for _, want := range []string{"team:" + teamID, "member:" + membershipID, "team:" + teamID + "/owner"} {
		if !slices.Contains(data.Roles, want) {
			t.Fatalf("missing role %q in %v", want, data.Roles)
		}
	}
}

func TestCreateTeamUnauthenticated(t *testing.T) {
	status, body := doJSON(t, http.MethodPost, "/api/v1/access/teams", map[string]string{"name": "nope"}, "")
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", status, body)
	}
}

func TestMembershipInviteAndConfirm(t *testing.T) {
	headers := operatorHeaders(t)

	_, owner := registeredSession(t)
	teamID, _ := createTeam(t, owner.Token, "real-invite-"+time.Now().Format("150405.000"))

	invitee, inviteeSess := registeredSession(t)

	payload := map[string]any{
		"email": invitee.Email,
		"roles": []string{"editor"},
	}

	status, body := doJSONHeaders(t, http.MethodPost, "/api/v1/access/teams/"+teamID+"/memberships", payload, headers)
	if status != http.StatusOK {
		t.Fatalf("create membership failed: %d: %s", status, body)
	}

	var invite struct {
		MembershipID string `json:"membership_id"`
		UserID       string `json:"user_id"`
		Secret       string `json:"secret"`
	}
	decodeSuccess(t, body, &invite)
	if invite.Secret == "" {
		t.Fatal("operator must receive the invite secret")
	}
	if invite.UserID != invitee.ID {
		t.Fatalf("invite user mismatch: got %q want %q", invite.UserID, invitee.ID)
	}

	// Unconfirmed memberships grant no team roles.
	status, body = doJSON(t, http.MethodGet, "/api/v1/access/roles", nil, inviteeSess.Token)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}
	var before struct {
		Roles []string `json:"roles"`
	}
	decodeSuccess(t, body, &before)
	if slices.Contains(before.Roles, "team:"+teamID) {
		t.Fatalf("unconfirmed membership leaked team role: %v", before.Roles)
	}

	confirm := map[string]string{
		"user_id": invitee.ID,
		"secret":  invite.Secret,
	}
	status, body = doJSON(t, http.MethodPatch, "/api/v1/access/memberships/"+invite.MembershipID+"/confirm", confirm, inviteeSess.Token)
	if status != http.StatusNoContent {
		t.Fatalf("confirm membership failed: %d: %s", status, body)
	}

	status, body = doJSON(t, http.MethodGet, "/api/v1/access/roles", nil, inviteeSess.Token)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}
	var after struct {
		Roles []string `json:"roles"`
	}
	decodeSuccess(t, body, &after)

	for _, want := range []string{"team:" + teamID, "member:" + invite.MembershipID, "team:" + teamID + "/editor"} {
		if !slices.Contains(after.Roles, want) {
			t.Fatalf("missing role %q in %v", want, after.Roles)
		}
	}
}

func TestMembershipConfirmWrongUser(t *testing.T) {
	headers := operatorHeaders(t)

	_, owner := registeredSession(t)
	teamID, _ := createTeam(t, owner.Token, "real-wrong-"+time.Now().Format("150405.000"))

	invitee := registerUser(t)
	stranger, strangerSess := registeredSession(t)

	status, body := doJSONHeaders(t, http.MethodPost, "/api/v1/access/teams/"+teamID+"/memberships", map[string]any{
		"email": invitee.Email,
	}, headers)
	if status != http.StatusOK {
		t.Fatalf("create membership failed: %d: %s", status, body)
	}

	var invite struct {
		MembershipID string `json:"membership_id"`
		Secret       string `json:"secret"`
	}
	decodeSuccess(t, body, &invite)

	status, body = doJSON(t, http.MethodPatch, "/api/v1/access/memberships/"+invite.MembershipID+"/confirm", map[string]string{
		"user_id": stranger.ID,
		"secret":  invite.Secret,
	}, strangerSess.Token)
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", status, body)
	}
}
