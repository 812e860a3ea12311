package inbound

import (
	"github.com/shandysiswandi/gotrust/internal/access/usecase"
	"github.com/shandysiswandi/gotrust/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for account, session, token and team
// workflows.
type HTTPEndpoint struct {
	uc uc
}

// Register creates a new user account.
// @Summary Register user
// @Description Creates a user, hashes the password with the configured algorithm and issues an email verification token.
// @Tags Access, Account
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration payload"
// @Success 200 {object} router.successResponse{data=RegisterResponse} "Registration result"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 409 {object} router.errorResponse "Email already registered"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/access/users [post]
func (h *HTTPEndpoint) Register(r *router.Request) (any, error) {
	var req RegisterRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Register(r.Context(), usecase.RegisterInput{
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return RegisterResponse{UserID: resp.UserID}, nil
}

// CreateSession authenticates a user with email and password.
// @Summary Create session
// @Description Validates credentials and returns an opaque session token. Only a digest of the session secret is stored.
// @Tags Access, Sessions
// @Accept json
// @Produce json
// @Param request body CreateSessionRequest true "Login payload"
// @Success 200 {object} router.successResponse{data=CreateSessionResponse} "Session result"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Invalid credentials"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/access/sessions [post]
func (h *HTTPEndpoint) CreateSession(r *router.Request) (any, error) {
	var req CreateSessionRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.CreateSession(r.Context(), usecase.CreateSessionInput{
		Email:     req.Email,
		Password:  req.Password,
		IP:        r.RemoteAddr,
		UserAgent: r.UserAgent(),
	})
	if err != nil {
		return nil, err
	}

	return CreateSessionResponse{
		SessionID: resp.SessionID,
		UserID:    resp.UserID,
		Token:     resp.Token,
		ExpiresAt: resp.ExpiresAt,
	}, nil
}

// GetSession returns one of the caller's sessions.
// @Summary Get session
// @Description Returns a session by ID; "current" refers to the session used to authenticate this request.
// @Tags Access, Sessions
// @Produce json
// @Param id path string true "Session ID or 'current'"
// @Success 200 {object} router.successResponse{data=SessionResponse} "Session detail"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 404 {object} router.errorResponse "Session not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/access/sessions/{id} [get]
func (h *HTTPEndpoint) GetSession(r *router.Request) (any, error) {
	resp, err := h.uc.GetSession(r.Context(), usecase.GetSessionInput{ID: r.GetParam("id")})
	if err != nil {
		return nil, err
	}

	return SessionResponse{
		ID:        resp.ID,
		UserID:    resp.UserID,
		Provider:  resp.Provider,
		UserAgent: resp.UserAgent,
		IP:        resp.IP,
		CreatedAt: resp.CreatedAt,
		ExpiresAt: resp.ExpiresAt,
		Current:   resp.Current,
	}, nil
}

// DeleteSession logs out one session.
// @Summary Delete session
// @Description Deletes a session by ID; "current" logs out the session used for this request.
// @Tags Access, Sessions
// @Produce json
// @Param id path string true "Session ID or 'current'"
// @Success 204 "Session deleted"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 404 {object} router.errorResponse "Session not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/access/sessions/{id} [delete]
func (h *HTTPEndpoint) DeleteSession(r *router.Request) (any, error) {
	if err := h.uc.DeleteSession(r.Context(), usecase.DeleteSessionInput{ID: r.GetParam("id")}); err != nil {
		return nil, err
	}

	return nil, nil
}

// DeleteSessions logs out everywhere.
// @Summary Delete all sessions
// @Description Deletes every session of the authenticated user.
// @Tags Access, Sessions
// @Produce json
// @Success 204 "Sessions deleted"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/access/sessions [delete]
func (h *HTTPEndpoint) DeleteSessions(r *router.Request) (any, error) {
	if err := h.uc.DeleteSessions(r.Context()); err != nil {
		return nil, err
	}

	return nil, nil
}

// CreateToken issues a typed one-time token.
// @Summary Create token
// @Description Issues a verification, recovery, magic-url or phone token. The response never reveals whether the email exists.
// @Tags Access, Tokens
// @Accept json
// @Produce json
// @Param request body CreateTokenRequest true "Token payload"
// @Success 200 {object} router.successResponse{data=CreateTokenResponse} "Token result"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/access/tokens [post]
func (h *HTTPEndpoint) CreateToken(r *router.Request) (any, error) {
	var req CreateTokenRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.CreateToken(r.Context(), usecase.CreateTokenInput{
		Email: req.Email,
		Type:  req.Type,
	})
	if err != nil {
		return nil, err
	}

	out := CreateTokenResponse{
		TokenID: resp.TokenID,
		UserID:  resp.UserID,
		Secret:  resp.Secret,
	}
	if !resp.ExpiresAt.IsZero() {
		out.ExpiresAt = &resp.ExpiresAt
	}

	return out, nil
}

// RedeemToken consumes a one-time token.
// @Summary Redeem token
// @Description Verifies and consumes a one-time token; depending on its type this verifies a channel or opens a session.
// @Tags Access, Tokens
// @Accept json
// @Produce json
// @Param request body RedeemTokenRequest true "Redemption payload"
// @Success 200 {object} router.successResponse{data=RedeemTokenResponse} "Redemption result"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Invalid or expired token"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/access/tokens/redeem [post]
func (h *HTTPEndpoint) RedeemToken(r *router.Request) (any, error) {
	var req RedeemTokenRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.RedeemToken(r.Context(), usecase.RedeemTokenInput{
		UserID: req.UserID,
		Type:   req.Type,
		Secret: req.Secret,
	})
	if err != nil {
		return nil, err
	}

	return RedeemTokenResponse{
		SessionToken: resp.SessionToken,
		SessionID:    resp.SessionID,
	}, nil
}

// CreateJWT mints a short-lived JWT from the current session.
// @Summary Create JWT
// @Description Mints a JWT bound to the current session. It stops verifying when the session is deleted.
// @Tags Access, Tokens
// @Produce json
// @Success 200 {object} router.successResponse{data=CreateJWTResponse} "JWT result"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 403 {object} router.errorResponse "No session bound to this request"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/access/jwt [post]
func (h *HTTPEndpoint) CreateJWT(r *router.Request) (any, error) {
	resp, err := h.uc.CreateJWT(r.Context())
	if err != nil {
		return nil, err
	}

	return CreateJWTResponse{JWT: resp.JWT}, nil
}

// GetRoles returns the caller's derived role set.
// @Summary Get roles
// @Description Returns the role strings the permission engine sees for this request. Privileged and machine callers may pass user_id to inspect another account.
// @Tags Access, Roles
// @Produce json
// @Param user_id query string false "Derive roles for this user (privileged callers only)"
// @Success 200 {object} router.successResponse{data=RolesResponse} "Role set"
// @Failure 403 {object} router.errorResponse "Not allowed"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/access/roles [get]
func (h *HTTPEndpoint) GetRoles(r *router.Request) (any, error) {
	resp, err := h.uc.GetRoles(r.Context(), usecase.GetRolesInput{UserID: r.GetQuery("user_id")})
	if err != nil {
		return nil, err
	}

	return RolesResponse{Roles: resp.Roles}, nil
}

// CreateTeam creates a team owned by the caller.
// @Summary Create team
// @Description Creates a team and a confirmed owner membership for the caller.
// @Tags Access, Teams
// @Accept json
// @Produce json
// @Param request body CreateTeamRequest true "Team payload"
// @Success 200 {object} router.successResponse{data=CreateTeamResponse} "Team result"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 409 {object} router.errorResponse "Team already exists"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/access/teams [post]
func (h *HTTPEndpoint) CreateTeam(r *router.Request) (any, error) {
	var req CreateTeamRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.CreateTeam(r.Context(), usecase.CreateTeamInput{Name: req.Name})
	if err != nil {
		return nil, err
	}

	return CreateTeamResponse{TeamID: resp.TeamID, MembershipID: resp.MembershipID}, nil
}

// CreateMembership invites a user into a team.
// @Summary Create membership
// @Description Creates an unconfirmed membership and an invite token. Unconfirmed memberships grant no roles.
// @Tags Access, Teams
// @Accept json
// @Produce json
// @Param teamId path string true "Team ID"
// @Param request body CreateMembershipRequest true "Invitation payload"
// @Success 200 {object} router.successResponse{data=CreateMembershipResponse} "Invitation result"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 403 {object} router.errorResponse "Not allowed"
// @Failure 404 {object} router.errorResponse "User not found"
// @Failure 409 {object} router.errorResponse "Already a member"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/access/teams/{teamId}/memberships [post]
func (h *HTTPEndpoint) CreateMembership(r *router.Request) (any, error) {
	var req CreateMembershipRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.CreateMembership(r.Context(), usecase.CreateMembershipInput{
		TeamID: r.GetParam("teamId"),
		Email:  req.Email,
		Roles:  req.Roles,
	})
	if err != nil {
		return nil, err
	}

	return CreateMembershipResponse{
		MembershipID: resp.MembershipID,
		UserID:       resp.UserID,
		ExpiresAt:    resp.ExpiresAt,
		Secret:       resp.Secret,
	}, nil
}

// ConfirmMembership redeems an invite token.
// @Summary Confirm membership
// @Description Confirms a membership with its invite token, activating the team roles it grants.
// @Tags Access, Teams
// @Accept json
// @Produce json
// @Param id path string true "Membership ID"
// @Param request body ConfirmMembershipRequest true "Confirmation payload"
// @Success 204 "Membership confirmed"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Invalid or expired token"
// @Failure 404 {object} router.errorResponse "Membership not found"
// @Failure 409 {object} router.errorResponse "Already confirmed"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/access/memberships/{id}/confirm [patch]
func (h *HTTPEndpoint) ConfirmMembership(r *router.Request) (any, error) {
	var req ConfirmMembershipRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.ConfirmMembership(r.Context(), usecase.ConfirmMembershipInput{
		MembershipID: r.GetParam("id"),
		UserID:       req.UserID,
		Secret:       req.Secret,
	}); err != nil {
		return nil, err
	}

	return nil, nil
}
