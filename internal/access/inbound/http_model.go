package inbound

import "time"

type RegisterRequest struct {
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	UserID string `json:"user_id"`
}

func (RegisterResponse) Message() string {
	return "Registration successful. Please check your email to verify your account."
}

type CreateSessionRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateSessionResponse struct {
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type SessionResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Provider  string    `json:"provider"`
	UserAgent string    `json:"user_agent,omitempty"`
	IP        string    `json:"ip,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Current   bool      `json:"current"`
}

type CreateTokenRequest struct {
	Email string `json:"email"`
	Type  string `json:"type"`
}

type CreateTokenResponse struct {
	TokenID   string     `json:"token_id,omitempty"`
	UserID    string     `json:"user_id,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Secret    string     `json:"secret,omitempty"`
}

func (CreateTokenResponse) Message() string {
	return "If an account with that email exists, a token has been issued."
}

type RedeemTokenRequest struct {
	UserID string `json:"user_id"`
	Type   string `json:"type"`
	Secret string `json:"secret"`
}

type RedeemTokenResponse struct {
	SessionToken string `json:"session_token,omitempty"`
	SessionID    string `json:"session_id,omitempty"`
}

type CreateJWTResponse struct {
	JWT string `json:"jwt"`
}

type RolesResponse struct {
	Roles []string `json:"roles"`
}

type CreateTeamRequest struct {
	Name string `json:"name"`
}

type CreateTeamResponse struct {
	TeamID       string `json:"team_id"`
	MembershipID string `json:"membership_id"`
}

type CreateMembershipRequest struct {
	Email string   `json:"email"`
	Roles []string `json:"roles,omitempty"`
}

type CreateMembershipResponse struct {
	MembershipID string    `json:"membership_id"`
	UserID       string    `json:"user_id"`
	ExpiresAt    time.Time `json:"expires_at"`
	Secret       string    `json:"secret,omitempty"`
}

func (CreateMembershipResponse) Message() string {
	return "Invitation created. The user must confirm it to activate the membership."
}

type ConfirmMembershipRequest struct {
	UserID string `json:"user_id"`
	Secret string `json:"secret"`
}
