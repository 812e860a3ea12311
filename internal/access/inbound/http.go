package inbound

import (
	"context"

	"github.com/shandysiswandi/gotrust/internal/access/usecase"
	"github.com/shandysiswandi/gotrust/internal/pkg/router"
)

type uc interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*usecase.RegisterOutput, error)

	CreateSession(ctx context.Context, in usecase.CreateSessionInput) (*usecase.CreateSessionOutput, error)
	GetSession(ctx context.Context, in usecase.GetSessionInput) (*usecase.GetSessionOutput, error)
	DeleteSession(ctx context.Context, in usecase.DeleteSessionInput) error
	DeleteSessions(ctx context.Context) error

	CreateToken(ctx context.Context, in usecase.CreateTokenInput) (*usecase.CreateTokenOutput, error)
	RedeemToken(ctx context.Context, in usecase.RedeemTokenInput) (*usecase.RedeemTokenOutput, error)

	CreateJWT(ctx context.Context) (*usecase.CreateJWTOutput, error)
	GetRoles(ctx context.Context, in usecase.GetRolesInput) (*usecase.GetRolesOutput, error)

	CreateTeam(ctx context.Context, in usecase.CreateTeamInput) (*usecase.CreateTeamOutput, error)
	CreateMembership(ctx context.Context, in usecase.CreateMembershipInput) (*usecase.CreateMembershipOutput, error)
	ConfirmMembership(ctx context.Context, in usecase.ConfirmMembershipInput) error
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Account
	r.POST("/api/v1/access/users", end.Register)

	// Sessions
	r.POST("/api/v1/access/sessions", end.CreateSession)
	r.GET("/api/v1/access/sessions/:id", end.GetSession)
	r.DELETE("/api/v1/access/sessions/:id", end.DeleteSession)
	r.DELETE("/api/v1/access/sessions", end.DeleteSessions)

	// One-time tokens
	r.POST("/api/v1/access/tokens", end.CreateToken)
	r.POST("/api/v1/access/tokens/redeem", end.RedeemToken)

	// Derived credentials
	r.POST("/api/v1/access/jwt", end.CreateJWT)
	r.GET("/api/v1/access/roles", end.GetRoles)

	// Teams & memberships
	r.POST("/api/v1/access/teams", end.CreateTeam)
	r.POST("/api/v1/access/teams/:teamId/memberships", end.CreateMembership)
	r.PATCH("/api/v1/access/memberships/:id/confirm", end.ConfirmMembership)
}
