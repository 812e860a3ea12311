package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/shandysiswandi/gotrust/internal/access/entity"
	"github.com/shandysiswandi/gotrust/internal/pkg/goerror"
	"github.com/shandysiswandi/gotrust/internal/pkg/secret"
)

type CreateMembershipInput struct {
	TeamID string   `validate:"required"`
	Email  string   `validate:"required,email"`
	Roles  []string `validate:"omitempty,dive,min=1,max=64"`
}

type CreateMembershipOutput struct {
	MembershipID string
	UserID       string
	ExpiresAt    time.Time
	// Secret is the invite token, only disclosed to privileged and machine
	// callers; ordinary invitees receive it out of band.
	Secret string
}

// CreateMembership invites a user into a team. The membership stays
// unconfirmed, and thus contributes no roles, until the invite token is
// redeemed via ConfirmMembership.
func (s *Usecase) CreateMembership(ctx context.Context, in CreateMembershipInput) (*CreateMembershipOutput, error) {
	ctx, span := s.startSpan(ctx, "CreateMembership")
	defer span.End()

	if _, err := s.authorize(ctx, "access:memberships", "create"); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	user, err := s.repoDB.GetUserByEmail(ctx, email)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("user not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by email", "error", err)
		return nil, goerror.NewServer(err)
	}

	m := entity.Membership{
		ID:        s.oid.Generate(),
		TeamID:    in.TeamID,
		UserID:    user.ID,
		Confirmed: false,
		Roles:     in.Roles,
		CreatedAt: s.clock.Now(),
	}
	if err := s.repoDB.CreateMembership(ctx, m); err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			return nil, goerror.NewBusiness("user is already a member", goerror.CodeConflict)
		}
		slog.ErrorContext(ctx, "failed to repo create membership", "team_id", in.TeamID, "error", err)
		return nil, goerror.NewServer(err)
	}

	plain, err := secret.TokenGenerator(0)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate invite secret", "error", err)
		return nil, goerror.NewServer(err)
	}

	token := entity.Token{
		ID:           s.oid.Generate(),
		UserID:       user.ID,
		Type:         entity.TokenTypeInvite,
		SecretDigest: secret.Digest(plain),
		ExpiresAt:    s.clock.Now().Add(s.cfg.GetDay("modules.access.invite_ttl_days")),
		CreatedAt:    s.clock.Now(),
	}
	if err := s.repoDB.CreateToken(ctx, token); err != nil {
		slog.ErrorContext(ctx, "failed to repo create invite token", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoMessaging.PublishTokenCreated(ctx, TokenCreatedEvent{
		UserID:  user.ID,
		TokenID: token.ID,
		Type:    entity.TokenTypeInvite.String(),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish token created event", "user_id", user.ID, "error", err)
	}

	out := &CreateMembershipOutput{
		MembershipID: m.ID,
		UserID:       user.ID,
		ExpiresAt:    token.ExpiresAt,
	}

	roles := principalRoles(ctx)
	if entity.IsPrivileged(roles) || entity.IsMachine(roles) {
		out.Secret = plain
	}

	return out, nil
}
