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

type CreateTokenInput struct {
	Email string `validate:"required,email"`
	Type  string `validate:"required,oneof=verification recovery magic-url phone"`
}

type CreateTokenOutput struct {
	TokenID   string
	UserID    string
	ExpiresAt time.Time
	// Secret is only populated for privileged and machine callers; ordinary
	// callers receive it out of band.
	Secret string
}

// CreateToken issues a typed one-time token. Lookups that miss still return a
// normal-looking output so the endpoint does not leak which emails exist.
func (s *Usecase) CreateToken(ctx context.Context, in CreateTokenInput) (*CreateTokenOutput, error) {
	ctx, span := s.startSpan(ctx, "CreateToken")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	typ := entity.TokenTypeFromString(in.Type)
	if typ == entity.TokenTypeUnknown || typ == entity.TokenTypeInvite {
		return nil, goerror.NewInvalidInput(nil, "type", "unsupported token type")
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	user, err := s.repoDB.GetUserByEmail(ctx, email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "token requested for unknown email")
		return &CreateTokenOutput{}, nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by email", "error", err)
		return nil, goerror.NewServer(err)
	}

	var plain string
	if typ == entity.TokenTypePhone {
		plain, err = secret.CodeGenerator(0)
	} else {
		plain, err = secret.TokenGenerator(0)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate token secret", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	token := entity.Token{
		ID:           s.oid.Generate(),
		UserID:       user.ID,
		Type:         typ,
		SecretDigest: secret.Digest(plain),
		ExpiresAt:    s.clock.Now().Add(s.cfg.GetMinute("modules.access.token_ttl_minutes")),
		CreatedAt:    s.clock.Now(),
	}
	if err := s.repoDB.CreateToken(ctx, token); err != nil {
		slog.ErrorContext(ctx, "failed to repo create token", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoMessaging.PublishTokenCreated(ctx, TokenCreatedEvent{
		UserID:  user.ID,
		TokenID: token.ID,
		Type:    typ.String(),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish token created event", "user_id", user.ID, "error", err)
	}

	out := &CreateTokenOutput{
		TokenID:   token.ID,
		UserID:    user.ID,
		ExpiresAt: token.ExpiresAt,
	}

	roles := principalRoles(ctx)
	if entity.IsPrivileged(roles) || entity.IsMachine(roles) {
		out.Secret = plain
	}

	return out, nil
}
