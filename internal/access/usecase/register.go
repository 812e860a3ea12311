package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/shandysiswandi/gotrust/internal/access/entity"
	"github.com/shandysiswandi/gotrust/internal/pkg/goerror"
	"github.com/shandysiswandi/gotrust/internal/pkg/secret"
)

type RegisterInput struct {
	Email    string `validate:"required,email"`
	Phone    string `validate:"omitempty,e164"`
	Password string `validate:"required,min=8"`
}

type RegisterOutput struct {
	UserID string
}

func (s *Usecase) Register(ctx context.Context, in RegisterInput) (*RegisterOutput, error) {
	ctx, span := s.startSpan(ctx, "Register")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	_, err := s.repoDB.GetUserByEmail(ctx, email)
	if err == nil {
		return nil, goerror.NewBusiness("email already registered", goerror.CodeConflict)
	}
	if !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get user by email", "error", err)
		return nil, goerror.NewServer(err)
	}

	digest, err := s.hashPassword(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return nil, goerror.NewServer(err)
	}

	userID := strconv.FormatInt(s.uid.Generate(), 10)
	if err := s.repoDB.CreateUser(ctx, entity.User{
		ID:             userID,
		Email:          email,
		Phone:          in.Phone,
		Status:         entity.UserStatusActive,
		PasswordDigest: digest,
		PasswordAlgo:   s.passwordAlgo,
		CreatedAt:      s.clock.Now(),
	}); err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			return nil, goerror.NewBusiness("email already registered", goerror.CodeConflict)
		}
		slog.ErrorContext(ctx, "failed to repo create user", "error", err)
		return nil, goerror.NewServer(err)
	}

	code, err := secret.CodeGenerator(0)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate verification code", "user_id", userID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoDB.CreateToken(ctx, entity.Token{
		ID:           s.oid.Generate(),
		UserID:       userID,
		Type:         entity.TokenTypeVerification,
		SecretDigest: secret.Digest(code),
		ExpiresAt:    s.clock.Now().Add(s.cfg.GetMinute("modules.access.token_ttl_minutes")),
		CreatedAt:    s.clock.Now(),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to repo create verification token", "user_id", userID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoMessaging.PublishUserRegistered(ctx, UserRegisteredEvent{
		UserID:            userID,
		Email:             email,
		VerificationToken: code,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish user registered event", "user_id", userID, "error", err)
	}

	return &RegisterOutput{UserID: userID}, nil
}
