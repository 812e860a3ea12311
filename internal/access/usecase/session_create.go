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
	"github.com/shandysiswandi/gotrust/internal/pkg/session"
)

type CreateSessionInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
	//
	IP        string
	UserAgent string
}

type CreateSessionOutput struct {
	SessionID string
	UserID    string
	// Token is the packed transport token; the secret inside it is never
	// stored, only its digest.
	Token     string
	ExpiresAt time.Time
}

func (s *Usecase) CreateSession(ctx context.Context, in CreateSessionInput) (*CreateSessionOutput, error) {
	ctx, span := s.startSpan(ctx, "CreateSession")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	user, err := s.repoDB.GetUserByEmail(ctx, email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user account not found", "email", email)
		return nil, goerror.NewBusiness("invalid email or password", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.ensureUserStatusAllowed(ctx, user); err != nil {
		return nil, err
	}

	if !s.verifyPassword(user, in.Password) {
		slog.WarnContext(ctx, "password user account not match", "user_id", user.ID)
		return nil, goerror.NewBusiness("invalid email or password", goerror.CodeUnauthorized)
	}

	return s.newSession(ctx, user.ID, entity.SessionProviderEmail, in.IP, in.UserAgent)
}

// newSession is shared by the email login and the token redemption paths.
func (s *Usecase) newSession(ctx context.Context, userID string, provider entity.SessionProvider, ip, userAgent string) (*CreateSessionOutput, error) {
	plain, err := secret.TokenGenerator(0)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate session secret", "user_id", userID, "error", err)
		return nil, goerror.NewServer(err)
	}

	now := s.clock.Now()
	sess := entity.Session{
		ID:           s.oid.Generate(),
		UserID:       userID,
		Provider:     provider,
		SecretDigest: secret.Digest(plain),
		UserAgent:    userAgent,
		IP:           ip,
		CreatedAt:    now,
	}

	if err := s.repoDB.CreateSession(ctx, sess); err != nil {
		slog.ErrorContext(ctx, "failed to repo create session", "user_id", userID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoMessaging.PublishSessionCreated(ctx, SessionCreatedEvent{
		UserID:    userID,
		SessionID: sess.ID,
		Provider:  string(provider),
		IP:        ip,
		UserAgent: userAgent,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish session created event", "user_id", userID, "error", err)
	}

	return &CreateSessionOutput{
		SessionID: sess.ID,
		UserID:    userID,
		Token:     session.Encode(userID, plain),
		ExpiresAt: now.Add(s.cfg.GetDay("modules.access.session_ttl_days")),
	}, nil
}
