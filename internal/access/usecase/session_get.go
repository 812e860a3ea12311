package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shandysiswandi/gotrust/internal/pkg/goerror"
)

type GetSessionInput struct {
	// ID is a session ID or the literal "current" for the session the
	// request was authenticated with.
	ID string `validate:"required"`
}

type GetSessionOutput struct {
	ID        string
	UserID    string
	Provider  string
	UserAgent string
	IP        string
	CreatedAt time.Time
	ExpiresAt time.Time
	Current   bool
}

func (s *Usecase) GetSession(ctx context.Context, in GetSessionInput) (*GetSessionOutput, error) {
	ctx, span := s.startSpan(ctx, "GetSession")
	defer span.End()

	p, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	id := in.ID
	if id == "current" {
		id = p.SessionID
	}

	sess, err := s.repoDB.GetSessionByID(ctx, id, p.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("session not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get session", "session_id", id, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &GetSessionOutput{
		ID:        sess.ID,
		UserID:    sess.UserID,
		Provider:  string(sess.Provider),
		UserAgent: sess.UserAgent,
		IP:        sess.IP,
		CreatedAt: sess.CreatedAt,
		ExpiresAt: sess.CreatedAt.Add(s.cfg.GetDay("modules.access.session_ttl_days")),
		Current:   sess.ID == p.SessionID,
	}, nil
}
