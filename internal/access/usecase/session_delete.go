package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/gotrust/internal/pkg/goerror"
)

type DeleteSessionInput struct {
	// ID is a session ID or the literal "current".
	ID string `validate:"required"`
}

func (s *Usecase) DeleteSession(ctx context.Context, in DeleteSessionInput) error {
	ctx, span := s.startSpan(ctx, "DeleteSession")
	defer span.End()

	p, err := s.authenticated(ctx)
	if err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	id := in.ID
	if id == "current" {
		id = p.SessionID
	}

	if err := s.repoDB.DeleteSession(ctx, id, p.UserID); err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return goerror.NewBusiness("session not found", goerror.CodeNotFound)
		}
		slog.ErrorContext(ctx, "failed to repo delete session", "session_id", id, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
