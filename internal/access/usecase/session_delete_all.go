package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/gotrust/internal/pkg/goerror"
)

func (s *Usecase) DeleteSessions(ctx context.Context) error {
	ctx, span := s.startSpan(ctx, "DeleteSessions")
	defer span.End()

	p, err := s.authenticated(ctx)
	if err != nil {
		return err
	}

	if err := s.repoDB.DeleteSessionsByUserID(ctx, p.UserID); err != nil {
		slog.ErrorContext(ctx, "failed to repo delete all sessions", "user_id", p.UserID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
