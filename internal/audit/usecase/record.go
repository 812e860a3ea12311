package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/gotrust/internal/audit/entity"
	"github.com/shandysiswandi/gotrust/internal/pkg/goerror"
	"github.com/shandysiswandi/gotrust/internal/pkg/valueobject"
)

type RecordInput struct {
	Actor    string
	Action   string `validate:"required"`
	Resource string `validate:"required"`
	Metadata valueobject.JSONMap
}

// Record appends an audit entry. It is driven by the event consumers, never
// by end users directly.
func (s *Usecase) Record(ctx context.Context, in RecordInput) error {
	ctx, span := s.startSpan(ctx, "Record")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	if err := s.repoDB.CreateEntry(ctx, entity.Entry{
		ID:        s.uid.Generate(),
		Actor:     in.Actor,
		Action:    in.Action,
		Resource:  in.Resource,
		Metadata:  in.Metadata,
		CreatedAt: s.clock.Now(),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to repo create audit entry", "action", in.Action, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
