package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/shandysiswandi/gotrust/internal/audit/entity"
	"github.com/shandysiswandi/gotrust/internal/pkg/goerror"
)

type ListEntriesInput struct {
	Action   string
	Actor    string
	DateFrom time.Time
	DateTo   time.Time
	Size     int32 `validate:"omitempty,min=1,max=100"`
	Page     int32 `validate:"omitempty,min=1"`
}

type ListEntriesOutput struct {
	Entries []entity.Entry
	Total   int64
}

func (s *Usecase) ListEntries(ctx context.Context, in ListEntriesInput) (*ListEntriesOutput, error) {
	ctx, span := s.startSpan(ctx, "ListEntries")
	defer span.End()

	if err := s.authorize(ctx, "audit:entries", "list"); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if in.Size == 0 {
		in.Size = 20
	}
	if in.Page == 0 {
		in.Page = 1
	}

	entries, total, err := s.repoDB.ListEntries(ctx, entity.ListFilter{
		Action:   in.Action,
		Actor:    in.Actor,
		DateFrom: in.DateFrom,
		DateTo:   in.DateTo,
		Size:     in.Size,
		Page:     in.Page,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list audit entries", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ListEntriesOutput{Entries: entries, Total: total}, nil
}
