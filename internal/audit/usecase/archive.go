package usecase

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/shandysiswandi/gotrust/internal/pkg/goerror"
)

type ArchiveDayInput struct {
	// Day in YYYY-MM-DD form.
	Day string `validate:"required,datetime=2006-01-02"`
}

type ArchiveDayOutput struct {
	Entries  int
	Location string
}

// ArchiveDay exports one day of audit entries as a JSON object to object
// storage. The database rows stay in place; the archive is the long-term
// copy.
func (s *Usecase) ArchiveDay(ctx context.Context, in ArchiveDayInput) (*ArchiveDayOutput, error) {
	ctx, span := s.startSpan(ctx, "ArchiveDay")
	defer span.End()

	if err := s.authorize(ctx, "audit:entries", "archive"); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	entries, err := s.repoDB.GetEntriesByDay(ctx, in.Day)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get audit entries by day", "day", in.Day, "error", err)
		return nil, goerror.NewServer(err)
	}

	if len(entries) == 0 {
		return nil, goerror.NewBusiness("no audit entries for that day", goerror.CodeNotFound)
	}

	data, err := json.Marshal(entries)
	if err != nil {
		slog.ErrorContext(ctx, "failed to marshal audit entries", "day", in.Day, "error", err)
		return nil, goerror.NewServer(err)
	}

	location, err := s.repoArchive.Store(ctx, "audit/"+in.Day+".json", data)
	if err != nil {
		slog.ErrorContext(ctx, "failed to store audit archive", "day", in.Day, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ArchiveDayOutput{Entries: len(entries), Location: location}, nil
}
