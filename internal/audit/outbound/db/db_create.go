package db

import (
	"context"

	"github.com/shandysiswandi/gotrust/internal/audit/entity"
)

func (s *DB) CreateEntry(ctx context.Context, e entity.Entry) (err error) {
	ctx, span := s.startSpan(ctx, "CreateEntry")
	defer func() { s.endSpan(span, err) }()

	query := `
		INSERT INTO audit_entries (id, actor, action, resource, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err = s.conn.Exec(ctx, query, e.ID, e.Actor, e.Action, e.Resource, e.Metadata, e.CreatedAt)
	if err != nil {
		return s.mapError(err)
	}

	return nil
}
