package db

import (
	"context"

	"github.com/shandysiswandi/gotrust/internal/pkg/goerror"
)

func (s *DB) DeleteSession(ctx context.Context, id, userID string) (err error) {
	ctx, span := s.startSpan(ctx, "DeleteSession")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx,
		`DELETE FROM access_sessions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		err = s.mapError(err)
		return err
	}
	if tag.RowsAffected() == 0 {
		err = goerror.ErrNotFound
		return err
	}

	return nil
}

func (s *DB) DeleteSessionsByUserID(ctx context.Context, userID string) (err error) {
	ctx, span := s.startSpan(ctx, "DeleteSessionsByUserID")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `DELETE FROM access_sessions WHERE user_id = $1`, userID)

	err = s.mapError(err)
	return err
}

func (s *DB) DeleteToken(ctx context.Context, id string) (err error) {
	ctx, span := s.startSpan(ctx, "DeleteToken")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `DELETE FROM access_tokens WHERE id = $1`, id)

	err = s.mapError(err)
	return err
}
