package db

import (
	"context"

	"github.com/shandysiswandi/gotrust/internal/pkg/goerror"
)

func (s *DB) MarkEmailVerified(ctx context.Context, userID string) (err error) {
	ctx, span := s.startSpan(ctx, "MarkEmailVerified")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx,
		`UPDATE access_users SET email_verified = TRUE, updated_at = NOW() WHERE id = $1`, userID)
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

func (s *DB) MarkPhoneVerified(ctx context.Context, userID string) (err error) {
	ctx, span := s.startSpan(ctx, "MarkPhoneVerified")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx,
		`UPDATE access_users SET phone_verified = TRUE, updated_at = NOW() WHERE id = $1`, userID)
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

func (s *DB) ConfirmMembership(ctx context.Context, id, userID string) (err error) {
	ctx, span := s.startSpan(ctx, "ConfirmMembership")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx,
		`UPDATE access_memberships SET confirmed = TRUE WHERE id = $1 AND user_id = $2`, id, userID)
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
