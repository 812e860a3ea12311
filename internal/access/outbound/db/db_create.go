package db

import (
	"context"

	"github.com/shandysiswandi/gotrust/internal/access/entity"
)

func (s *DB) CreateUser(ctx context.Context, user entity.User) (err error) {
	ctx, span := s.startSpan(ctx, "CreateUser")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx,
		`INSERT INTO access_users
		 (id, email, phone, email_verified, phone_verified, status,
		  password_digest, password_algo, password_options, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)`,
		user.ID, user.Email, user.Phone, user.EmailVerified, user.PhoneVerified,
		user.Status, user.PasswordDigest, user.PasswordAlgo, user.PasswordOptions,
		user.CreatedAt)

	err = s.mapError(err)
	return err
}

func (s *DB) CreateSession(ctx context.Context, sess entity.Session) (err error) {
	ctx, span := s.startSpan(ctx, "CreateSession")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx,
		`INSERT INTO access_sessions
		 (id, user_id, provider, secret_digest, user_agent, ip, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		sess.ID, sess.UserID, sess.Provider, sess.SecretDigest,
		sess.UserAgent, sess.IP, sess.CreatedAt)

	err = s.mapError(err)
	return err
}

func (s *DB) CreateToken(ctx context.Context, token entity.Token) (err error) {
	ctx, span := s.startSpan(ctx, "CreateToken")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx,
		`INSERT INTO access_tokens
		 (id, user_id, type, secret_digest, expires_at, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		token.ID, token.UserID, token.Type, token.SecretDigest,
		token.ExpiresAt, token.CreatedAt)

	err = s.mapError(err)
	return err
}

func (s *DB) CreateMembership(ctx context.Context, m entity.Membership) (err error) {
	ctx, span := s.startSpan(ctx, "CreateMembership")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx,
		`INSERT INTO access_memberships
		 (id, team_id, user_id, confirmed, roles, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		m.ID, m.TeamID, m.UserID, m.Confirmed, m.Roles, m.CreatedAt)

	err = s.mapError(err)
	return err
}
