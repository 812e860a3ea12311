package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shandysiswandi/gotrust/internal/access/entity"
)

const userColumns = `id, email, phone, email_verified, phone_verified, status,
	password_digest, password_algo, password_options, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.Email, &u.Phone, &u.EmailVerified, &u.PhoneVerified, &u.Status,
		&u.PasswordDigest, &u.PasswordAlgo, &u.PasswordOptions, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *DB) GetUserByEmail(ctx context.Context, email string) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByEmail")
	defer func() { s.endSpan(span, err) }()

	user, err := scanUser(s.conn.QueryRow(ctx,
		`SELECT `+userColumns+` FROM access_users WHERE email = $1`, email))
	if err != nil {
		return nil, s.mapError(err)
	}

	return user, nil
}

func (s *DB) GetUserByID(ctx context.Context, id string) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByID")
	defer func() { s.endSpan(span, err) }()

	user, err := scanUser(s.conn.QueryRow(ctx,
		`SELECT `+userColumns+` FROM access_users WHERE id = $1`, id))
	if err != nil {
		return nil, s.mapError(err)
	}

	return user, nil
}

func (s *DB) GetSessionByID(ctx context.Context, id, userID string) (_ *entity.Session, err error) {
	ctx, span := s.startSpan(ctx, "GetSessionByID")
	defer func() { s.endSpan(span, err) }()

	var sess entity.Session
	err = s.conn.QueryRow(ctx,
		`SELECT id, user_id, provider, secret_digest, user_agent, ip, created_at
		 FROM access_sessions WHERE id = $1 AND user_id = $2`, id, userID).
		Scan(&sess.ID, &sess.UserID, &sess.Provider, &sess.SecretDigest,
			&sess.UserAgent, &sess.IP, &sess.CreatedAt)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &sess, nil
}

func (s *DB) GetSessionsByUserID(ctx context.Context, userID string) (_ []entity.Session, err error) {
	ctx, span := s.startSpan(ctx, "GetSessionsByUserID")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx,
		`SELECT id, user_id, provider, secret_digest, user_agent, ip, created_at
		 FROM access_sessions WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	var sessions []entity.Session
	for rows.Next() {
		var sess entity.Session
		if err = rows.Scan(&sess.ID, &sess.UserID, &sess.Provider, &sess.SecretDigest,
			&sess.UserAgent, &sess.IP, &sess.CreatedAt); err != nil {
			return nil, s.mapError(err)
		}
		sessions = append(sessions, sess)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return sessions, nil
}

func (s *DB) GetTokensByUserID(ctx context.Context, userID string) (_ []entity.Token, err error) {
	ctx, span := s.startSpan(ctx, "GetTokensByUserID")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx,
		`SELECT id, user_id, type, secret_digest, expires_at, created_at
		 FROM access_tokens WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	var tokens []entity.Token
	for rows.Next() {
		var t entity.Token
		if err = rows.Scan(&t.ID, &t.UserID, &t.Type, &t.SecretDigest, &t.ExpiresAt, &t.CreatedAt); err != nil {
			return nil, s.mapError(err)
		}
		tokens = append(tokens, t)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return tokens, nil
}

func (s *DB) GetMembershipsByUserID(ctx context.Context, userID string) (_ []entity.Membership, err error) {
	ctx, span := s.startSpan(ctx, "GetMembershipsByUserID")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx,
		`SELECT id, team_id, user_id, confirmed, roles, created_at
		 FROM access_memberships WHERE user_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	var memberships []entity.Membership
	for rows.Next() {
		var m entity.Membership
		if err = rows.Scan(&m.ID, &m.TeamID, &m.UserID, &m.Confirmed, &m.Roles, &m.CreatedAt); err != nil {
			return nil, s.mapError(err)
		}
		memberships = append(memberships, m)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return memberships, nil
}

func (s *DB) GetMembershipByID(ctx context.Context, id string) (_ *entity.Membership, err error) {
	ctx, span := s.startSpan(ctx, "GetMembershipByID")
	defer func() { s.endSpan(span, err) }()

	var m entity.Membership
	err = s.conn.QueryRow(ctx,
		`SELECT id, team_id, user_id, confirmed, roles, created_at
		 FROM access_memberships WHERE id = $1`, id).
		Scan(&m.ID, &m.TeamID, &m.UserID, &m.Confirmed, &m.Roles, &m.CreatedAt)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &m, nil
}

func (s *DB) GetAPIKeyByDigest(ctx context.Context, digest string) (_ *entity.APIKey, err error) {
	ctx, span := s.startSpan(ctx, "GetAPIKeyByDigest")
	defer func() { s.endSpan(span, err) }()

	var key entity.APIKey
	err = s.conn.QueryRow(ctx,
		`SELECT id, name, digest, disabled, created_at
		 FROM access_api_keys WHERE digest = $1`, digest).
		Scan(&key.ID, &key.Name, &key.Digest, &key.Disabled, &key.CreatedAt)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &key, nil
}
