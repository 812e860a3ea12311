package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/gotrust/internal/access/entity"
	"github.com/shandysiswandi/gotrust/internal/pkg/goerror"
	"github.com/shandysiswandi/gotrust/internal/pkg/instrument"
	"github.com/shandysiswandi/gotrust/internal/pkg/valueobject"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const schema = `
CREATE TABLE access_users (
	id               TEXT PRIMARY KEY,
	email            TEXT NOT NULL UNIQUE,
	phone            TEXT NOT NULL DEFAULT '',
	email_verified   BOOLEAN NOT NULL DEFAULT FALSE,
	phone_verified   BOOLEAN NOT NULL DEFAULT FALSE,
	status           SMALLINT NOT NULL,
	password_digest  TEXT NOT NULL,
	password_algo    TEXT NOT NULL,
	password_options JSONB,
	created_at       TIMESTAMPTZ NOT NULL,
	updated_at       TIMESTAMPTZ NOT NULL
);

CREATE TABLE access_sessions (
	id            TEXT PRIMARY KEY,
	user_id       TEXT NOT NULL,
	provider      TEXT NOT NULL,
	secret_digest TEXT NOT NULL,
	user_agent    TEXT NOT NULL DEFAULT '',
	ip            TEXT NOT NULL DEFAULT '',
	created_at    TIMESTAMPTZ NOT NULL
);

CREATE TABLE access_tokens (
	id            TEXT PRIMARY KEY,
	user_id       TEXT NOT NULL,
	type          SMALLINT NOT NULL,
	secret_digest TEXT NOT NULL,
	expires_at    TIMESTAMPTZ NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL
);

CREATE TABLE access_teams (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	owner_id   TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE access_memberships (
	id         TEXT PRIMARY KEY,
	team_id    TEXT NOT NULL,
	user_id    TEXT NOT NULL,
	confirmed  BOOLEAN NOT NULL,
	roles      TEXT[] NOT NULL DEFAULT '{}',
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE access_api_keys (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	digest     TEXT NOT NULL UNIQUE,
	disabled   BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL
);
`

func setupDB(t *testing.T) *DB {
	t.Helper()

	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("gotrust_test"),
		postgres.WithUsername("gotrust"),
		postgres.WithPassword("gotrust"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	if err != nil {
		t.Skipf("docker unavailable: %v", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := pool.Exec(ctx, schema); err != nil {
		t.Fatalf("create schema: %v", err)
	}

	return NewDB(pool, instrument.NewNoop())
}

func TestDB(t *testing.T) {
	s := setupDB(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	user := entity.User{
		ID:             "100",
		Email:          "alice@example.com",
		Status:         entity.UserStatusActive,
		PasswordDigest: "$2a$10$notarealdigest",
		PasswordAlgo:   "bcrypt",
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	t.Run("create and get user", func(t *testing.T) {
		if err := s.CreateUser(ctx, user); err != nil {
			t.Fatalf("create user: %v", err)
		}

		got, err := s.GetUserByEmail(ctx, user.Email)
		if err != nil {
			t.Fatalf("get by email: %v", err)
		}
		if got.ID != user.ID || got.PasswordAlgo != user.PasswordAlgo {
			t.Fatalf("got %+v", got)
		}

		got, err = s.GetUserByID(ctx, user.ID)
		if err != nil {
			t.Fatalf("get by id: %v", err)
		}
		if got.Email != user.Email {
			t.Fatalf("got %+v", got)
		}
	})

	t.Run("duplicate email maps to conflict", func(t *testing.T) {
		dup := user
		dup.ID = "101"
		if err := s.CreateUser(ctx, dup); !errors.Is(err, goerror.ErrConflict) {
			t.Fatalf("expected conflict, got %v", err)
		}
	})

	t.Run("missing user maps to not found", func(t *testing.T) {
		if _, err := s.GetUserByEmail(ctx, "nobody@example.com"); !errors.Is(err, goerror.ErrNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	t.Run("user with password options", func(t *testing.T) {
		imported := entity.User{
			ID:              "102",
			Email:           "legacy@example.com",
			Status:          entity.UserStatusActive,
			PasswordDigest:  "abcdef",
			PasswordAlgo:    "scrypt",
			PasswordOptions: valueobject.JSONMap{"costCpu": float64(8), "costMemory": float64(14)},
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := s.CreateUser(ctx, imported); err != nil {
			t.Fatalf("create user: %v", err)
		}

		got, err := s.GetUserByID(ctx, imported.ID)
		if err != nil {
			t.Fatalf("get by id: %v", err)
		}
		if got.PasswordOptions["costCpu"] != float64(8) {
			t.Fatalf("password options lost: %+v", got.PasswordOptions)
		}
	})

	t.Run("mark email verified", func(t *testing.T) {
		if err := s.MarkEmailVerified(ctx, user.ID); err != nil {
			t.Fatalf("mark verified: %v", err)
		}

		got, err := s.GetUserByID(ctx, user.ID)
		if err != nil {
			t.Fatalf("get by id: %v", err)
		}
		if !got.EmailVerified {
			t.Fatal("expected email_verified")
		}

		if err := s.MarkEmailVerified(ctx, "999"); !errors.Is(err, goerror.ErrNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	t.Run("session lifecycle", func(t *testing.T) {
		sess := entity.Session{
			ID:           "sess-1",
			UserID:       user.ID,
			Provider:     "email",
			SecretDigest: "digest-1",
			CreatedAt:    now,
		}
		if err := s.CreateSession(ctx, sess); err != nil {
			t.Fatalf("create session: %v", err)
		}

		got, err := s.GetSessionByID(ctx, sess.ID, user.ID)
		if err != nil {
			t.Fatalf("get session: %v", err)
		}
		if got.SecretDigest != sess.SecretDigest {
			t.Fatalf("got %+v", got)
		}

		// A session is only visible to its own user.
		if _, err := s.GetSessionByID(ctx, sess.ID, "999"); !errors.Is(err, goerror.ErrNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}

		list, err := s.GetSessionsByUserID(ctx, user.ID)
		if err != nil {
			t.Fatalf("list sessions: %v", err)
		}
		if len(list) != 1 {
			t.Fatalf("expected 1 session, got %d", len(list))
		}

		if err := s.DeleteSession(ctx, sess.ID, user.ID); err != nil {
			t.Fatalf("delete session: %v", err)
		}
		if err := s.DeleteSession(ctx, sess.ID, user.ID); !errors.Is(err, goerror.ErrNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	t.Run("delete all sessions", func(t *testing.T) {
		for _, id := range []string{"sess-2", "sess-3"} {
			if err := s.CreateSession(ctx, entity.Session{
				ID: id, UserID: user.ID, Provider: "email", SecretDigest: "d", CreatedAt: now,
			}); err != nil {
				t.Fatalf("create session: %v", err)
			}
		}

		if err := s.DeleteSessionsByUserID(ctx, user.ID); err != nil {
			t.Fatalf("delete sessions: %v", err)
		}

		list, err := s.GetSessionsByUserID(ctx, user.ID)
		if err != nil {
			t.Fatalf("list sessions: %v", err)
		}
		if len(list) != 0 {
			t.Fatalf("expected no sessions, got %d", len(list))
		}
	})

	t.Run("token lifecycle", func(t *testing.T) {
		token := entity.Token{
			ID:           "tok-1",
			UserID:       user.ID,
			Type:         entity.TokenTypeRecovery,
			SecretDigest: "digest",
			ExpiresAt:    now.Add(time.Hour),
			CreatedAt:    now,
		}
		if err := s.CreateToken(ctx, token); err != nil {
			t.Fatalf("create token: %v", err)
		}

		list, err := s.GetTokensByUserID(ctx, user.ID)
		if err != nil {
			t.Fatalf("list tokens: %v", err)
		}
		if len(list) != 1 || list[0].Type != entity.TokenTypeRecovery {
			t.Fatalf("got %+v", list)
		}

		if err := s.DeleteToken(ctx, token.ID); err != nil {
			t.Fatalf("delete token: %v", err)
		}
	})

	t.Run("team with owner membership", func(t *testing.T) {
		team := entity.Team{ID: "team-1", Name: "builders", OwnerID: user.ID, CreatedAt: now}
		owner := entity.Membership{
			ID: "mem-1", TeamID: team.ID, UserID: user.ID,
			Confirmed: true, Roles: []string{"owner"}, CreatedAt: now,
		}
		if err := s.CreateTeam(ctx, team, owner); err != nil {
			t.Fatalf("create team: %v", err)
		}

		memberships, err := s.GetMembershipsByUserID(ctx, user.ID)
		if err != nil {
			t.Fatalf("list memberships: %v", err)
		}
		if len(memberships) != 1 {
			t.Fatalf("expected 1 membership, got %d", len(memberships))
		}
		if !memberships[0].Confirmed || memberships[0].Roles[0] != "owner" {
			t.Fatalf("got %+v", memberships[0])
		}
	})

	t.Run("confirm membership", func(t *testing.T) {
		invite := entity.Membership{
			ID: "mem-2", TeamID: "team-1", UserID: "102",
			Confirmed: false, Roles: []string{"editor"}, CreatedAt: now,
		}
		if err := s.CreateMembership(ctx, invite); err != nil {
			t.Fatalf("create membership: %v", err)
		}

		if err := s.ConfirmMembership(ctx, invite.ID, invite.UserID); err != nil {
			t.Fatalf("confirm membership: %v", err)
		}

		got, err := s.GetMembershipByID(ctx, invite.ID)
		if err != nil {
			t.Fatalf("get membership: %v", err)
		}
		if !got.Confirmed {
			t.Fatal("expected confirmed")
		}

		if err := s.ConfirmMembership(ctx, invite.ID, "999"); !errors.Is(err, goerror.ErrNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	t.Run("api key lookup", func(t *testing.T) {
		if _, err := s.conn.Exec(ctx,
			`INSERT INTO access_api_keys (id, name, digest, disabled, created_at)
			 VALUES ('key-1', 'ci', 'digest-key', FALSE, $1)`, now); err != nil {
			t.Fatalf("seed api key: %v", err)
		}

		key, err := s.GetAPIKeyByDigest(ctx, "digest-key")
		if err != nil {
			t.Fatalf("get api key: %v", err)
		}
		if key.Name != "ci" || key.Disabled {
			t.Fatalf("got %+v", key)
		}

		if _, err := s.GetAPIKeyByDigest(ctx, "missing"); !errors.Is(err, goerror.ErrNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})
}
