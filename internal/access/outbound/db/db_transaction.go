package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shandysiswandi/gotrust/internal/access/entity"
)

// CreateTeam inserts the team and its owner membership atomically; a team
// without an owner must never be observable.
func (s *DB) CreateTeam(ctx context.Context, team entity.Team, owner entity.Membership) (err error) {
	ctx, span := s.startSpan(ctx, "CreateTeam")
	defer func() { s.endSpan(span, err) }()

	err = pgx.BeginFunc(ctx, s.conn, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`INSERT INTO access_teams (id, name, owner_id, created_at)
			 VALUES ($1, $2, $3, $4)`,
			team.ID, team.Name, team.OwnerID, team.CreatedAt); err != nil {
			return err
		}

		_, err := tx.Exec(ctx,
			`INSERT INTO access_memberships
			 (id, team_id, user_id, confirmed, roles, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			owner.ID, owner.TeamID, owner.UserID, owner.Confirmed, owner.Roles, owner.CreatedAt)
		return err
	})

	err = s.mapError(err)
	return err
}
