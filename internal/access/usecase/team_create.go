package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/gotrust/internal/access/entity"
	"github.com/shandysiswandi/gotrust/internal/pkg/goerror"
)

type CreateTeamInput struct {
	Name string `validate:"required,min=1,max=128"`
}

type CreateTeamOutput struct {
	TeamID       string
	MembershipID string
}

// CreateTeam creates a team and a confirmed owner membership for the caller
// in one transaction.
func (s *Usecase) CreateTeam(ctx context.Context, in CreateTeamInput) (*CreateTeamOutput, error) {
	ctx, span := s.startSpan(ctx, "CreateTeam")
	defer span.End()

	p, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	now := s.clock.Now()
	team := entity.Team{
		ID:        s.oid.Generate(),
		Name:      in.Name,
		OwnerID:   p.UserID,
		CreatedAt: now,
	}
	owner := entity.Membership{
		ID:        s.oid.Generate(),
		TeamID:    team.ID,
		UserID:    p.UserID,
		Confirmed: true,
		Roles:     []string{"owner"},
		CreatedAt: now,
	}

	if err := s.repoDB.CreateTeam(ctx, team, owner); err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			return nil, goerror.NewBusiness("team already exists", goerror.CodeConflict)
		}
		slog.ErrorContext(ctx, "failed to repo create team", "user_id", p.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &CreateTeamOutput{TeamID: team.ID, MembershipID: owner.ID}, nil
}
