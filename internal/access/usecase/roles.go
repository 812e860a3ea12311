package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/gotrust/internal/access/entity"
	"github.com/shandysiswandi/gotrust/internal/pkg/goerror"
	"github.com/shandysiswandi/gotrust/internal/pkg/principal"
)

type GetRolesInput struct {
	// UserID lets privileged and machine callers derive roles for a user
	// they act on behalf of. Ordinary callers must leave it empty.
	UserID string
}

type GetRolesOutput struct {
	Roles []string
}

// GetRoles returns the role set the permission engine sees for a caller.
func (s *Usecase) GetRoles(ctx context.Context, in GetRolesInput) (*GetRolesOutput, error) {
	ctx, span := s.startSpan(ctx, "GetRoles")
	defer span.End()

	p := principal.Get(ctx)

	if in.UserID == "" {
		if len(p.Roles) == 0 {
			return &GetRolesOutput{Roles: []string{entity.RoleGuests}}, nil
		}
		return &GetRolesOutput{Roles: p.Roles}, nil
	}

	if !entity.IsPrivileged(p.Roles) && !entity.IsMachine(p.Roles) {
		return nil, goerror.NewBusiness("Account not allowed", goerror.CodeForbidden)
	}

	user, err := s.repoDB.GetUserByID(ctx, in.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("user not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user", "user_id", in.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	memberships, err := s.repoDB.GetMembershipsByUserID(ctx, in.UserID)
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get memberships", "user_id", in.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}
	user.Memberships = memberships

	return &GetRolesOutput{Roles: entity.DeriveRoles(*user, p.Roles)}, nil
}
