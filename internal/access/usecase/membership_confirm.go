package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/gotrust/internal/access/entity"
	"github.com/shandysiswandi/gotrust/internal/pkg/goerror"
)

type ConfirmMembershipInput struct {
	MembershipID string `validate:"required"`
	UserID       string `validate:"required"`
	Secret       string `validate:"required"`
}

// ConfirmMembership redeems an invite token and flips the membership to
// confirmed, at which point it starts contributing team roles.
func (s *Usecase) ConfirmMembership(ctx context.Context, in ConfirmMembershipInput) error {
	ctx, span := s.startSpan(ctx, "ConfirmMembership")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	m, err := s.repoDB.GetMembershipByID(ctx, in.MembershipID)
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("membership not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get membership", "membership_id", in.MembershipID, "error", err)
		return goerror.NewServer(err)
	}

	if m.UserID != in.UserID {
		return goerror.NewBusiness("invalid or expired token", goerror.CodeUnauthorized)
	}
	if m.Confirmed {
		return goerror.NewBusiness("membership already confirmed", goerror.CodeConflict)
	}

	tokens, err := s.repoDB.GetTokensByUserID(ctx, in.UserID)
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get tokens", "user_id", in.UserID, "error", err)
		return goerror.NewServer(err)
	}

	tokenID, ok := entity.VerifyToken(tokens, entity.TokenTypeInvite, in.Secret, s.clock.Now())
	if !ok {
		slog.WarnContext(ctx, "invite redemption failed", "membership_id", in.MembershipID)
		return goerror.NewBusiness("invalid or expired token", goerror.CodeUnauthorized)
	}

	if err := s.repoDB.ConfirmMembership(ctx, in.MembershipID, in.UserID); err != nil {
		slog.ErrorContext(ctx, "failed to repo confirm membership", "membership_id", in.MembershipID, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoDB.DeleteToken(ctx, tokenID); err != nil {
		slog.ErrorContext(ctx, "failed to repo delete invite token", "token_id", tokenID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
