package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/gotrust/internal/access/entity"
	"github.com/shandysiswandi/gotrust/internal/pkg/goerror"
	"github.com/shandysiswandi/gotrust/internal/pkg/idempotency"
)

type RedeemTokenInput struct {
	UserID string `validate:"required"`
	Type   string `validate:"required,oneof=verification recovery invite magic-url phone"`
	Secret string `validate:"required"`
}

type RedeemTokenOutput struct {
	TokenID string
	// SessionToken is set for the flows that log the user in (recovery,
	// magic-url, phone).
	SessionToken string
	SessionID    string
}

// RedeemToken consumes a one-time token. Verification marks the channel it
// was delivered over as verified; recovery, magic-url and phone open a new
// session. Every redemption deletes the token.
func (s *Usecase) RedeemToken(ctx context.Context, in RedeemTokenInput) (*RedeemTokenOutput, error) {
	ctx, span := s.startSpan(ctx, "RedeemToken")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	typ := entity.TokenTypeFromString(in.Type)

	tokens, err := s.repoDB.GetTokensByUserID(ctx, in.UserID)
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get tokens", "user_id", in.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	tokenID, ok := entity.VerifyToken(tokens, typ, in.Secret, s.clock.Now())
	if !ok {
		slog.WarnContext(ctx, "token redemption failed", "user_id", in.UserID, "type", typ.String())
		return nil, goerror.NewBusiness("invalid or expired token", goerror.CodeUnauthorized)
	}

	// Two concurrent redemptions of the same token would both pass the
	// digest check; the idempotency lock lets only one proceed.
	state, err := s.idemp.Acquire(ctx, "access:redeem:"+tokenID, s.cfg.GetMinute("modules.access.token_ttl_minutes"))
	if err != nil {
		slog.ErrorContext(ctx, "failed to acquire redemption lock", "token_id", tokenID, "error", err)
		return nil, goerror.NewServer(err)
	}
	if state != idempotency.StateNone {
		return nil, goerror.NewBusiness("invalid or expired token", goerror.CodeUnauthorized)
	}

	out := &RedeemTokenOutput{TokenID: tokenID}

	switch typ {
	case entity.TokenTypeVerification, entity.TokenTypeMagicURL:
		if err := s.repoDB.MarkEmailVerified(ctx, in.UserID); err != nil {
			slog.ErrorContext(ctx, "failed to mark email verified", "user_id", in.UserID, "error", err)
			return nil, goerror.NewServer(err)
		}

	case entity.TokenTypePhone:
		if err := s.repoDB.MarkPhoneVerified(ctx, in.UserID); err != nil {
			slog.ErrorContext(ctx, "failed to mark phone verified", "user_id", in.UserID, "error", err)
			return nil, goerror.NewServer(err)
		}
	}

	switch typ {
	case entity.TokenTypeRecovery, entity.TokenTypeMagicURL, entity.TokenTypePhone:
		sess, err := s.newSession(ctx, in.UserID, entity.SessionProviderToken, "", "")
		if err != nil {
			return nil, err
		}
		out.SessionToken = sess.Token
		out.SessionID = sess.SessionID
	}

	if err := s.repoDB.DeleteToken(ctx, tokenID); err != nil {
		slog.ErrorContext(ctx, "failed to repo delete redeemed token", "token_id", tokenID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return out, nil
}
