package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/gotrust/internal/pkg/goerror"
)

type CreateJWTOutput struct {
	JWT string
}

// CreateJWT mints a short-lived JWT off the session the request was
// authenticated with. The token stops verifying once that session is gone.
func (s *Usecase) CreateJWT(ctx context.Context) (*CreateJWTOutput, error) {
	ctx, span := s.startSpan(ctx, "CreateJWT")
	defer span.End()

	p, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	if p.SessionID == "" {
		return nil, goerror.NewBusiness("a session is required to mint a JWT", goerror.CodeForbidden)
	}

	token, err := s.jwt.Generate(p.UserID, p.SessionID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate jwt", "user_id", p.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &CreateJWTOutput{JWT: token}, nil
}
