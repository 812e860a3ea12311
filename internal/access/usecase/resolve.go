package usecase

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/shandysiswandi/gotrust/internal/access/entity"
	"github.com/shandysiswandi/gotrust/internal/pkg/goerror"
	"github.com/shandysiswandi/gotrust/internal/pkg/principal"
	"github.com/shandysiswandi/gotrust/internal/pkg/session"
)

// Resolve implements principal.Resolver. Verification misses of any kind
// leave the request anonymous; only infrastructure failures surface as
// errors.
//
// Credential precedence: operator secret, machine API key, JWT bearer,
// packed session token.
func (s *Usecase) Resolve(ctx context.Context, creds principal.Credentials) (principal.Principal, error) {
	ctx, span := s.startSpan(ctx, "Resolve")
	defer span.End()

	if creds.OperatorSecret != "" {
		secret := s.cfg.GetString("modules.access.operator_secret")
		if secret != "" && subtle.ConstantTimeCompare([]byte(creds.OperatorSecret), []byte(secret)) == 1 {
			return principal.Principal{Roles: []string{entity.RoleAdmin}}, nil
		}
		return principal.Principal{}, nil
	}

	if creds.APIKey != "" {
		return s.resolveAPIKey(ctx, creds.APIKey)
	}

	if creds.Bearer != "" {
		return s.resolveJWT(ctx, creds.Bearer)
	}

	if creds.SessionToken != "" {
		return s.resolveSessionToken(ctx, creds.SessionToken)
	}

	return principal.Principal{}, nil
}

func (s *Usecase) resolveAPIKey(ctx context.Context, key string) (principal.Principal, error) {
	digest, err := s.hmac.Hash(key)
	if err != nil {
		return principal.Principal{}, err
	}

	apiKey, err := s.repoDB.GetAPIKeyByDigest(ctx, string(digest))
	if errors.Is(err, goerror.ErrNotFound) {
		return principal.Principal{}, nil
	}
	if err != nil {
		return principal.Principal{}, err
	}
	if apiKey.Disabled {
		return principal.Principal{}, nil
	}

	return principal.Principal{Roles: []string{entity.RoleApps}}, nil
}

// resolveJWT accepts a token minted by CreateJWT. The originating session
// must still exist; logging out kills outstanding JWTs.
func (s *Usecase) resolveJWT(ctx context.Context, bearer string) (principal.Principal, error) {
	clm, err := s.jwt.Verify(bearer)
	if err != nil {
		return principal.Principal{}, nil
	}

	if _, err := s.repoDB.GetSessionByID(ctx, clm.SessionID, clm.UserID); err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return principal.Principal{}, nil
		}
		return principal.Principal{}, err
	}

	return s.userPrincipal(ctx, clm.UserID, clm.SessionID)
}

func (s *Usecase) resolveSessionToken(ctx context.Context, token string) (principal.Principal, error) {
	userID, secret, err := session.Decode(token)
	if err != nil {
		return principal.Principal{}, nil
	}

	sessions, err := s.repoDB.GetSessionsByUserID(ctx, userID)
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		return principal.Principal{}, err
	}

	window := s.cfg.GetDay("modules.access.session_ttl_days")
	sessionID, ok := entity.VerifySession(sessions, secret, window, s.clock.Now())
	if !ok {
		return principal.Principal{}, nil
	}

	return s.userPrincipal(ctx, userID, sessionID)
}

func (s *Usecase) userPrincipal(ctx context.Context, userID, sessionID string) (principal.Principal, error) {
	user, err := s.repoDB.GetUserByID(ctx, userID)
	if errors.Is(err, goerror.ErrNotFound) {
		return principal.Principal{}, nil
	}
	if err != nil {
		return principal.Principal{}, err
	}

	if user.Status != entity.UserStatusActive {
		return principal.Principal{}, nil
	}

	memberships, err := s.repoDB.GetMembershipsByUserID(ctx, userID)
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		return principal.Principal{}, err
	}
	user.Memberships = memberships

	return principal.Principal{
		UserID:    user.ID,
		SessionID: sessionID,
		Roles:     entity.DeriveRoles(*user, nil),
	}, nil
}
