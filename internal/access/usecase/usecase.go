package usecase

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/casbin/casbin/v3"
	"github.com/shandysiswandi/gotrust/internal/access/entity"
	"github.com/shandysiswandi/gotrust/internal/pkg/clock"
	"github.com/shandysiswandi/gotrust/internal/pkg/config"
	"github.com/shandysiswandi/gotrust/internal/pkg/goerror"
	"github.com/shandysiswandi/gotrust/internal/pkg/goroutine"
	"github.com/shandysiswandi/gotrust/internal/pkg/hash"
	"github.com/shandysiswandi/gotrust/internal/pkg/idempotency"
	"github.com/shandysiswandi/gotrust/internal/pkg/instrument"
	"github.com/shandysiswandi/gotrust/internal/pkg/jwt"
	"github.com/shandysiswandi/gotrust/internal/pkg/principal"
	"github.com/shandysiswandi/gotrust/internal/pkg/uid"
	"github.com/shandysiswandi/gotrust/internal/pkg/validator"
	"github.com/shandysiswandi/gotrust/internal/pkg/valueobject"
	"go.opentelemetry.io/otel/trace"
)

type UserRegisteredEvent struct {
	UserID            string
	Email             string
	VerificationToken string
}

type SessionCreatedEvent struct {
	UserID    string
	SessionID string
	Provider  string
	IP        string
	UserAgent string
}

type TokenCreatedEvent struct {
	UserID  string
	TokenID string
	Type    string
}

type repoMessaging interface {
	PublishUserRegistered(ctx context.Context, msg UserRegisteredEvent) error
	PublishSessionCreated(ctx context.Context, msg SessionCreatedEvent) error
	PublishTokenCreated(ctx context.Context, msg TokenCreatedEvent) error
}

type repoDB interface {
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	GetUserByID(ctx context.Context, id string) (*entity.User, error)
	GetSessionByID(ctx context.Context, id, userID string) (*entity.Session, error)
	GetSessionsByUserID(ctx context.Context, userID string) ([]entity.Session, error)
	GetTokensByUserID(ctx context.Context, userID string) ([]entity.Token, error)
	GetMembershipsByUserID(ctx context.Context, userID string) ([]entity.Membership, error)
	GetMembershipByID(ctx context.Context, id string) (*entity.Membership, error)
	GetAPIKeyByDigest(ctx context.Context, digest string) (*entity.APIKey, error)

	CreateUser(ctx context.Context, user entity.User) error
	CreateSession(ctx context.Context, sess entity.Session) error
	CreateToken(ctx context.Context, token entity.Token) error
	CreateTeam(ctx context.Context, team entity.Team, owner entity.Membership) error
	CreateMembership(ctx context.Context, m entity.Membership) error

	MarkEmailVerified(ctx context.Context, userID string) error
	MarkPhoneVerified(ctx context.Context, userID string) error
	ConfirmMembership(ctx context.Context, id, userID string) error

	DeleteSession(ctx context.Context, id, userID string) error
	DeleteSessionsByUserID(ctx context.Context, userID string) error
	DeleteToken(ctx context.Context, id string) error
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	idemp         idempotency.Idempotency
	validator     validator.Validator
	cfg           config.Config
	hmac          hash.Hash
	passwordAlgo  hash.Algo
	passwordOpts  hash.Options
	uid           uid.NumberID
	oid           uid.StringID
	clock         clock.Clocker
	jwt           jwt.JWT
	ins           instrument.Instrumentation
	enforcer      *casbin.Enforcer
	goroutine     *goroutine.Manager
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Idempotency   idempotency.Idempotency
	Validator     validator.Validator
	Config        config.Config
	HMAC          hash.Hash
	PasswordAlgo  hash.Algo
	PasswordOpts  hash.Options
	UID           uid.NumberID
	OID           uid.StringID
	Clock         clock.Clocker
	JWT           jwt.JWT
	Instrument    instrument.Instrumentation
	Enforcer      *casbin.Enforcer
	Goroutine     *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		idemp:         dep.Idempotency,
		validator:     dep.Validator,
		cfg:           dep.Config,
		hmac:          dep.HMAC,
		passwordAlgo:  dep.PasswordAlgo,
		passwordOpts:  dep.PasswordOpts,
		uid:           dep.UID,
		oid:           dep.OID,
		clock:         dep.Clock,
		jwt:           dep.JWT,
		ins:           dep.Instrument,
		enforcer:      dep.Enforcer,
		goroutine:     dep.Goroutine,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("access.usecase").Start(ctx, name)
}

// hashPassword digests a new password with the configured default algorithm.
func (s *Usecase) hashPassword(plain string) (string, error) {
	h, err := hash.New(s.passwordAlgo, s.passwordOpts)
	if err != nil {
		return "", err
	}

	digest, err := h.Hash(plain)
	if err != nil {
		return "", err
	}

	return string(digest), nil
}

// verifyPassword checks a password against the algorithm the stored digest
// was produced with, so imported accounts keep working without a rehash.
func (s *Usecase) verifyPassword(user *entity.User, plain string) bool {
	algo := user.PasswordAlgo
	if algo == "" {
		algo = s.passwordAlgo
	}

	opts := s.passwordOpts
	if len(user.PasswordOptions) > 0 {
		opts = decodePasswordOptions(user.PasswordOptions, opts)
	}

	h, err := hash.New(algo, opts)
	if err != nil {
		return false
	}

	return h.Verify(user.PasswordDigest, plain)
}

// decodePasswordOptions overlays per-record options (salts, cost parameters of
// imported digests) onto the configured base options.
//
// Imported accounts carry the flat key shape of the exporting system
// ({"salt":..., "costCpu":...}), not this package's nested Options struct.
func decodePasswordOptions(m valueobject.JSONMap, base hash.Options) hash.Options {
	raw, err := json.Marshal(m)
	if err != nil {
		return base
	}

	var flat struct {
		Salt          *string `json:"salt"`
		Length        *int    `json:"length"`
		CostCPU       *int    `json:"costCpu"`
		CostMemory    *int    `json:"costMemory"`
		CostParallel  *int    `json:"costParallel"`
		SaltSeparator *string `json:"saltSeparator"`
		SignerKey     *string `json:"signerKey"`
	}
	if err := json.Unmarshal(raw, &flat); err != nil {
		return base
	}

	opts := base
	if flat.Salt != nil {
		opts.Scrypt.Salt = *flat.Salt
		opts.ScryptModified.Salt = *flat.Salt
	}
	if flat.Length != nil {
		opts.Scrypt.Length = *flat.Length
	}
	if flat.CostCPU != nil {
		opts.Scrypt.CostCPU = *flat.CostCPU
	}
	if flat.CostMemory != nil {
		opts.Scrypt.CostMemory = *flat.CostMemory
	}
	if flat.CostParallel != nil {
		opts.Scrypt.CostParallel = *flat.CostParallel
	}
	if flat.SaltSeparator != nil {
		opts.ScryptModified.SaltSeparator = *flat.SaltSeparator
	}
	if flat.SignerKey != nil {
		opts.ScryptModified.SignerKey = *flat.SignerKey
	}

	return opts
}

func principalRoles(ctx context.Context) []string {
	return principal.Get(ctx).Roles
}

// authenticated returns the request principal when it is bound to a user,
// otherwise a uniform unauthorized error.
func (s *Usecase) authenticated(ctx context.Context) (principal.Principal, error) {
	p := principal.Get(ctx)
	if !p.Authenticated() {
		return p, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	return p, nil
}

// authorize checks the principal's derived roles against the permission
// engine. Roles are casbin subjects; the first one the policy allows wins.
func (s *Usecase) authorize(ctx context.Context, obj, act string) (principal.Principal, error) {
	p := principal.Get(ctx)
	if len(p.Roles) == 0 {
		return p, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	for _, sub := range p.Roles {
		ok, err := s.enforcer.Enforce(sub, obj, act)
		if err != nil {
			slog.ErrorContext(ctx, "failed to check authorization", "subject", sub, "error", err)
			return p, goerror.NewServer(err)
		}
		if ok {
			return p, nil
		}
	}

	return p, goerror.NewBusiness("Account not allowed", goerror.CodeForbidden)
}

func (s *Usecase) ensureUserStatusAllowed(ctx context.Context, user *entity.User) error {
	switch user.Status {
	case entity.UserStatusActive:
		return nil

	case entity.UserStatusBlocked:
		slog.WarnContext(ctx, "user account is blocked", "user_id", user.ID)
		return goerror.NewBusiness("account is blocked", goerror.CodeForbidden)

	default:
		slog.WarnContext(ctx, "user account status is unrecognized", "user_id", user.ID)
		return goerror.NewBusiness("account status is unrecognized", goerror.CodeForbidden)
	}
}
