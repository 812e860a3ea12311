package access

import (
	"github.com/casbin/casbin/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/gotrust/internal/access/inbound"
	"github.com/shandysiswandi/gotrust/internal/access/outbound/db"
	"github.com/shandysiswandi/gotrust/internal/access/outbound/mq"
	"github.com/shandysiswandi/gotrust/internal/access/usecase"
	"github.com/shandysiswandi/gotrust/internal/pkg/clock"
	"github.com/shandysiswandi/gotrust/internal/pkg/config"
	"github.com/shandysiswandi/gotrust/internal/pkg/goroutine"
	"github.com/shandysiswandi/gotrust/internal/pkg/hash"
	"github.com/shandysiswandi/gotrust/internal/pkg/idempotency"
	"github.com/shandysiswandi/gotrust/internal/pkg/instrument"
	"github.com/shandysiswandi/gotrust/internal/pkg/jwt"
	"github.com/shandysiswandi/gotrust/internal/pkg/messaging"
	"github.com/shandysiswandi/gotrust/internal/pkg/principal"
	"github.com/shandysiswandi/gotrust/internal/pkg/router"
	"github.com/shandysiswandi/gotrust/internal/pkg/uid"
	"github.com/shandysiswandi/gotrust/internal/pkg/validator"
)

type Dependency struct {
	DBConn       *pgxpool.Pool              `validate:"required"`
	CacheConn    *redis.Client              `validate:"required"`
	Goroutine    *goroutine.Manager         `validate:"required"`
	Enforcer     *casbin.Enforcer           `validate:"required"`
	Router       *router.Router             `validate:"required"`
	Resolver     *principal.Deferred        `validate:"required"`
	Idempotency  idempotency.Idempotency    `validate:"required"`
	Messaging    messaging.Messaging        `validate:"required"`
	Config       config.Config              `validate:"required"`
	Instrument   instrument.Instrumentation `validate:"required"`
	UID          uid.NumberID               `validate:"required"`
	OID          uid.StringID               `validate:"required"`
	HMAC         hash.Hash                  `validate:"required"`
	PasswordAlgo hash.Algo                  `validate:"required"`
	PasswordOpts hash.Options
	Clock        clock.Clocker       `validate:"required"`
	Validator    validator.Validator `validate:"required"`
	JWT          jwt.JWT             `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	dbAccess := db.NewDB(dep.DBConn, dep.Instrument)
	repoMsg := mq.NewMessaging(dep.Messaging, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:        dbAccess,
		RepoMessaging: repoMsg,
		Idempotency:   dep.Idempotency,
		Validator:     dep.Validator,
		Config:        dep.Config,
		HMAC:          dep.HMAC,
		PasswordAlgo:  dep.PasswordAlgo,
		PasswordOpts:  dep.PasswordOpts,
		UID:           dep.UID,
		OID:           dep.OID,
		Clock:         dep.Clock,
		JWT:           dep.JWT,
		Instrument:    dep.Instrument,
		Enforcer:      dep.Enforcer,
		Goroutine:     dep.Goroutine,
	})

	// The router was built before this module existed; hand it the real
	// principal resolver now.
	dep.Resolver.Install(uc)

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
