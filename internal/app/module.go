package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/gotrust/internal/access"
	"github.com/shandysiswandi/gotrust/internal/audit"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.access.enabled") {
		if err := access.New(access.Dependency{
			DBConn:       a.dbConn,
			CacheConn:    a.cacheConn,
			Goroutine:    a.goroutine,
			Enforcer:     a.casbin,
			Router:       a.router,
			Resolver:     a.resolver,
			Idempotency:  a.idemp,
			Messaging:    a.messaging,
			Config:       a.config,
			Instrument:   a.ins,
			UID:          a.uid,
			OID:          a.oid,
			HMAC:         a.hmac,
			PasswordAlgo: a.passwordAlgo,
			PasswordOpts: a.passwordOpts,
			Clock:        a.clock,
			Validator:    a.validator,
			JWT:          a.jwt,
		}); err != nil {
			slog.Error("failed to init module access", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.audit.enabled") {
		if err := audit.New(audit.Dependency{
			Ctx:        a.ctx,
			DBConn:     a.dbConn,
			Storage:    a.storage,
			Enforcer:   a.casbin,
			Router:     a.router,
			Messaging:  a.messaging,
			Config:     a.config,
			Instrument: a.ins,
			UID:        a.uid,
			UUID:       a.uuid,
			Clock:      a.clock,
			Goroutine:  a.goroutine,
			Validator:  a.validator,
		}); err != nil {
			slog.Error("failed to init module audit", "error", err)
			os.Exit(1)
		}
	}
}
