package usecase

import (
	"context"
	"log/slog"

	"github.com/casbin/casbin/v3"
	"github.com/shandysiswandi/gotrust/internal/audit/entity"
	"github.com/shandysiswandi/gotrust/internal/pkg/clock"
	"github.com/shandysiswandi/gotrust/internal/pkg/config"
	"github.com/shandysiswandi/gotrust/internal/pkg/goerror"
	"github.com/shandysiswandi/gotrust/internal/pkg/instrument"
	"github.com/shandysiswandi/gotrust/internal/pkg/principal"
	"github.com/shandysiswandi/gotrust/internal/pkg/uid"
	"github.com/shandysiswandi/gotrust/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type repoDB interface {
	CreateEntry(ctx context.Context, e entity.Entry) error
	ListEntries(ctx context.Context, filter entity.ListFilter) ([]entity.Entry, int64, error)
	GetEntriesByDay(ctx context.Context, day string) ([]entity.Entry, error)
}

type repoArchive interface {
	Store(ctx context.Context, key string, data []byte) (location string, err error)
}

type Usecase struct {
	repoDB      repoDB
	repoArchive repoArchive
	cfg         config.Config
	uid         uid.NumberID
	clock       clock.Clocker
	validator   validator.Validator
	ins         instrument.Instrumentation
	enforcer    *casbin.Enforcer
}

type Dependency struct {
	RepoDB      repoDB
	RepoArchive repoArchive
	Config      config.Config
	UID         uid.NumberID
	Clock       clock.Clocker
	Validator   validator.Validator
	Instrument  instrument.Instrumentation
	Enforcer    *casbin.Enforcer
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:      dep.RepoDB,
		repoArchive: dep.RepoArchive,
		cfg:         dep.Config,
		uid:         dep.UID,
		clock:       dep.Clock,
		validator:   dep.Validator,
		ins:         dep.Instrument,
		enforcer:    dep.Enforcer,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("audit.usecase").Start(ctx, name)
}

func (s *Usecase) authorize(ctx context.Context, obj, act string) error {
	p := principal.Get(ctx)
	if len(p.Roles) == 0 {
		return goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	for _, sub := range p.Roles {
		ok, err := s.enforcer.Enforce(sub, obj, act)
		if err != nil {
			slog.ErrorContext(ctx, "failed to check authorization", "subject", sub, "error", err)
			return goerror.NewServer(err)
		}
		if ok {
			return nil
		}
	}

	return goerror.NewBusiness("Account not allowed", goerror.CodeForbidden)
}
