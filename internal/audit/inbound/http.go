package inbound

import (
	"context"

	"github.com/shandysiswandi/gotrust/internal/audit/usecase"
	"github.com/shandysiswandi/gotrust/internal/pkg/router"
)

type uc interface {
	Record(ctx context.Context, in usecase.RecordInput) error
	ListEntries(ctx context.Context, in usecase.ListEntriesInput) (*usecase.ListEntriesOutput, error)
	ArchiveDay(ctx context.Context, in usecase.ArchiveDayInput) (*usecase.ArchiveDayOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/api/v1/audit/entries", end.ListEntries)
	r.POST("/api/v1/audit/archives", end.ArchiveDay)
}
