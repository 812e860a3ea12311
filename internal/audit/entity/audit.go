package entity

import (
	"time"

	"github.com/shandysiswandi/gotrust/internal/pkg/valueobject"
)

// Entry is one immutable audit record. Entries are only ever inserted,
// listed and archived.
type Entry struct {
	ID        int64
	Actor     string // user ID, or empty for anonymous/machine activity
	Action    string // e.g. "user.registered", "session.created"
	Resource  string // e.g. "user:123", "session:abc"
	Metadata  valueobject.JSONMap
	CreatedAt time.Time
}

type ListFilter struct {
	Action   string
	Actor    string
	DateFrom time.Time
	DateTo   time.Time
	Size     int32
	Page     int32
}
