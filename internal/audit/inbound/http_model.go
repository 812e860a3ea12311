package inbound

import (
	"time"

	"github.com/shandysiswandi/gotrust/internal/pkg/valueobject"
)

type EntryResponse struct {
	ID        int64               `json:"id,string"`
	Actor     string              `json:"actor,omitempty"`
	Action    string              `json:"action"`
	Resource  string              `json:"resource"`
	Metadata  valueobject.JSONMap `json:"metadata,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
}

type ListEntriesResponse struct {
	Entries []EntryResponse `json:"entries"`
	Total   int64           `json:"total"`
}

type ArchiveDayRequest struct {
	Day string `json:"day"`
}

type ArchiveDayResponse struct {
	Entries  int    `json:"entries"`
	Location string `json:"location"`
}
