package inbound

import (
	"github.com/shandysiswandi/gotrust/internal/audit/usecase"
	"github.com/shandysiswandi/gotrust/internal/pkg/router"
)

type HTTPEndpoint struct {
	uc uc
}

// ListEntries returns audit entries matching the filters.
// @Summary List audit entries
// @Description Returns audit entries filtered by action, actor and date range. Requires an authorized role.
// @Tags Audit
// @Produce json
// @Param action query string false "Filter by action, e.g. user.registered"
// @Param actor query string false "Filter by actor user ID"
// @Param date_from query string false "Start date (YYYY-MM-DD)"
// @Param date_to query string false "End date (YYYY-MM-DD)"
// @Param size query int false "Page size (max 100)"
// @Param page query int false "Page number"
// @Success 200 {object} router.successResponse{data=ListEntriesResponse} "Audit entries"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 403 {object} router.errorResponse "Account not allowed"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/audit/entries [get]
func (h *HTTPEndpoint) ListEntries(r *router.Request) (any, error) {
	dateFrom, err := r.GetQueryDate("date_from", "2006-01-02")
	if err != nil {
		return nil, err
	}

	dateTo, err := r.GetQueryDate("date_to", "2006-01-02")
	if err != nil {
		return nil, err
	}

	size, err := r.GetQueryInt32("size")
	if err != nil {
		return nil, err
	}

	page, err := r.GetQueryInt32("page")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.ListEntries(r.Context(), usecase.ListEntriesInput{
		Action:   r.GetQuery("action"),
		Actor:    r.GetQuery("actor"),
		DateFrom: dateFrom,
		DateTo:   dateTo,
		Size:     size,
		Page:     page,
	})
	if err != nil {
		return nil, err
	}

	entries := make([]EntryResponse, 0, len(resp.Entries))
	for _, e := range resp.Entries {
		entries = append(entries, EntryResponse{
			ID:        e.ID,
			Actor:     e.Actor,
			Action:    e.Action,
			Resource:  e.Resource,
			Metadata:  e.Metadata,
			CreatedAt: e.CreatedAt,
		})
	}

	return ListEntriesResponse{Entries: entries, Total: resp.Total}, nil
}

// ArchiveDay exports one day of audit entries to object storage.
// @Summary Archive audit entries
// @Description Exports all audit entries for the given day as a JSON document in object storage.
// @Tags Audit
// @Accept json
// @Produce json
// @Param request body ArchiveDayRequest true "Archive payload"
// @Success 200 {object} router.successResponse{data=ArchiveDayResponse} "Archive result"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 403 {object} router.errorResponse "Account not allowed"
// @Failure 404 {object} router.errorResponse "No entries for that day"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/audit/archives [post]
func (h *HTTPEndpoint) ArchiveDay(r *router.Request) (any, error) {
	var req ArchiveDayRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.ArchiveDay(r.Context(), usecase.ArchiveDayInput{Day: req.Day})
	if err != nil {
		return nil, err
	}

	return ArchiveDayResponse{Entries: resp.Entries, Location: resp.Location}, nil
}
