package db

import (
	"context"
	"strconv"

	"github.com/shandysiswandi/gotrust/internal/audit/entity"
)

const entryColumns = "id, actor, action, resource, metadata, created_at"

func (s *DB) ListEntries(ctx context.Context, filter entity.ListFilter) (entries []entity.Entry, total int64, err error) {
	ctx, span := s.startSpan(ctx, "ListEntries")
	defer func() { s.endSpan(span, err) }()

	where := " WHERE 1=1"
	args := []any{}

	if filter.Action != "" {
		args = append(args, filter.Action)
		where += " AND action = $" + strconv.Itoa(len(args))
	}
	if filter.Actor != "" {
		args = append(args, filter.Actor)
		where += " AND actor = $" + strconv.Itoa(len(args))
	}
	if !filter.DateFrom.IsZero() {
		args = append(args, filter.DateFrom)
		where += " AND created_at >= $" + strconv.Itoa(len(args))
	}
	if !filter.DateTo.IsZero() {
		args = append(args, filter.DateTo)
		where += " AND created_at < $" + strconv.Itoa(len(args))
	}

	if err = s.conn.QueryRow(ctx, "SELECT COUNT(*) FROM audit_entries"+where, args...).Scan(&total); err != nil {
		return nil, 0, s.mapError(err)
	}

	args = append(args, filter.Size)
	limit := " ORDER BY created_at DESC LIMIT $" + strconv.Itoa(len(args))
	args = append(args, (filter.Page-1)*filter.Size)
	limit += " OFFSET $" + strconv.Itoa(len(args))

	rows, err := s.conn.Query(ctx, "SELECT "+entryColumns+" FROM audit_entries"+where+limit, args...)
	if err != nil {
		return nil, 0, s.mapError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var e entity.Entry
		if err = rows.Scan(&e.ID, &e.Actor, &e.Action, &e.Resource, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, 0, s.mapError(err)
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, s.mapError(err)
	}

	return entries, total, nil
}

func (s *DB) GetEntriesByDay(ctx context.Context, day string) (entries []entity.Entry, err error) {
	ctx, span := s.startSpan(ctx, "GetEntriesByDay")
	defer func() { s.endSpan(span, err) }()

	query := `
		SELECT ` + entryColumns + `
		FROM audit_entries
		WHERE created_at >= $1::date AND created_at < $1::date + INTERVAL '1 day'
		ORDER BY created_at ASC
	`

	rows, err := s.conn.Query(ctx, query, day)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var e entity.Entry
		if err = rows.Scan(&e.ID, &e.Actor, &e.Action, &e.Resource, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, s.mapError(err)
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return entries, nil
}
