package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"atelier/internal/models"
)

type EventSQLite struct {
	db *sql.DB
}

func NewEventSQLite(db *sql.DB) *EventSQLite { return &EventSQLite{db: db} }

var _ EventRepo = (*EventSQLite)(nil)

const insertEventSQL = `
		INSERT INTO board_events (id, board_id, occurred_at, type, message, url, meta)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

// Append inserts a new event. If EventID or OccurredAt are empty, they’re set.
func (r *EventSQLite) Append(ctx context.Context, e models.BoardEvent) error {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	e.OccurredAt = utcOrNow(e.OccurredAt)

	var metaPtr *string
	if e.Metadata != nil {
		if b, err := json.Marshal(e.Metadata); err == nil {
			s := string(b)
			metaPtr = &s
		}
	}

	_, err := r.db.ExecContext(ctx, insertEventSQL,
		e.EventID,
		e.BoardID,
		e.OccurredAt.Format(timeLayout),
		strings.ToUpper(strings.TrimSpace(e.Type)),
		e.Description,
		e.URL,
		metaPtr,
	)
	if err != nil {
		return fmt.Errorf("append %s event for board %q: %w", e.Type, e.BoardID, err)
	}
	return nil
}

// List returns events filtered by board, [from, to] (inclusive) and/or type,
// in the order they were appended.
func (r *EventSQLite) List(ctx context.Context, boardID string, from, to time.Time, typ string) ([]models.BoardEvent, error) {
	var (
		conds []string
		args  []any
	)

	if boardID != "" {
		conds = append(conds, "board_id = ?")
		args = append(args, boardID)
	}
	if !from.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, from.UTC().Format(timeLayout))
	}
	if !to.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, to.UTC().Format(timeLayout))
	}
	if typ = strings.ToUpper(strings.TrimSpace(typ)); typ != "" {
		conds = append(conds, "type = ?")
		args = append(args, typ)
	}

	q := `SELECT id, board_id, occurred_at, type, message, url, meta FROM board_events`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY occurred_at ASC, rowid ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list board events: %w", err)
	}
	defer rows.Close()

	out := make([]models.BoardEvent, 0, 64)
	for rows.Next() {
		var ev models.BoardEvent
		var metaStr sql.NullString
		if err := rows.Scan(&ev.EventID, &ev.BoardID, &ev.OccurredAt, &ev.Type, &ev.Description, &ev.URL, &metaStr); err != nil {
			return nil, fmt.Errorf("scan board event: %w", err)
		}
		ev.OccurredAt = ev.OccurredAt.UTC()

		if metaStr.Valid && metaStr.String != "" {
			var v any
			if err := json.Unmarshal([]byte(metaStr.String), &v); err == nil {
				ev.Metadata = v
			} else {
				ev.Metadata = metaStr.String // keep raw if malformed
			}
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
