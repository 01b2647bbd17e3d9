package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"atelier/internal/models"
)

type BoardSQLite struct {
	db *sql.DB
}

func NewBoardSQLite(db *sql.DB) *BoardSQLite {
	return &BoardSQLite{db: db}
}

var _ BoardRepo = (*BoardSQLite)(nil)

const (
	upsertBoardSQL = `
		INSERT INTO boards (id, name, url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name,
			url=excluded.url,
			updated_at=excluded.updated_at
	`

	selectBoardSQL = `SELECT id, name, url, created_at, updated_at FROM boards WHERE id=?`

	selectBoardsSQL = `SELECT id, name, url, created_at, updated_at FROM boards ORDER BY created_at ASC, id ASC`

	deleteBoardSQL = `DELETE FROM boards WHERE id=?`
)

// utcOrNow returns t in UTC, or the current time when t is zero.
func utcOrNow(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t.UTC()
}

// Save inserts the board or replaces its name, URL and update time.
func (r *BoardSQLite) Save(ctx context.Context, b models.Board) error {
	updated := utcOrNow(b.UpdatedAt)
	created := b.CreatedAt
	if created.IsZero() {
		created = updated
	}

	_, err := r.db.ExecContext(ctx, upsertBoardSQL,
		b.ID,
		b.Name,
		b.URL,
		created.UTC().Format(timeLayout),
		updated.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("save board %q: %w", b.ID, err)
	}
	return nil
}

// Load fetches one board. Missing boards yield ErrNotFound.
func (r *BoardSQLite) Load(ctx context.Context, id string) (models.Board, error) {
	b, err := scanBoard(r.db.QueryRowContext(ctx, selectBoardSQL, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Board{}, fmt.Errorf("board %q: %w", id, ErrNotFound)
		}
		return models.Board{}, fmt.Errorf("load board %q: %w", id, err)
	}
	return b, nil
}

// List returns every board, oldest first.
func (r *BoardSQLite) List(ctx context.Context) ([]models.Board, error) {
	rows, err := r.db.QueryContext(ctx, selectBoardsSQL)
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}
	defer rows.Close()

	out := make([]models.Board, 0, 8)
	for rows.Next() {
		b, err := scanBoard(rows)
		if err != nil {
			return nil, fmt.Errorf("scan board: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a board together with its events.
func (r *BoardSQLite) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deleteBoardSQL, id)
	if err != nil {
		return fmt.Errorf("delete board %q: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete board %q: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("board %q: %w", id, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBoard(row rowScanner) (models.Board, error) {
	var b models.Board
	if err := row.Scan(&b.ID, &b.Name, &b.URL, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return models.Board{}, err
	}
	b.CreatedAt = b.CreatedAt.UTC()
	b.UpdatedAt = b.UpdatedAt.UTC()
	return b, nil
}
