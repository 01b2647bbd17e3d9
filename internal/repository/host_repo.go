package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"atelier/internal/models"
)

type HostSQLite struct {
	db *sql.DB
}

func NewHostSQLite(db *sql.DB) *HostSQLite {
	return &HostSQLite{db: db}
}

var _ HostRepo = (*HostSQLite)(nil)

const (
	insertHostSQL           = `INSERT INTO hosts (username, password_hash, created_at) VALUES (?, ?, ?)`
	selectHostByUsernameSQL = `SELECT id, username, password_hash, created_at FROM hosts WHERE username = ?`
)

// Create inserts a host account and returns its ID. A taken username
// yields ErrHostExists.
func (r *HostSQLite) Create(ctx context.Context, h models.Host) (int, error) {
	res, err := r.db.ExecContext(ctx, insertHostSQL,
		h.Username,
		h.PasswordHash,
		utcOrNow(h.CreatedAt).Format(timeLayout),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: %q", ErrHostExists, h.Username)
		}
		return 0, fmt.Errorf("insert host %q: %w", h.Username, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for host %q: %w", h.Username, err)
	}
	return int(id), nil
}

// GetByUsername fetches a host; ErrNotFound when there is none.
func (r *HostSQLite) GetByUsername(ctx context.Context, username string) (models.Host, error) {
	var h models.Host
	err := r.db.QueryRowContext(ctx, selectHostByUsernameSQL, username).
		Scan(&h.ID, &h.Username, &h.PasswordHash, &h.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Host{}, fmt.Errorf("host %q: %w", username, ErrNotFound)
		}
		return models.Host{}, fmt.Errorf("select host %q: %w", username, err)
	}
	h.CreatedAt = h.CreatedAt.UTC()
	return h, nil
}

// sqlite reports constraint failures only through the message text.
func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
