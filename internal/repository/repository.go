package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"atelier/internal/models"
)

var (
	// ErrNotFound is returned when a board or host does not exist.
	ErrNotFound = errors.New("not found")
	// ErrHostExists is returned when a username is already registered.
	ErrHostExists = errors.New("host already exists")
)

// timeLayout is how timestamps are written to TIMESTAMP columns.
const timeLayout = "2006-01-02 15:04:05.000"

// HostRepo stores host accounts. Usernames compare case-insensitively.
type HostRepo interface {
	Create(ctx context.Context, h models.Host) (int, error)
	GetByUsername(ctx context.Context, username string) (models.Host, error)
}

type BoardRepo interface {
	Save(ctx context.Context, b models.Board) error
	Load(ctx context.Context, id string) (models.Board, error)
	List(ctx context.Context) ([]models.Board, error)
	Delete(ctx context.Context, id string) error
}

type EventRepo interface {
	Append(ctx context.Context, e models.BoardEvent) error
	List(ctx context.Context, boardID string, from, to time.Time, typ string) ([]models.BoardEvent, error)
}

type Repository struct {
	BoardRepo BoardRepo
	EventRepo EventRepo
	HostRepo  HostRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		BoardRepo: NewBoardSQLite(db),
		EventRepo: NewEventSQLite(db),
		HostRepo:  NewHostSQLite(db),
	}
}
