package service

import (
	"time"

	"atelier/internal/board"
)

// CreateParams describes a new board.
type CreateParams struct {
	Name string
	// Query is an optional encoded parameter collection the board starts from.
	Query string
}

// BoardView is a persisted board drawn at one instant.
type BoardView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	board.View
}

// LogFilter supports history filtering by board, time range and type.
type LogFilter struct {
	BoardID string
	From    time.Time // inclusive; zero means no lower bound
	To      time.Time // inclusive; zero means no upper bound
	Type    string    // "", "CREATED", "PARAMS_SET", "RESET", "STAGE_APPLIED", "COUNTDOWN_ELAPSED"
}
