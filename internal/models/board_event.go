package models

import "time"

// Board event types.
const (
	EventCreated          = "CREATED"
	EventParamsSet        = "PARAMS_SET"
	EventReset            = "RESET"
	EventStageApplied     = "STAGE_APPLIED"
	EventCountdownElapsed = "COUNTDOWN_ELAPSED"
)

// BoardEvent is a single navigation entry of a board.
type BoardEvent struct {
	EventID     string    `json:"event_id"`
	BoardID     string    `json:"board_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // CREATED | PARAMS_SET | RESET | STAGE_APPLIED | COUNTDOWN_ELAPSED
	Description string    `json:"description"` // human-readable
	URL         string    `json:"url"`         // board URL after the change
	Metadata    any       `json:"metadata,omitempty"`
}
