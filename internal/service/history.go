package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"atelier/internal/models"
	"atelier/internal/repository"
)

type HistoryService struct {
	eventRepo repository.EventRepo
}

func NewHistoryService(eventRepo repository.EventRepo) *HistoryService {
	return &HistoryService{eventRepo: eventRepo}
}

var (
	errInvalidTimeRange = errors.New("invalid time range: From must be <= To")
)

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeEventType trims spaces and uppercases the event type filter.
func normalizeEventType(s string) string {
	return strings.TrimSpace(strings.ToUpper(s))
}

// normalizeAndValidateFilter prepares query parameters and validates the time range.
func normalizeAndValidateFilter(f LogFilter) (LogFilter, error) {
	out := LogFilter{
		BoardID: strings.TrimSpace(f.BoardID),
		From:    normalizeToUTC(f.From),
		To:      normalizeToUTC(f.To),
		Type:    normalizeEventType(f.Type),
	}
	if !out.From.IsZero() && !out.To.IsZero() && out.From.After(out.To) {
		return LogFilter{}, errInvalidTimeRange
	}
	return out, nil
}

// List returns the navigation entries that match f, oldest first.
func (s *HistoryService) List(ctx context.Context, f LogFilter) ([]models.BoardEvent, error) {
	f, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.eventRepo.List(ctx, f.BoardID, f.From, f.To, f.Type)
}

// IsInvalidRange reports whether err came from a reversed time range.
func IsInvalidRange(err error) bool { return errors.Is(err, errInvalidTimeRange) }
