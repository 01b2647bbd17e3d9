package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"atelier/internal/models"
)

func Test_normalizeToUTC(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   time.Time
		want func(time.Time) bool
	}{
		{
			name: "zero time remains zero",
			in:   time.Time{},
			want: func(out time.Time) bool { return out.IsZero() },
		},
		{
			name: "non-UTC converted to UTC preserving instant",
			in:   time.Date(2026, time.August, 1, 12, 34, 56, 0, time.FixedZone("UTC-7", -7*3600)),
			want: func(out time.Time) bool {
				exp := time.Date(2026, time.August, 1, 19, 34, 56, 0, time.UTC)
				return out.Location() == time.UTC && out.Equal(exp)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := normalizeToUTC(tt.in); !tt.want(got) {
				t.Fatalf("unexpected result: %v", got)
			}
		})
	}
}

func Test_normalizeAndValidateFilter(t *testing.T) {
	t.Parallel()

	from := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	to := from.Add(time.Hour)

	got, err := normalizeAndValidateFilter(LogFilter{BoardID: " b1 ", From: from, To: to, Type: " stage_applied "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.BoardID != "b1" || got.Type != models.EventStageApplied {
		t.Fatalf("unexpected filter: %+v", got)
	}

	_, err = normalizeAndValidateFilter(LogFilter{From: to, To: from})
	if !IsInvalidRange(err) {
		t.Fatalf("expected invalid range, got %v", err)
	}

	// open-ended ranges are fine
	if _, err := normalizeAndValidateFilter(LogFilter{From: to}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHistoryService_List_PassesNormalizedFilter(t *testing.T) {
	t.Parallel()

	repo := &memEventRepo{events: []models.BoardEvent{
		{BoardID: "b1", Type: models.EventCreated},
		{BoardID: "b2", Type: models.EventCreated},
		{BoardID: "b1", Type: models.EventReset},
	}}
	svc := NewHistoryService(repo)

	loc := time.FixedZone("PDT", -7*3600)
	from := time.Date(2026, 5, 1, 9, 0, 0, 0, loc)
	got, err := svc.List(context.Background(), LogFilter{BoardID: "b1", From: from, Type: "reset"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0].Type != models.EventReset {
		t.Fatalf("unexpected events: %+v", got)
	}
	if repo.gotFrom.Location() != time.UTC || !repo.gotFrom.Equal(from) {
		t.Fatalf("from not normalized: %v", repo.gotFrom)
	}
	if !repo.gotTo.IsZero() || repo.gotType != "RESET" || repo.gotBoard != "b1" {
		t.Fatalf("unexpected captured filter: %q %v %q", repo.gotBoard, repo.gotTo, repo.gotType)
	}
}

func TestHistoryService_List_InvalidRangeSkipsRepo(t *testing.T) {
	t.Parallel()

	repo := &memEventRepo{}
	now := time.Now()
	_, err := NewHistoryService(repo).List(context.Background(), LogFilter{From: now, To: now.Add(-time.Second)})
	if err == nil {
		t.Fatalf("expected error")
	}
	if repo.calls != 0 {
		t.Fatalf("repo should not be called, got %d calls", repo.calls)
	}
}

func TestHistoryService_List_RepoError(t *testing.T) {
	t.Parallel()

	repo := &memEventRepo{listErr: errors.New("locked")}
	if _, err := NewHistoryService(repo).List(context.Background(), LogFilter{}); err == nil {
		t.Fatalf("expected error")
	}
}
