package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atelier/internal/models"
	"atelier/internal/param"
)

func at(h, m int) time.Time {
	return time.Date(2026, time.October, 16, h, m, 0, 0, time.Local)
}

func TestWatcherService_RecordsElapsedOnce(t *testing.T) {
	boards := newMemBoardRepo()
	events := &memEventRepo{}
	ctx := context.Background()

	require.NoError(t, boards.Save(ctx, models.Board{ID: "timer", URL: testBaseURL + "?mainContentState=timer&countdownToTime=13:20"}))
	require.NoError(t, boards.Save(ctx, models.Board{ID: "text", URL: testBaseURL + "?mainContentState=text&countdownToTime=13:20"}))

	w := NewWatcherService(boards, events, Options{Mode: param.ModeQuery})

	require.NoError(t, w.Check(ctx, at(13, 19)))
	assert.Empty(t, events.events)

	require.NoError(t, w.Check(ctx, at(13, 20)))
	require.NoError(t, w.Check(ctx, at(13, 21)))
	require.Len(t, events.events, 1)
	assert.Equal(t, "timer", events.events[0].BoardID)
	assert.Equal(t, models.EventCountdownElapsed, events.events[0].Type)
	assert.Equal(t, "Break Starts at 1:20", events.events[0].Description)

	// A new target rearms the board.
	require.NoError(t, boards.Save(ctx, models.Board{ID: "timer", URL: testBaseURL + "?mainContentState=timer&countdownToTime=13:30"}))
	require.NoError(t, w.Check(ctx, at(13, 25)))
	require.NoError(t, w.Check(ctx, at(13, 30)))
	assert.Len(t, events.events, 2)
}

func TestWatcherService_CheckErrors(t *testing.T) {
	boards := newMemBoardRepo()
	boards.listErr = errors.New("db gone")
	w := NewWatcherService(boards, &memEventRepo{}, Options{})
	assert.Error(t, w.Check(context.Background(), time.Now()))
}

func TestWatcherService_RunStopsOnCancel(t *testing.T) {
	w := NewWatcherService(newMemBoardRepo(), &memEventRepo{}, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx, 5*time.Millisecond)
		close(done)
	}()
	time.Sleep(20 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}
