package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atelier/internal/board"
	"atelier/internal/models"
	"atelier/internal/param"
	"atelier/internal/preset"
)

const testBaseURL = "https://atelier.place/session"

// clock13 is 13:02 on a fixed day, rounding to 13:00 for countdown targets.
func clock13() time.Time {
	return time.Date(2026, time.October, 16, 13, 2, 0, 0, time.Local)
}

func newBoardFixture(t *testing.T) (*BoardService, *memBoardRepo, *memEventRepo) {
	t.Helper()
	boards := newMemBoardRepo()
	events := &memEventRepo{}
	svc := NewBoardService(boards, events, Options{
		BaseURL: testBaseURL,
		Mode:    param.ModeQuery,
		Engine:  preset.NewEngine(preset.DefaultCatalog(), clock13),
		Now:     clock13,
	})
	return svc, boards, events
}

func TestBoardService_CreateNormalizesSeed(t *testing.T) {
	svc, boards, events := newBoardFixture(t)

	v, err := svc.Create(context.Background(), CreateParams{
		Name:  " Main hall ",
		Query: "?topLeftNotesSize=3&centerText=Hello&mainContentState=text",
	})
	require.NoError(t, err)

	assert.Equal(t, "Main hall", v.Name)
	assert.Equal(t, testBaseURL+"?centerText=Hello&mainContentState=text", v.URL)
	assert.Equal(t, board.ContentText, v.MainContent)

	stored, err := boards.Load(context.Background(), v.ID)
	require.NoError(t, err)
	assert.Equal(t, v.URL, stored.URL)
	assert.Equal(t, []string{models.EventCreated}, events.types())
	assert.Equal(t, v.URL, events.events[0].URL)
}

func TestBoardService_CreateDefaultsName(t *testing.T) {
	svc, _, _ := newBoardFixture(t)

	v, err := svc.Create(context.Background(), CreateParams{})
	require.NoError(t, err)
	assert.Equal(t, "board-"+v.ID[:8], v.Name)
	assert.Equal(t, testBaseURL, v.URL)
}

func TestBoardService_SetParamsOneEventPerCall(t *testing.T) {
	svc, _, events := newBoardFixture(t)
	ctx := context.Background()
	v, err := svc.Create(ctx, CreateParams{Name: "b"})
	require.NoError(t, err)

	v, err = svc.SetParams(ctx, v.ID, map[string]any{
		"countdownToTime":  "13:65",
		"mainContentState": "timer",
		"countdownTitle":   "Demos Start",
	})
	require.NoError(t, err)

	assert.Equal(t, "14:05", v.Countdown.Target)
	assert.Equal(t, "Demos Start", v.Countdown.Title)
	assert.Equal(t, []string{models.EventCreated, models.EventParamsSet}, events.types())
	assert.Equal(t, v.URL, events.events[1].URL)
}

func TestBoardService_SetParamsRejectsWholeBatch(t *testing.T) {
	svc, boards, events := newBoardFixture(t)
	ctx := context.Background()
	v, err := svc.Create(ctx, CreateParams{Name: "b"})
	require.NoError(t, err)

	_, err = svc.SetParams(ctx, v.ID, map[string]any{"centerText": "hi", "nope": 1})
	assert.ErrorIs(t, err, ErrInvalidParams)

	_, err = svc.SetParams(ctx, v.ID, nil)
	assert.ErrorIs(t, err, ErrInvalidParams)

	stored, _ := boards.Load(ctx, v.ID)
	assert.Equal(t, testBaseURL, stored.URL)
	assert.Len(t, events.events, 1)
}

func TestBoardService_StageLifecycle(t *testing.T) {
	svc, _, events := newBoardFixture(t)
	ctx := context.Background()
	v, err := svc.Create(ctx, CreateParams{Name: "b", Query: "qotd=old"})
	require.NoError(t, err)

	v, err = svc.SelectStage(ctx, v.ID, "UBC", "welcome")
	require.NoError(t, err)
	assert.Equal(t, "UBC", v.Preset)
	assert.Equal(t, "welcome", v.Stage)
	assert.Equal(t, "[TODO]", v.QOTD)

	v, err = svc.Advance(ctx, v.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, "work session1", v.Stage)
	assert.Equal(t, "14:10", v.Countdown.Target)

	_, err = svc.Advance(ctx, v.ID, 10)
	assert.ErrorIs(t, err, ErrNoStage)

	_, err = svc.SelectStage(ctx, v.ID, "UBC", "afterparty")
	assert.ErrorIs(t, err, ErrUnknownStage)

	// Rejected moves leave the board as it was.
	got, err := svc.Get(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, v.URL, got.URL)
	assert.Equal(t, "work session1", got.Stage)

	v, err = svc.Reset(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, testBaseURL, v.URL)

	assert.Equal(t, []string{
		models.EventCreated,
		models.EventStageApplied,
		models.EventStageApplied,
		models.EventReset,
	}, events.types())
	assert.Equal(t, map[string]any{"preset": "UBC", "stage": "work session1"}, events.events[2].Metadata)
}

func TestBoardService_NotFound(t *testing.T) {
	svc, _, _ := newBoardFixture(t)
	ctx := context.Background()

	_, err := svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrBoardNotFound)
	_, err = svc.Reset(ctx, "missing")
	assert.ErrorIs(t, err, ErrBoardNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "missing"), ErrBoardNotFound)
}

func TestBoardService_DeleteAndList(t *testing.T) {
	svc, _, _ := newBoardFixture(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, CreateParams{Name: "a"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateParams{Name: "b"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, a.ID))
	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "b", list[0].Name)
}

func TestBoardService_SaveErrorRecordsNothing(t *testing.T) {
	svc, boards, events := newBoardFixture(t)
	ctx := context.Background()
	v, err := svc.Create(ctx, CreateParams{Name: "b"})
	require.NoError(t, err)

	boards.saveErr = errors.New("disk full")
	_, err = svc.Reset(ctx, v.ID)
	assert.Error(t, err)
	assert.Len(t, events.events, 1)
}

func TestBoardService_ConcurrentWritersAreSerialized(t *testing.T) {
	svc, boards, events := newBoardFixture(t)
	ctx := context.Background()
	v, err := svc.Create(ctx, CreateParams{Name: "b"})
	require.NoError(t, err)

	keys := []string{"topRightText", "bottomLeftText", "bottomRightText", "centerText"}
	var wg sync.WaitGroup
	for _, k := range keys {
		wg.Add(1)
		go func(k string) {
			defer wg.Done()
			_, err := svc.SetParams(ctx, v.ID, map[string]any{k: "x"})
			assert.NoError(t, err)
		}(k)
	}
	wg.Wait()

	stored, _ := boards.Load(ctx, v.ID)
	st, err := board.Open(stored.URL, param.ModeQuery, nil)
	require.NoError(t, err)
	for _, k := range keys {
		assert.Equal(t, "x", st.Value(k), k)
	}
	assert.Len(t, events.events, 1+len(keys))
}

func TestWithParams(t *testing.T) {
	cases := []struct {
		name    string
		base    string
		mode    param.Mode
		encoded string
		want    string
	}{
		{"blank", "/s", param.ModeQuery, " ", "/s"},
		{"leading marker", "/s", param.ModeQuery, "?a=1", "/s?a=1"},
		{"hash", "/s", param.ModeHash, "a=1", "/s#a=1"},
		{"base query kept", "https://atelier.place/session?event=ubc", param.ModeQuery, "mainContentState=timer", "https://atelier.place/session?event=ubc&mainContentState=timer"},
		{"override", "/s?a=1&b=2", param.ModeQuery, "a=3", "/s?a=3&b=2"},
		{"query mode keeps fragment", "/s?a=1#top", param.ModeQuery, "b=2", "/s?a=1&b=2#top"},
		{"base fragment kept", "/s?x=1#event=ubc", param.ModeHash, "centerText=hi%20there", "/s?x=1#centerText=hi+there&event=ubc"},
		{"malformed pair dropped", "/s?event=ubc", param.ModeQuery, "a=%zz&b=2", "/s?b=2&event=ubc"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := withParams(tc.base, tc.mode, tc.encoded)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := withParams("http://[::1", param.ModeQuery, "a=1")
	assert.Error(t, err)
}

func TestBoardService_CreateOnBaseWithQuery(t *testing.T) {
	svc := NewBoardService(newMemBoardRepo(), &memEventRepo{}, Options{
		BaseURL: "https://atelier.place/session?event=ubc",
		Mode:    param.ModeQuery,
		Engine:  preset.NewEngine(preset.DefaultCatalog(), clock13),
		Now:     clock13,
	})

	v, err := svc.Create(context.Background(), CreateParams{Name: "Demo", Query: "mainContentState=timer"})
	require.NoError(t, err)
	assert.Equal(t, "timer", v.MainContent)
	assert.Contains(t, v.URL, "event=ubc")
	assert.Contains(t, v.URL, "mainContentState=timer")
}
