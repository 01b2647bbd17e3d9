package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"atelier/internal/board"
	"atelier/internal/countdown"
	"atelier/internal/logger"
	"atelier/internal/models"
	"atelier/internal/param"
	"atelier/internal/repository"
)

// WatcherService notices boards whose countdown has run out.
type WatcherService struct {
	boardRepo repository.BoardRepo
	eventRepo repository.EventRepo
	mode      param.Mode
	log       *logger.Logger

	mu    sync.Mutex
	fired map[string]string // board ID -> countdown key already recorded
}

func NewWatcherService(boardRepo repository.BoardRepo, eventRepo repository.EventRepo, opts Options) *WatcherService {
	return &WatcherService{
		boardRepo: boardRepo,
		eventRepo: eventRepo,
		mode:      opts.Mode,
		log:       opts.Log,
		fired:     make(map[string]string),
	}
}

// Run checks every board on each tick until ctx is canceled.
func (s *WatcherService) Run(ctx context.Context, tick time.Duration) {
	countdown.Run(ctx, tick, func(now time.Time) {
		if err := s.Check(ctx, now); err != nil && ctx.Err() == nil && s.log != nil {
			s.log.Warnw("watcher_tick_failed", "error", err)
		}
	})
}

// Check records COUNTDOWN_ELAPSED once for every board in timer mode whose
// target has passed at now. A board whose target or content changes becomes
// eligible again.
func (s *WatcherService) Check(ctx context.Context, now time.Time) error {
	boards, err := s.boardRepo.List(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{}, len(boards))
	for _, b := range boards {
		seen[b.ID] = struct{}{}

		st, err := board.Open(b.URL, s.mode, nil)
		if err != nil {
			continue
		}
		if param.Get(st, board.MainContentState) != board.ContentTimer {
			delete(s.fired, b.ID)
			continue
		}
		target := param.Get(st, board.CountdownToTime)
		if countdown.Remaining(target, now) > 0 {
			delete(s.fired, b.ID)
			continue
		}
		key := now.Format("2006-01-02") + " " + target.String()
		if s.fired[b.ID] == key {
			continue
		}

		err = s.eventRepo.Append(ctx, models.BoardEvent{
			EventID:     uuid.NewString(),
			BoardID:     b.ID,
			OccurredAt:  now.UTC(),
			Type:        models.EventCountdownElapsed,
			Description: param.Get(st, board.CountdownTitle) + " at " + countdown.AtLabel(target),
			URL:         b.URL,
			Metadata:    map[string]any{"target": target.String()},
		})
		if err != nil {
			return err
		}
		s.fired[b.ID] = key
	}

	for id := range s.fired {
		if _, ok := seen[id]; !ok {
			delete(s.fired, id)
		}
	}
	return nil
}
