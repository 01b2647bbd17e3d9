package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"atelier/internal/models"
	"atelier/internal/repository"
)

// memBoardRepo is an in-memory repository.BoardRepo.
type memBoardRepo struct {
	mu      sync.Mutex
	boards  map[string]models.Board
	saveErr error
	listErr error
}

func newMemBoardRepo() *memBoardRepo {
	return &memBoardRepo{boards: make(map[string]models.Board)}
}

func (r *memBoardRepo) Save(_ context.Context, b models.Board) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.boards[b.ID] = b
	return nil
}

func (r *memBoardRepo) Load(_ context.Context, id string) (models.Board, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.boards[id]
	if !ok {
		return models.Board{}, fmt.Errorf("board %q: %w", id, repository.ErrNotFound)
	}
	return b, nil
}

func (r *memBoardRepo) List(_ context.Context) ([]models.Board, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Board, 0, len(r.boards))
	for _, b := range r.boards {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memBoardRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.boards[id]; !ok {
		return fmt.Errorf("board %q: %w", id, repository.ErrNotFound)
	}
	delete(r.boards, id)
	return nil
}

// memEventRepo is an in-memory repository.EventRepo that also captures the
// filter of the last List call.
type memEventRepo struct {
	mu        sync.Mutex
	events    []models.BoardEvent
	appendErr error
	listErr   error

	gotBoard string
	gotFrom  time.Time
	gotTo    time.Time
	gotType  string
	calls    int
}

func (r *memEventRepo) Append(_ context.Context, e models.BoardEvent) error {
	if r.appendErr != nil {
		return r.appendErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *memEventRepo) List(_ context.Context, boardID string, from, to time.Time, typ string) ([]models.BoardEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	r.gotBoard, r.gotFrom, r.gotTo, r.gotType = boardID, from, to, typ
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []models.BoardEvent
	for _, e := range r.events {
		if boardID != "" && e.BoardID != boardID {
			continue
		}
		if typ != "" && !strings.EqualFold(e.Type, typ) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *memEventRepo) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}
