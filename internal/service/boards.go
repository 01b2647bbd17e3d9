package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"atelier/internal/board"
	"atelier/internal/models"
	"atelier/internal/param"
	"atelier/internal/preset"
	"atelier/internal/repository"
)

// Board use case errors.
var (
	ErrBoardNotFound = errors.New("board not found")
	ErrInvalidParams = errors.New("invalid board parameters")
	ErrUnknownStage  = errors.New("unknown preset or stage")
	ErrNoStage       = errors.New("no stage in that direction")
)

type BoardService struct {
	boardRepo repository.BoardRepo
	eventRepo repository.EventRepo
	engine    *preset.Engine
	baseURL   string
	mode      param.Mode
	now       func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewBoardService(boardRepo repository.BoardRepo, eventRepo repository.EventRepo, opts Options) *BoardService {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	engine := opts.Engine
	if engine == nil {
		engine = preset.NewEngine(preset.DefaultCatalog(), now)
	}
	return &BoardService{
		boardRepo: boardRepo,
		eventRepo: eventRepo,
		engine:    engine,
		baseURL:   opts.BaseURL,
		mode:      opts.Mode,
		now:       now,
		locks:     make(map[string]*sync.Mutex),
	}
}

// change is what a mutation reports for its event.
type change struct {
	typ  string
	desc string
	meta any
}

// Create stores a new board, optionally seeded from an encoded parameter
// collection, and records CREATED.
func (s *BoardService) Create(ctx context.Context, p CreateParams) (BoardView, error) {
	target, err := withParams(s.baseURL, s.mode, p.Query)
	if err != nil {
		return BoardView{}, fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	st, err := board.Open(target, s.mode, nil)
	if err != nil {
		return BoardView{}, fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	st.Normalize()

	now := s.now().UTC()
	b := models.Board{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(p.Name),
		URL:       st.URL(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if b.Name == "" {
		b.Name = "board-" + b.ID[:8]
	}
	if err := s.boardRepo.Save(ctx, b); err != nil {
		return BoardView{}, err
	}
	if err := s.record(ctx, b, now, change{typ: models.EventCreated, desc: "Board created"}); err != nil {
		return BoardView{}, err
	}
	return s.view(b, st, now), nil
}

// Get draws a board at the current time.
func (s *BoardService) Get(ctx context.Context, id string) (BoardView, error) {
	b, err := s.load(ctx, id)
	if err != nil {
		return BoardView{}, err
	}
	st, err := board.Open(b.URL, s.mode, nil)
	if err != nil {
		return BoardView{}, fmt.Errorf("open board %q: %w", id, err)
	}
	return s.view(b, st, s.now()), nil
}

func (s *BoardService) List(ctx context.Context) ([]models.Board, error) {
	return s.boardRepo.List(ctx)
}

// SetParams writes every value in one navigation entry. Nothing is written
// when any key is unknown or any value is rejected.
func (s *BoardService) SetParams(ctx context.Context, id string, values map[string]any) (BoardView, error) {
	if len(values) == 0 {
		return BoardView{}, fmt.Errorf("%w: no parameters given", ErrInvalidParams)
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return s.mutate(ctx, id, func(st *param.Store) (change, error) {
		var firstErr error
		st.Batch(func() {
			for _, k := range keys {
				if err := st.Set(k, values[k]); err != nil && firstErr == nil {
					firstErr = err
				}
			}
		})
		if firstErr != nil {
			return change{}, fmt.Errorf("%w: %v", ErrInvalidParams, firstErr)
		}
		return change{
			typ:  models.EventParamsSet,
			desc: "Set " + strings.Join(keys, ", "),
			meta: map[string]any{"keys": keys},
		}, nil
	})
}

// Reset returns every declared parameter to its default.
func (s *BoardService) Reset(ctx context.Context, id string) (BoardView, error) {
	return s.mutate(ctx, id, func(st *param.Store) (change, error) {
		st.Reset()
		return change{typ: models.EventReset, desc: "Board reset"}, nil
	})
}

// SelectStage applies a preset stage.
func (s *BoardService) SelectStage(ctx context.Context, id, presetName, stageName string) (BoardView, error) {
	return s.mutate(ctx, id, func(st *param.Store) (change, error) {
		if !s.engine.SelectStage(st, presetName, stageName) {
			return change{}, fmt.Errorf("%w: %s / %s", ErrUnknownStage, presetName, stageName)
		}
		return stageChange(presetName, stageName), nil
	})
}

// Advance moves offset stages through the board's current preset.
func (s *BoardService) Advance(ctx context.Context, id string, offset int) (BoardView, error) {
	return s.mutate(ctx, id, func(st *param.Store) (change, error) {
		if !s.engine.AdvanceStage(st, offset) {
			return change{}, fmt.Errorf("%w: offset %d", ErrNoStage, offset)
		}
		p, stage := s.engine.Current(st)
		return stageChange(p, stage), nil
	})
}

func (s *BoardService) Delete(ctx context.Context, id string) error {
	lock := s.lock(id)
	lock.Lock()
	defer lock.Unlock()

	if err := s.boardRepo.Delete(ctx, id); err != nil {
		return notFound(err)
	}
	s.mu.Lock()
	delete(s.locks, id)
	s.mu.Unlock()
	return nil
}

func stageChange(presetName, stageName string) change {
	return change{
		typ:  models.EventStageApplied,
		desc: presetName + " / " + stageName,
		meta: map[string]any{"preset": presetName, "stage": stageName},
	}
}

// mutate serializes writers of one board: load, apply fn, save, record.
func (s *BoardService) mutate(ctx context.Context, id string, fn func(st *param.Store) (change, error)) (BoardView, error) {
	lock := s.lock(id)
	lock.Lock()
	defer lock.Unlock()

	b, err := s.load(ctx, id)
	if err != nil {
		return BoardView{}, err
	}
	st, err := board.Open(b.URL, s.mode, nil)
	if err != nil {
		return BoardView{}, fmt.Errorf("open board %q: %w", id, err)
	}

	var c change
	st.Batch(func() {
		c, err = fn(st)
	})
	if err != nil {
		return BoardView{}, err
	}

	now := s.now().UTC()
	b.URL = st.URL()
	b.UpdatedAt = now
	if err := s.boardRepo.Save(ctx, b); err != nil {
		return BoardView{}, err
	}
	if err := s.record(ctx, b, now, c); err != nil {
		return BoardView{}, err
	}
	return s.view(b, st, now), nil
}

func (s *BoardService) record(ctx context.Context, b models.Board, now time.Time, c change) error {
	return s.eventRepo.Append(ctx, models.BoardEvent{
		EventID:     uuid.NewString(),
		BoardID:     b.ID,
		OccurredAt:  now,
		Type:        c.typ,
		Description: c.desc,
		URL:         b.URL,
		Metadata:    c.meta,
	})
}

func (s *BoardService) load(ctx context.Context, id string) (models.Board, error) {
	b, err := s.boardRepo.Load(ctx, id)
	if err != nil {
		return models.Board{}, notFound(err)
	}
	return b, nil
}

func (s *BoardService) lock(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

func (s *BoardService) view(b models.Board, st *param.Store, now time.Time) BoardView {
	return BoardView{ID: b.ID, Name: b.Name, View: board.Snapshot(st, now)}
}

func notFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: %v", ErrBoardNotFound, err)
	}
	return err
}

// withParams merges an encoded parameter collection into base at mode's
// position. Keys already on base survive unless encoded overrides them;
// malformed pairs are dropped the same way the store drops them.
func withParams(base string, mode param.Mode, encoded string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	encoded = strings.TrimLeft(strings.TrimSpace(encoded), "?#")
	if encoded == "" {
		return base, nil
	}
	add, _ := url.ParseQuery(encoded)

	cur := u.Query()
	if mode == param.ModeHash {
		cur, _ = url.ParseQuery(u.EscapedFragment())
	}
	for k, vs := range add {
		cur[k] = vs
	}

	enc := cur.Encode()
	if mode == param.ModeHash {
		frag, err := url.PathUnescape(enc)
		if err != nil {
			frag = enc
		}
		u.Fragment, u.RawFragment = frag, enc
	} else {
		u.RawQuery = enc
	}
	return u.String(), nil
}
