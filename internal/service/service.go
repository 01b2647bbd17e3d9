package service

import (
	"context"
	"time"

	"atelier/internal/board"
	"atelier/internal/logger"
	"atelier/internal/models"
	"atelier/internal/param"
	"atelier/internal/preset"
	"atelier/internal/qotd"
	"atelier/internal/repository"
)

type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Boards changes persisted boards. Every successful mutation commits one
// navigation entry and records one event.
type Boards interface {
	Create(ctx context.Context, p CreateParams) (BoardView, error)
	Get(ctx context.Context, id string) (BoardView, error)
	List(ctx context.Context) ([]models.Board, error)
	SetParams(ctx context.Context, id string, values map[string]any) (BoardView, error)
	Reset(ctx context.Context, id string) (BoardView, error)
	SelectStage(ctx context.Context, id, presetName, stageName string) (BoardView, error)
	Advance(ctx context.Context, id string, offset int) (BoardView, error)
	Delete(ctx context.Context, id string) error
}

// Render draws boards that are not persisted.
type Render interface {
	Render(rawParams string) (board.View, error)
	Presets() *preset.Catalog
	Link(presetName, stageName string) (string, error)
}

// History exposes board events with filtering access.
type History interface {
	List(ctx context.Context, f LogFilter) ([]models.BoardEvent, error)
}

// Watcher runs the background loop that notices elapsed countdowns.
// Stop via context cancellation for graceful shutdown.
type Watcher interface {
	Run(ctx context.Context, tick time.Duration)
}

// Questions produces question-of-the-day suggestions.
type Questions interface {
	Generate(ctx context.Context, location, date string) ([]string, error)
}

type Service struct {
	Boards
	Render
	History
	Watcher
	Questions
	Authorization
}

// Options carries everything the services need besides storage.
type Options struct {
	BaseURL    string
	Mode       param.Mode
	Engine     *preset.Engine
	Generator  qotd.Generator
	SigningKey string
	TokenTTL   time.Duration
	Log        *logger.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, opts Options) *Service {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Engine == nil {
		opts.Engine = preset.NewEngine(preset.DefaultCatalog(), opts.Now)
	}
	return &Service{
		Boards:        NewBoardService(repos.BoardRepo, repos.EventRepo, opts),
		Render:        NewRenderService(opts),
		History:       NewHistoryService(repos.EventRepo),
		Watcher:       NewWatcherService(repos.BoardRepo, repos.EventRepo, opts),
		Questions:     NewQuestionService(opts.Generator),
		Authorization: NewAuthService(repos.HostRepo, opts.SigningKey, opts.TokenTTL),
	}
}
