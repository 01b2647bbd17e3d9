package service

import (
	"fmt"
	"time"

	"atelier/internal/board"
	"atelier/internal/param"
	"atelier/internal/preset"
)

// RenderService draws boards straight from a parameter collection.
type RenderService struct {
	engine  *preset.Engine
	baseURL string
	mode    param.Mode
	now     func() time.Time
}

func NewRenderService(opts Options) *RenderService {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	engine := opts.Engine
	if engine == nil {
		engine = preset.NewEngine(preset.DefaultCatalog(), now)
	}
	return &RenderService{engine: engine, baseURL: opts.BaseURL, mode: opts.Mode, now: now}
}

// Render is a pure function of the parameters and the clock.
func (s *RenderService) Render(rawParams string) (board.View, error) {
	target, err := withParams(s.baseURL, s.mode, rawParams)
	if err != nil {
		return board.View{}, fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	st, err := board.Open(target, s.mode, nil)
	if err != nil {
		return board.View{}, fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	return board.Snapshot(st, s.now()), nil
}

func (s *RenderService) Presets() *preset.Catalog { return s.engine.Catalog() }

// Link returns the shareable URL of a stage applied to an empty board.
func (s *RenderService) Link(presetName, stageName string) (string, error) {
	u, ok, err := s.engine.Link(s.baseURL, s.mode, presetName, stageName)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%w: %s / %s", ErrUnknownStage, presetName, stageName)
	}
	return u, nil
}
