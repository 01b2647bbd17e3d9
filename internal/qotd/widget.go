package qotd

import (
	"context"
	"sync"
	"time"

	"atelier/internal/logger"
)

// Widget states.
const (
	StateIdle    = "idle"
	StateLoading = "loading"
	StateReady   = "ready"
	StateError   = "error"
)

// Widget tracks one suggestion request at a time for an interactive
// surface. Failures are logged and surfaced as StateError, never returned.
type Widget struct {
	gen Generator
	log *logger.Logger

	mu         sync.Mutex
	state      string
	categories []Category
	err        string
}

// NewWidget wraps gen. log may be nil.
func NewWidget(gen Generator, log *logger.Logger) *Widget {
	return &Widget{gen: gen, log: log, state: StateIdle}
}

// WidgetStatus is a copy of the widget state.
type WidgetStatus struct {
	State      string     `json:"state"`
	Categories []Category `json:"categories,omitempty"`
	Error      string     `json:"error,omitempty"`
}

// Status returns the current state.
func (w *Widget) Status() WidgetStatus {
	w.mu.Lock()
	defer w.mu.Unlock()
	return WidgetStatus{State: w.state, Categories: w.categories, Error: w.err}
}

// Load requests suggestions for location on now's date. A load already in
// flight makes this call a no-op.
func (w *Widget) Load(ctx context.Context, location string, now time.Time) WidgetStatus {
	w.mu.Lock()
	if w.state == StateLoading {
		w.mu.Unlock()
		return w.Status()
	}
	w.state = StateLoading
	w.err = ""
	w.mu.Unlock()

	questions, err := w.gen.Generate(ctx, location, DateText(now))

	w.mu.Lock()
	if err != nil {
		if w.log != nil {
			w.log.Warnw("qotd_generate_failed", "location", location, "error", err)
		}
		w.state = StateError
		w.err = err.Error()
		w.categories = nil
	} else {
		w.state = StateReady
		w.categories = Group(questions)
	}
	w.mu.Unlock()
	return w.Status()
}
