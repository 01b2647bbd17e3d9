package preset

import (
	"math"
	"time"

	"atelier/internal/board"
	"atelier/internal/param"
)

// Engine applies catalog stages to board stores.
type Engine struct {
	catalog *Catalog
	now     func() time.Time
}

// NewEngine returns an engine over catalog. now supplies the wall clock for
// countdown targets; nil means time.Now.
func NewEngine(catalog *Catalog, now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{catalog: catalog, now: now}
}

// Catalog returns the presets the engine applies.
func (e *Engine) Catalog() *Catalog { return e.catalog }

// Current returns the preset and stage recorded on the board.
func (e *Engine) Current(s *param.Store) (preset, stage string) {
	return param.Get(s, board.SelectedPreset), param.Get(s, board.SelectedPresetStage)
}

// SelectStage applies a stage and records it as the current one. Unknown
// preset or stage names leave the board untouched and report false.
func (e *Engine) SelectStage(s *param.Store, presetName, stageName string) bool {
	p, ok := e.catalog.Preset(presetName)
	if !ok {
		return false
	}
	st, _, ok := p.Stage(stageName)
	if !ok {
		return false
	}
	e.apply(s, p, st)
	return true
}

// AdvanceStage moves offset stages from the current one within the current
// preset. It reports false, without touching the board, when no preset is
// selected or the target position is outside the preset.
func (e *Engine) AdvanceStage(s *param.Store, offset int) bool {
	presetName, stageName := e.Current(s)
	p, ok := e.catalog.Preset(presetName)
	if !ok {
		return false
	}
	_, idx, ok := p.Stage(stageName)
	if !ok {
		return false
	}
	next := idx + offset
	if next < 0 || next >= len(p.Stages) {
		return false
	}
	e.apply(s, p, &p.Stages[next])
	return true
}

// Link returns the URL that baseURL becomes after applying a stage to an
// empty board. It reports false for unknown names.
func (e *Engine) Link(baseURL string, mode param.Mode, presetName, stageName string) (string, bool, error) {
	s, err := board.Open(baseURL, mode, nil)
	if err != nil {
		return "", false, err
	}
	s.Reset()
	if !e.SelectStage(s, presetName, stageName) {
		return "", false, nil
	}
	return s.URL(), true, nil
}

func (e *Engine) apply(s *param.Store, p *Preset, st *Stage) {
	s.Batch(func() {
		if st.Reset {
			s.Reset()
		}
		for _, a := range st.Set {
			// Catalog values are checked when the catalog is parsed.
			_ = s.Set(a.Key, a.Value)
		}
		if st.CountdownIn != nil {
			param.Set(s, board.CountdownToTime, CountdownTarget(e.now(), *st.CountdownIn))
		}
		param.Set(s, board.SelectedPreset, p.Name)
		param.Set(s, board.SelectedPresetStage, st.Name)
	})
}

// CountdownTarget rounds now to the nearest five minutes and adds offset
// minutes. Overflow is carried through the hour and past midnight the same
// way the wall clock does.
func CountdownTarget(now time.Time, offset int) param.TimeOfDay {
	rounded := int(math.Round(float64(now.Minute())/5)) * 5
	base := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), 0, 0, 0, now.Location())
	at := base.Add(time.Duration(rounded+offset) * time.Minute)
	return param.TimeOfDay{Hour: at.Hour(), Minute: at.Minute()}
}
