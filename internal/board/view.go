package board

import (
	"time"

	"atelier/internal/countdown"
	"atelier/internal/param"
)

// Pill is one of the four corner captions.
type Pill struct {
	Corner  string `json:"corner"`
	Text    string `json:"text"`
	Visible bool   `json:"visible"`
}

// Notes is one corner notes panel. Markdown is rendered by the display.
type Notes struct {
	Corner   string `json:"corner"`
	Markdown string `json:"markdown"`
	Size     int    `json:"size"`
	Visible  bool   `json:"visible"`
}

// Countdown is the timer panel.
type Countdown struct {
	Title     string `json:"title"`
	Target    string `json:"target"`
	At        string `json:"at"`
	Remaining string `json:"remaining"`
	Elapsed   bool   `json:"elapsed"`
}

// View is everything a display needs to draw the board at one instant.
type View struct {
	URL          string         `json:"url"`
	Preset       string         `json:"preset,omitempty"`
	Stage        string         `json:"stage,omitempty"`
	MainContent  string         `json:"main_content"`
	QOTD         string         `json:"qotd"`
	QOTDLocation string         `json:"qotd_location"`
	CenterText   string         `json:"center_text"`
	Countdown    Countdown      `json:"countdown"`
	Pills        []Pill         `json:"pills"`
	Notes        []Notes        `json:"notes"`
	Clock        string         `json:"clock"`
	Params       map[string]any `json:"params"`
	RenderedAt   time.Time      `json:"rendered_at"`
}

// Snapshot renders the board held by s at now.
func Snapshot(s *param.Store, now time.Time) View {
	clock := countdown.ClockText(now)
	target := param.Get(s, CountdownToTime)

	v := View{
		URL:          s.URL(),
		Preset:       param.Get(s, SelectedPreset),
		Stage:        param.Get(s, SelectedPresetStage),
		MainContent:  param.Get(s, MainContentState),
		QOTD:         param.Get(s, QOTD),
		QOTDLocation: param.Get(s, QOTDLocation),
		CenterText:   param.Get(s, CenterText),
		Countdown: Countdown{
			Title:     param.Get(s, CountdownTitle),
			Target:    target.String(),
			At:        countdown.AtLabel(target),
			Remaining: countdown.FormatCompact(target, now),
			Elapsed:   countdown.Remaining(target, now) < 0,
		},
		Pills: []Pill{
			pill(TopLeft.Name, param.Get(s, TopLeftText), clock),
			pill(TopRight.Name, param.Get(s, TopRightText), clock),
			pill(BottomLeft.Name, param.Get(s, BottomLeftText), clock),
			pill(BottomRight.Name, param.Get(s, BottomRightText), clock),
		},
		Clock:      clock,
		Params:     s.Values(),
		RenderedAt: now,
	}
	for _, c := range Corners {
		v.Notes = append(v.Notes, Notes{
			Corner:   c.Name,
			Markdown: param.Get(s, c.Notes),
			Size:     param.Get(s, c.Size),
			Visible:  param.Get(s, c.Show),
		})
	}
	return v
}

func pill(corner, text, clock string) Pill {
	if text == TimeToken {
		text = clock
	}
	return Pill{Corner: corner, Text: text, Visible: text != ""}
}
