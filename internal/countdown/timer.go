package countdown

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DefaultTimerMinutes is used when the timer is opened without a length.
const DefaultTimerMinutes = 2

// Timer button labels.
const (
	LabelStart = "Start"
	LabelStop  = "Stop"
	LabelReset = "Reset"
)

// ParseMinutes reads the timer length parameter. Missing, unparseable or
// non-positive input falls back to DefaultTimerMinutes.
func ParseMinutes(raw string) float64 {
	m, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(m) || math.IsInf(m, 0) || m <= 0 {
		return DefaultTimerMinutes
	}
	return m
}

// Timer is the standalone full-screen countdown. It has three states:
// ready (full length, stopped), running, and stopped part way. A single
// button cycles Start, Stop and Reset.
type Timer struct {
	total     int // seconds
	remaining int // seconds, frozen while not running
	running   bool
	startedAt time.Time
}

// NewTimer returns a ready timer of the given length in minutes.
func NewTimer(minutes float64) *Timer {
	total := int(math.Floor(minutes * 60))
	return &Timer{total: total, remaining: total}
}

// Total returns the timer length.
func (t *Timer) Total() time.Duration { return time.Duration(t.total) * time.Second }

// Running reports whether the timer is counting down.
func (t *Timer) Running() bool { return t.running }

// Remaining returns the whole seconds left at now. It goes negative once the
// timer runs past zero.
func (t *Timer) Remaining(now time.Time) int {
	if !t.running {
		return t.remaining
	}
	elapsed := int(now.Sub(t.startedAt) / time.Second)
	return t.total - elapsed
}

// Expired reports whether the timer has reached zero.
func (t *Timer) Expired(now time.Time) bool { return t.Remaining(now) <= 0 }

// Press acts on the single timer button: a running timer stops, a stopped
// timer resets, and a ready timer starts.
func (t *Timer) Press(now time.Time) {
	switch {
	case t.running:
		t.remaining = t.Remaining(now)
		t.running = false
	case t.remaining != t.total:
		t.remaining = t.total
	default:
		t.remaining = t.total
		t.startedAt = now
		t.running = true
	}
}

// Label returns the caption of the button at now.
func (t *Timer) Label(now time.Time) string {
	switch {
	case t.running:
		return LabelStop
	case t.Remaining(now) != t.total:
		return LabelReset
	default:
		return LabelStart
	}
}

// Text renders the magnitude of the time left as MM:SS. Minutes are not
// capped at 59 and no sign is shown; use Expired to tell overtime apart.
func (t *Timer) Text(now time.Time) string {
	left := t.Remaining(now)
	if left < 0 {
		left = -left
	}
	return fmt.Sprintf("%02d:%02d", left/60, left%60)
}
