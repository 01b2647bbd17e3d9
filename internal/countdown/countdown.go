// Package countdown formats the time left until a time of day and drives the
// periodic tick that keeps the display current.
package countdown

import (
	"fmt"
	"strings"
	"time"

	"atelier/internal/param"
)

// ClockLayout is the ambient clock format, e.g. "Sat, Oct 17, 2026 3:04 PM".
const ClockLayout = "Mon, Jan 2, 2006 3:04 PM"

// Remaining returns the signed duration from now until target on now's date.
// A target that already passed today yields a negative duration; it never
// rolls over to tomorrow.
func Remaining(target param.TimeOfDay, now time.Time) time.Duration {
	at := time.Date(now.Year(), now.Month(), now.Day(), target.Hour, target.Minute, 0, 0, now.Location())
	return at.Sub(now)
}

// Format renders the countdown as [-]HH:MM:SS.
func Format(target param.TimeOfDay, now time.Time) string {
	return FormatDuration(Remaining(target, now), true)
}

// FormatCompact renders the countdown as [-]HH:MM:SS when at least an hour
// is left and as [-]MM:SS otherwise.
func FormatCompact(target param.TimeOfDay, now time.Time) string {
	return FormatDuration(Remaining(target, now), false)
}

// FormatDuration renders d with zero-padded components. Sub-second
// remainders are truncated.
func FormatDuration(d time.Duration, withHours bool) string {
	var b strings.Builder
	if d < 0 {
		b.WriteByte('-')
		d = -d
	}
	hours := d / time.Hour
	minutes := (d % time.Hour) / time.Minute
	seconds := (d % time.Minute) / time.Second
	if withHours || hours > 0 {
		fmt.Fprintf(&b, "%02d:", hours)
	}
	fmt.Fprintf(&b, "%02d:%02d", minutes, seconds)
	return b.String()
}

// AtLabel renders target on a 12-hour clock without a meridiem, as shown
// under the countdown ("at 1:20").
func AtLabel(target param.TimeOfDay) string {
	hour := target.Hour % 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d:%02d", hour, target.Minute)
}

// ClockText renders the ambient clock.
func ClockText(now time.Time) string {
	return now.Format(ClockLayout)
}
