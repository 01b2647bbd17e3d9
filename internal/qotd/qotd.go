// Package qotd generates question-of-the-day suggestions for the board.
package qotd

import (
	"context"
	"errors"
	"time"
)

// Errors returned by generators.
var (
	ErrMissingInput    = errors.New("location and date are required")
	ErrInvalidResponse = errors.New("invalid response format")
)

// Generator yields icebreaker questions for a location and a date.
type Generator interface {
	Generate(ctx context.Context, location, date string) ([]string, error)
}

// DateLayout is the long date format sent with a request.
const DateLayout = "Monday, January 2, 2006"

// DateText renders now the way requests expect it.
func DateText(now time.Time) string { return now.Format(DateLayout) }

// Category is a labelled run of suggestions.
type Category struct {
	Name      string   `json:"name"`
	Questions []string `json:"questions"`
}

// Category labels, in response order.
const (
	CategoryBank     = "from the question bank"
	CategorySimilar  = "similar"
	CategoryLocation = "location based"
	CategoryOverflow = "too many"
)

const categorySize = 5

// Group splits questions into runs of five: bank picks, similar ones,
// location based ones, and anything beyond that.
func Group(questions []string) []Category {
	names := []string{CategoryBank, CategorySimilar, CategoryLocation}
	var out []Category
	for i, q := range questions {
		name := CategoryOverflow
		if n := i / categorySize; n < len(names) {
			name = names[n]
		}
		if len(out) == 0 || out[len(out)-1].Name != name {
			out = append(out, Category{Name: name})
		}
		last := &out[len(out)-1]
		last.Questions = append(last.Questions, q)
	}
	return out
}
