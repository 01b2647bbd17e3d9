package service

import (
	"context"
	"errors"
	"strings"

	"atelier/internal/qotd"
)

// ErrQuestionsUnavailable is returned when no generator is configured.
var ErrQuestionsUnavailable = errors.New("question generator is not configured")

type QuestionService struct {
	gen qotd.Generator
}

func NewQuestionService(gen qotd.Generator) *QuestionService {
	return &QuestionService{gen: gen}
}

// Generate validates the inputs before calling the generator.
func (s *QuestionService) Generate(ctx context.Context, location, date string) ([]string, error) {
	location = strings.TrimSpace(location)
	date = strings.TrimSpace(date)
	if location == "" || date == "" {
		return nil, qotd.ErrMissingInput
	}
	if s.gen == nil {
		return nil, ErrQuestionsUnavailable
	}
	return s.gen.Generate(ctx, location, date)
}
