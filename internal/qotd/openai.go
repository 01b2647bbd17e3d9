package qotd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// Request defaults.
const (
	DefaultResponsesURL    = "https://api.openai.com/v1/responses"
	DefaultModel           = "gpt-4o"
	defaultMaxOutputTokens = 2048
	maxErrorBody           = 4096
)

// outputTextPath selects the text of the first message output.
const outputTextPath = `output.#(type=="message").content.#(type=="output_text").text`

// OpenAIConfig configures the Responses API call.
type OpenAIConfig struct {
	APIKey          string
	Model           string
	ResponsesURL    string
	MaxOutputTokens int
	Bank            []string
	HTTPClient      *http.Client
	// Shuffle reorders the bank before each request; nil means a uniform
	// random shuffle.
	Shuffle func([]string)
}

// OpenAIGenerator asks an OpenAI model for questions using a strict JSON
// schema response format.
type OpenAIGenerator struct {
	cfg OpenAIConfig
}

// NewOpenAIGenerator fills in defaults for any unset field.
func NewOpenAIGenerator(cfg OpenAIConfig) *OpenAIGenerator {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	if strings.TrimSpace(cfg.ResponsesURL) == "" {
		cfg.ResponsesURL = DefaultResponsesURL
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxOutputTokens <= 0 {
		cfg.MaxOutputTokens = defaultMaxOutputTokens
	}
	if len(cfg.Bank) == 0 {
		cfg.Bank = Bank
	}
	if cfg.Shuffle == nil {
		cfg.Shuffle = func(s []string) {
			rand.Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
		}
	}
	return &OpenAIGenerator{cfg: cfg}
}

// Generate returns the questions in the order the model produced them.
func (g *OpenAIGenerator) Generate(ctx context.Context, location, date string) ([]string, error) {
	location = strings.TrimSpace(location)
	date = strings.TrimSpace(date)
	if location == "" || date == "" {
		return nil, ErrMissingInput
	}
	if strings.TrimSpace(g.cfg.APIKey) == "" {
		return nil, fmt.Errorf("openai api key is not configured")
	}

	body, err := json.Marshal(g.request(location, date))
	if err != nil {
		return nil, fmt.Errorf("marshal qotd request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.ResponsesURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build qotd request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.cfg.APIKey)

	res, err := g.cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("qotd request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		return nil, fmt.Errorf("qotd request status %d: %s", res.StatusCode, strings.TrimSpace(string(msg)))
	}
	payload, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read qotd response: %w", err)
	}
	return parseQuestions(payload)
}

func parseQuestions(payload []byte) ([]string, error) {
	text := gjson.GetBytes(payload, outputTextPath)
	if !text.Exists() {
		return nil, fmt.Errorf("%w: no output text", ErrInvalidResponse)
	}
	questions := gjson.Get(text.String(), "questions")
	if !questions.IsArray() {
		return nil, fmt.Errorf("%w: questions is not an array", ErrInvalidResponse)
	}
	out := make([]string, 0, len(questions.Array()))
	for _, q := range questions.Array() {
		if s := strings.TrimSpace(q.String()); s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}

type inputText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type inputMessage struct {
	Role    string      `json:"role"`
	Content []inputText `json:"content"`
}

func (g *OpenAIGenerator) request(location, date string) map[string]any {
	bank := make([]string, len(g.cfg.Bank))
	copy(bank, g.cfg.Bank)
	g.cfg.Shuffle(bank)

	system := "Make 10 ice-breaker question like these:\n" + strings.Join(bank, "\n") +
		"\n The first 5 questions should be similar or taken from the examples." +
		" The last 5 questions should be related to the user's location and the current date."
	user := fmt.Sprintf("Location: %s\nDate: %s", location, date)

	return map[string]any{
		"model": g.cfg.Model,
		"input": []inputMessage{
			{Role: "system", Content: []inputText{{Type: "input_text", Text: system}}},
			{Role: "user", Content: []inputText{{Type: "input_text", Text: user}}},
		},
		"text": map[string]any{
			"format": map[string]any{
				"type":   "json_schema",
				"name":   "ice_breaker_questions",
				"strict": true,
				"schema": map[string]any{
					"type":     "object",
					"required": []string{"questions"},
					"properties": map[string]any{
						"questions": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string", "description": "The ice-breaker question text."},
							"description": "A list of ice-breaker questions.",
						},
					},
					"additionalProperties": false,
				},
			},
		},
		"temperature":       1,
		"top_p":             1,
		"max_output_tokens": g.cfg.MaxOutputTokens,
	}
}
