package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// defaultModels is the fixed candidate preference order for the remote
// tier. Each is tried once; the first usable response wins.
var defaultModels = []string{
	"defog/sqlcoder-7b-2",
	"NumbersStation/nsql-llama-2-7B",
	"microsoft/DialoGPT-medium",
	"google/flan-t5-large",
}

const defaultInferenceBaseURL = "https://api-inference.huggingface.co/models"

// minUsableSQLLength rejects responses that sanitize down to fragments.
const minUsableSQLLength = 10

// RemoteConfig configures the remote generation tier.
type RemoteConfig struct {
	BaseURL string
	Token   string
	Models  []string
	Timeout time.Duration
}

// RemoteGenerator sends a schema-and-question prompt to a hosted
// text-generation backend. Candidates are tried in order under a bounded
// timeout; every failure mode (non-200, timeout, malformed body, unusable
// text) collapses to "try the next candidate".
type RemoteGenerator struct {
	baseURL string
	token   string
	models  []string
	client  *http.Client
}

// NewRemoteGenerator builds a generator, filling unset fields with
// defaults. A missing token is allowed; the backend then serves
// unauthenticated requests at reduced priority.
func NewRemoteGenerator(cfg RemoteConfig) *RemoteGenerator {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultInferenceBaseURL
	}
	models := cfg.Models
	if len(models) == 0 {
		models = defaultModels
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &RemoteGenerator{
		baseURL: baseURL,
		token:   strings.TrimSpace(cfg.Token),
		models:  models,
		client:  &http.Client{Timeout: timeout},
	}
}

type generationParams struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	DoSample       bool    `json:"do_sample"`
	ReturnFullText bool    `json:"return_full_text"`
}

type generationRequest struct {
	Inputs     string           `json:"inputs"`
	Parameters generationParams `json:"parameters"`
}

type generationResponse struct {
	GeneratedText string `json:"generated_text"`
}

// BuildPrompt assembles the structured prompt embedding the schema and
// question.
func BuildPrompt(question, schemaText string) string {
	return fmt.Sprintf(`### Task
Convert the following natural language question to a SQL query.

### Database Schema
%s

### Question
%s

### Instructions
- Use the exact table and column names from the schema
- Generate syntactically correct SQL
- Use appropriate JOINs when querying multiple tables
- Include WHERE clauses for filtering when needed

### SQL Query
`, schemaText, question)
}

// Generate tries each candidate model in order and returns the first
// sanitized response of usable length. It errors only when every candidate
// failed.
func (g *RemoteGenerator) Generate(ctx context.Context, question, schemaText string) (string, error) {
	prompt := BuildPrompt(question, schemaText)

	for _, model := range g.models {
		sql, err := g.tryModel(ctx, model, prompt)
		if err != nil {
			slog.Debug("remote model failed", "model", model, "error", err)
			continue
		}
		slog.Info("remote model produced sql", "model", model)
		return sql, nil
	}

	return "", fmt.Errorf("all %d remote models failed", len(g.models))
}

func (g *RemoteGenerator) tryModel(ctx context.Context, model, prompt string) (string, error) {
	body, err := json.Marshal(generationRequest{
		Inputs: prompt,
		Parameters: generationParams{
			MaxNewTokens:   200,
			Temperature:    0.1,
			DoSample:       false,
			ReturnFullText: false,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal generation payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/"+model, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request generation: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read generation response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generation failed status=%d", resp.StatusCode)
	}

	var parsed []generationResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("decode generation response: %w", err)
	}
	if len(parsed) == 0 {
		return "", fmt.Errorf("empty generation response")
	}

	sql := CleanSQL(parsed[0].GeneratedText)
	if len(strings.TrimSpace(sql)) <= minUsableSQLLength {
		return "", fmt.Errorf("generated text too short to be usable")
	}
	return sql, nil
}
