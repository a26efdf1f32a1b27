package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ecotrace/ecotrace-backend/internal/logger"
	"github.com/ecotrace/ecotrace-backend/internal/utils"
)

// ErrAITimeout marks the main generation call exceeding its deadline. Callers
// treat it like any other AI failure (fall back to rules) but can log it
// distinctly.
var ErrAITimeout = errors.New("ai generation timed out")

// AIClient is the narrow contract the insight orchestrator depends on.
// Probe is a cheap availability check; Complete runs one chat-style
// generation. The concrete transport is never visible to callers.
type AIClient interface {
	Probe(ctx context.Context) bool
	Complete(ctx context.Context, system, user string) (string, error)
	ModelName() string
}

// aiClient talks to a local Ollama-compatible server: POST /api/chat for
// generation, GET /api/tags as the health probe.
type aiClient struct {
	log          *logger.Logger
	baseURL      string
	model        string
	temperature  float64
	maxTokens    int
	probeTimeout time.Duration
	callTimeout  time.Duration
	httpClient   *http.Client
}

type aiHTTPError struct {
	StatusCode int
	Body       string
}

func (e *aiHTTPError) Error() string {
	return fmt.Sprintf("ai service http %d: %s", e.StatusCode, e.Body)
}

func NewAIClient(log *logger.Logger) AIClient {
	baseURL := strings.TrimRight(utils.GetEnv("AI_BASE_URL", "http://localhost:11434", log), "/")
	model := utils.GetEnv("AI_MODEL", "llama3.1", log)
	probeTimeout := time.Duration(utils.GetEnvAsInt("AI_PROBE_TIMEOUT_SECONDS", 5, log)) * time.Second
	callTimeout := time.Duration(utils.GetEnvAsInt("AI_TIMEOUT_SECONDS", 60, log)) * time.Second
	maxTokens := utils.GetEnvAsInt("AI_MAX_TOKENS", 1024, log)

	return &aiClient{
		log:          log.With("service", "AIClient"),
		baseURL:      baseURL,
		model:        model,
		temperature:  0.4,
		maxTokens:    maxTokens,
		probeTimeout: probeTimeout,
		callTimeout:  callTimeout,
		// Per-request deadlines come from contexts; the client itself
		// stays unbounded so the probe and the main call can differ.
		httpClient: &http.Client{},
	}
}

func (c *aiClient) ModelName() string {
	return c.model
}

// Probe checks the server's tag listing with a short deadline. Any failure
// (connect error, timeout, non-2xx) marks the AI path unavailable for this
// request; there is no retry.
func (c *aiClient) Probe(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, c.probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug("AI probe failed", "error", err)
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Debug("AI probe returned non-2xx", "status", resp.StatusCode)
		return false
	}
	return true
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  chatOptions   `json:"options"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
}

type chatResponse struct {
	Message chatMessage `json:"message"`
}

// Complete runs a single non-streaming chat generation bounded by the
// configured timeout. A deadline hit surfaces as ErrAITimeout.
func (c *aiClient) Complete(ctx context.Context, system, user string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	body := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Stream: false,
		Options: chatOptions{
			Temperature: c.temperature,
			NumPredict:  c.maxTokens,
		},
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			return "", ErrAITimeout
		}
		return "", fmt.Errorf("ai request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read ai response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &aiHTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("decode ai response envelope: %w", err)
	}
	return parsed.Message.Content, nil
}
