package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"gitlab.com/inteleval.net/internal/config"
	"gitlab.com/inteleval.net/internal/core/ports/primary"
	"gitlab.com/inteleval.net/internal/core/ports/secondary"
	"gitlab.com/inteleval.net/internal/static/errs"
)

var _ secondary.EvalClient = (*Client)(nil)

// Client calls the LLM chat completions endpoint used for grading
type Client struct {
	cfg        *config.EvalConfig
	httpClient *http.Client
	logger     primary.Logger
}

func NewClient(cfg *config.EvalConfig, logger primary.Logger) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		logger:     logger,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type completionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Complete sends a prompt and returns the raw model text
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(completionRequest{
		Model:       c.cfg.Model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal completion request: %w", err)
	}

	url := fmt.Sprintf("%s/chat/completions", c.cfg.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errs.EvalUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: status %d", errs.EvalUnavailable, resp.StatusCode)
	}

	var compResp completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&compResp); err != nil {
		return "", fmt.Errorf("%w: invalid response body: %v", errs.EvalUnavailable, err)
	}
	if len(compResp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices", errs.EvalUnavailable)
	}

	return compResp.Choices[0].Message.Content, nil
}
