package judge0

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"gitlab.com/inteleval.net/internal/config"
	"gitlab.com/inteleval.net/internal/core/ports/primary"
	"gitlab.com/inteleval.net/internal/core/ports/secondary"
	"gitlab.com/inteleval.net/internal/domain"
	"gitlab.com/inteleval.net/internal/static/errs"
)

// Judge status ids 1 (in queue) and 2 (processing) mean the run is still in
// flight; everything at or above 3 is terminal.
const terminalStatusThreshold = 3

var _ secondary.JudgeClient = (*Client)(nil)

// Client submits programs to the external judge and polls for their results
type Client struct {
	cfg        *config.JudgeConfig
	httpClient *http.Client
	logger     primary.Logger
}

func NewClient(cfg *config.JudgeConfig, logger primary.Logger) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

type submissionRequest struct {
	LanguageID int    `json:"language_id"`
	SourceCode string `json:"source_code"`
	Stdin      string `json:"stdin"`
}

type submissionResponse struct {
	Token string `json:"token"`
}

type statusInfo struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
}

type pollResponse struct {
	Stdout        *string    `json:"stdout"`
	Stderr        *string    `json:"stderr"`
	CompileOutput *string    `json:"compile_output"`
	Message       *string    `json:"message"`
	Status        statusInfo `json:"status"`
	Time          *string    `json:"time"`
	Memory        *int64     `json:"memory"`
	ExitCode      *int       `json:"exit_code"`
}

// Execute submits one program with one stdin and polls until the judge
// reports a terminal status. Transient poll failures are retried within the
// same attempt budget; an exhausted budget yields errs.JudgeTimeout.
func (c *Client) Execute(ctx context.Context, engineID int, code, stdin string) (*domain.ExecutionOutcome, error) {
	token, err := c.submit(ctx, engineID, code, stdin)
	if err != nil {
		return nil, err
	}

	for attempt := 0; attempt < c.cfg.PollAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.cfg.PollInterval):
		}

		resp, err := c.fetchResult(ctx, token)
		if err != nil {
			c.logger.Warn("Judge poll attempt failed", "token", token, "attempt", attempt, "error", err)
			continue
		}

		if resp.Status.ID >= terminalStatusThreshold {
			return toOutcome(resp), nil
		}
		c.logger.Debug("Judge still running", "token", token, "status", resp.Status.Description)
	}

	return nil, fmt.Errorf("%w: token %s after %d attempts", errs.JudgeTimeout, token, c.cfg.PollAttempts)
}

func (c *Client) submit(ctx context.Context, engineID int, code, stdin string) (string, error) {
	body, err := json.Marshal(submissionRequest{
		LanguageID: engineID,
		SourceCode: code,
		Stdin:      stdin,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal submission: %w", err)
	}

	url := fmt.Sprintf("%s/submissions?base64_encoded=false&wait=true", c.cfg.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build submission request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errs.SubmissionRejected, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("%w: status %d: %s", errs.SubmissionRejected, resp.StatusCode, detail)
	}

	var subResp submissionResponse
	if err := json.NewDecoder(resp.Body).Decode(&subResp); err != nil {
		return "", fmt.Errorf("%w: invalid response body: %v", errs.SubmissionRejected, err)
	}
	if subResp.Token == "" {
		return "", fmt.Errorf("%w: empty token", errs.SubmissionRejected)
	}

	return subResp.Token, nil
}

func (c *Client) fetchResult(ctx context.Context, token string) (*pollResponse, error) {
	url := fmt.Sprintf("%s/submissions/%s?base64_encoded=false", c.cfg.BaseURL, token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build poll request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("poll returned status %d", resp.StatusCode)
	}

	var pollResp pollResponse
	if err := json.NewDecoder(resp.Body).Decode(&pollResp); err != nil {
		return nil, fmt.Errorf("failed to decode poll response: %w", err)
	}

	return &pollResp, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-RapidAPI-Key", c.cfg.APIKey)
	req.Header.Set("X-RapidAPI-Host", c.cfg.APIHost)
}

// toOutcome converts the judge's wire format into a domain outcome. The judge
// reports time as fractional seconds; we keep milliseconds. Memory stays in
// kilobytes, the judge's native unit.
func toOutcome(resp *pollResponse) *domain.ExecutionOutcome {
	outcome := &domain.ExecutionOutcome{
		Stdout:            deref(resp.Stdout),
		Stderr:            deref(resp.Stderr),
		CompileOutput:     deref(resp.CompileOutput),
		StatusCode:        resp.Status.ID,
		StatusDescription: resp.Status.Description,
	}
	if resp.Time != nil {
		if seconds, err := strconv.ParseFloat(*resp.Time, 64); err == nil {
			outcome.TimeMs = int64(seconds * 1000)
		}
	}
	if resp.Memory != nil {
		outcome.MemoryKb = *resp.Memory
	}
	if resp.ExitCode != nil {
		outcome.ExitCode = *resp.ExitCode
	}
	return outcome
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
