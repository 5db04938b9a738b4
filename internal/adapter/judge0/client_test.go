package judge0

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"gitlab.com/inteleval.net/internal/adapter/logging"
	"gitlab.com/inteleval.net/internal/config"
	"gitlab.com/inteleval.net/internal/static/errs"
)

func testConfig(baseURL string, attempts int) *config.JudgeConfig {
	return &config.JudgeConfig{
		BaseURL:      baseURL,
		APIKey:       "test-key",
		APIHost:      "judge.test",
		PollInterval: 5 * time.Millisecond,
		PollAttempts: attempts,
	}
}

func TestExecuteSubmitAndPoll(t *testing.T) {
	var polls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			if r.Header.Get("X-RapidAPI-Key") != "test-key" {
				t.Errorf("missing API key header")
			}
			var req submissionRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Fatalf("bad submission body: %v", err)
			}
			if req.LanguageID != 71 {
				t.Errorf("language_id = %d, want 71", req.LanguageID)
			}
			json.NewEncoder(w).Encode(submissionResponse{Token: "tok-1"})
		case http.MethodGet:
			// two in-flight polls, then terminal
			n := atomic.AddInt32(&polls, 1)
			resp := pollResponse{Status: statusInfo{ID: 2, Description: "Processing"}}
			if n >= 3 {
				stdout := "hello\n"
				timeStr := "0.042"
				memory := int64(3120)
				exitCode := 0
				resp = pollResponse{
					Stdout:   &stdout,
					Status:   statusInfo{ID: 3, Description: "Accepted"},
					Time:     &timeStr,
					Memory:   &memory,
					ExitCode: &exitCode,
				}
			}
			json.NewEncoder(w).Encode(resp)
		}
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL, 10), logging.NewDevelopmentLogger())
	outcome, err := client.Execute(context.Background(), 71, `print("hello")`, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Stdout != "hello\n" {
		t.Errorf("stdout = %q", outcome.Stdout)
	}
	if outcome.TimeMs != 42 {
		t.Errorf("timeMs = %d, want seconds converted to 42", outcome.TimeMs)
	}
	if outcome.MemoryKb != 3120 {
		t.Errorf("memoryKb = %d, want pass-through 3120", outcome.MemoryKb)
	}
	if outcome.StatusCode != 3 {
		t.Errorf("statusCode = %d", outcome.StatusCode)
	}
}

func TestExecuteSubmissionRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL, 3), logging.NewDevelopmentLogger())
	_, err := client.Execute(context.Background(), 54, "int main(){}", "")
	if !errors.Is(err, errs.SubmissionRejected) {
		t.Fatalf("expected SubmissionRejected, got %v", err)
	}
}

func TestExecutePollBudgetExhausted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			json.NewEncoder(w).Encode(submissionResponse{Token: "tok-2"})
			return
		}
		json.NewEncoder(w).Encode(pollResponse{Status: statusInfo{ID: 1, Description: "In Queue"}})
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL, 4), logging.NewDevelopmentLogger())
	_, err := client.Execute(context.Background(), 62, "class Main {}", "")
	if !errors.Is(err, errs.JudgeTimeout) {
		t.Fatalf("expected JudgeTimeout, got %v", err)
	}
}

func TestExecuteToleratesTransientPollFailures(t *testing.T) {
	var polls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			json.NewEncoder(w).Encode(submissionResponse{Token: "tok-3"})
			return
		}
		if atomic.AddInt32(&polls, 1) < 3 {
			http.Error(w, "bad gateway", http.StatusBadGateway)
			return
		}
		stdout := "ok"
		json.NewEncoder(w).Encode(pollResponse{
			Stdout: &stdout,
			Status: statusInfo{ID: 3, Description: "Accepted"},
		})
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL, 10), logging.NewDevelopmentLogger())
	outcome, err := client.Execute(context.Background(), 63, "console.log('ok')", "")
	if err != nil {
		t.Fatalf("transient poll failures should be retried: %v", err)
	}
	if outcome.Stdout != "ok" {
		t.Errorf("stdout = %q", outcome.Stdout)
	}
}

func TestExecuteContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			json.NewEncoder(w).Encode(submissionResponse{Token: "tok-4"})
			return
		}
		json.NewEncoder(w).Encode(pollResponse{Status: statusInfo{ID: 1}})
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	client := NewClient(testConfig(srv.URL, 10), logging.NewDevelopmentLogger())
	_, err := client.Execute(ctx, 50, "int main(){}", "")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
