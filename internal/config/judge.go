package config

import (
	"os"
	"strconv"
	"time"
)

// JudgeConfig configures the external judge client. PollInterval and
// PollAttempts bound the per-test wait: worst case is their product.
type JudgeConfig struct {
	BaseURL      string
	APIKey       string
	APIHost      string
	PollInterval time.Duration
	PollAttempts int
}

func NewJudgeConfig() *JudgeConfig {
	pollIntervalMs, err := strconv.Atoi(os.Getenv("JUDGE_POLL_INTERVAL_MS"))
	if err != nil || pollIntervalMs <= 0 {
		pollIntervalMs = 300
	}
	pollAttempts, err := strconv.Atoi(os.Getenv("JUDGE_POLL_ATTEMPTS"))
	if err != nil || pollAttempts <= 0 {
		pollAttempts = 10
	}
	return &JudgeConfig{
		BaseURL:      getEnv("JUDGE_BASE_URL", "https://judge0-ce.p.rapidapi.com"),
		APIKey:       os.Getenv("JUDGE_API_KEY"),
		APIHost:      getEnv("JUDGE_API_HOST", "judge0-ce.p.rapidapi.com"),
		PollInterval: time.Duration(pollIntervalMs) * time.Millisecond,
		PollAttempts: pollAttempts,
	}
}
