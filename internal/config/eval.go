package config

import "os"

// EvalConfig configures the LLM completion endpoint used for grading
type EvalConfig struct {
	BaseURL string
	APIKey  string
	Model   string
}

func NewEvalConfig() *EvalConfig {
	return &EvalConfig{
		BaseURL: getEnv("EVAL_BASE_URL", "https://api.openai.com/v1"),
		APIKey:  os.Getenv("EVAL_API_KEY"),
		Model:   getEnv("EVAL_MODEL", "gpt-4o-mini"),
	}
}
