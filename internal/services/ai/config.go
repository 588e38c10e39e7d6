// File: internal/services/ai/config.go
package ai

import (
	"fmt"
	"time"
)

type Config struct {
	// may be empty outside production; calls then fail with an auth error
	APIKey  string
	BaseURL string // empty means the public OpenAI endpoint

	Model     string
	MaxTokens int

	// bounds one completion call
	Timeout time.Duration
}

func (c *Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("assistant model is required")
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max tokens must be positive")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		Model:     "gpt-3.5-turbo",
		MaxTokens: 256,
		Timeout:   60 * time.Second,
	}
}
