// File: internal/services/assistant/config.go
package assistant

import "fmt"

const (
	DefaultGreeting = "Hi! I'm your health assistant. Ask me anything about diseases, symptoms, or cures."

	// Fixed replies used when the completion service can't produce one.
	ErrorReply   = "Sorry, there was an error contacting the assistant."
	NoReplyReply = "Sorry, I couldn't get a response."
)

type Config struct {
	Model     string
	MaxTokens int
	Greeting  string
}

func (c *Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("model is required")
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be positive")
	}
	if c.Greeting == "" {
		return fmt.Errorf("greeting is required")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		Model:     "gpt-3.5-turbo",
		MaxTokens: 256,
		Greeting:  DefaultGreeting,
	}
}
