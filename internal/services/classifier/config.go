// File: internal/services/classifier/config.go
package classifier

import (
	"fmt"
	"time"
)

type Config struct {
	URL     string
	Timeout time.Duration
}

func (c *Config) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("CLASSIFIER_URL is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		URL:     "http://localhost:10000/",
		Timeout: 30 * time.Second,
	}
}
