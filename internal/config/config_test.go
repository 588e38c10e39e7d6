package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENV", "test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "http://localhost:10000/", cfg.ClassifierURL)
	assert.Equal(t, 30*time.Second, cfg.ClassifierTimeout)
	assert.Equal(t, 60*time.Second, cfg.AssistantTimeout)
	assert.Equal(t, "gpt-3.5-turbo", cfg.AssistantModel)
	assert.Equal(t, 256, cfg.AssistantMaxTokens)
	assert.Equal(t, 6, cfg.DoctorSampleSize)
	assert.Equal(t, "Nagpur", cfg.DefaultCity)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("CLASSIFIER_TIMEOUT", "5s")
	t.Setenv("DIRECTORY_TIMEOUT", "3")
	t.Setenv("DOCTOR_SAMPLE_SIZE", "not-a-number")
	t.Setenv("ASSISTANT_MAX_TOKENS", "512")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.ClassifierTimeout)
	assert.Equal(t, 3*time.Second, cfg.DirectoryTimeout)
	assert.Equal(t, 6, cfg.DoctorSampleSize)
	assert.Equal(t, 512, cfg.AssistantMaxTokens)
}

func TestLoad_ProductionRequiresSecrets(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("OPENAI_API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")

	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("CLASSIFIER_URL", "http://classifier:10000/")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}
