package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MAX_UPLOAD_BYTES", "")
	t.Setenv("AI_TIMEOUT", "")
	t.Setenv("LLM_PROVIDER", "")

	cfg := Load()

	assert.Equal(t, int64(1024*1024), cfg.Upload.MaxBytes)
	assert.Equal(t, 60*time.Second, cfg.Ai.Timeout)
	assert.Equal(t, 0, cfg.Ai.ContextMaxChars)
	assert.Greater(t, int64(cfg.App.BodyLimitBytes), cfg.Upload.MaxBytes)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MAX_UPLOAD_BYTES", "2048")
	t.Setenv("AI_TIMEOUT", "15")
	t.Setenv("EXTRACTION_CACHE_TTL", "5m")
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("GO_ENV", "production")

	cfg := Load()

	assert.Equal(t, int64(2048), cfg.Upload.MaxBytes)
	assert.Equal(t, 15*time.Second, cfg.Ai.Timeout)
	assert.Equal(t, 5*time.Minute, cfg.Upload.ExtractionCacheTTL)
	assert.Equal(t, "openai", cfg.Ai.LLMProvider)
	assert.True(t, cfg.IsProduction())
}

func TestGetEnvAsDurationFallback(t *testing.T) {
	t.Setenv("SOME_DURATION", "not-a-duration")
	assert.Equal(t, time.Minute, getEnvAsDuration("SOME_DURATION", time.Minute))
}
