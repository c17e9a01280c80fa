package config

import (
	"bytes"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv(envOf(nil))

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "agrismart.db", cfg.DBPath)
	assert.Equal(t, "static", cfg.StaticDir)
	assert.Equal(t, "gemini-2.0-flash", cfg.GeminiModel)
	assert.Equal(t, "text-embedding-004", cfg.EmbedModel)
	assert.Equal(t, 25*time.Second, cfg.AdvisoryTimeout)
	assert.Equal(t, 1500000, cfg.KBMaxBytes)
	assert.Empty(t, cfg.KBAllowed)
	assert.Equal(t, "mock", cfg.LLMMode())
}

func TestFromEnvOverrides(t *testing.T) {
	cfg := FromEnv(envOf(map[string]string{
		"PORT":               "3000",
		"DB_PATH":            "/var/lib/agri/farm.db",
		"GEMINI_API_KEY":     "k-123",
		"ADVISORY_TIMEOUT":   "5s",
		"KB_ALLOWED_DOMAINS": " extension.example.org , ,fao.example.net",
	}))

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "/var/lib/agri/farm.db", cfg.DBPath)
	assert.Equal(t, 5*time.Second, cfg.AdvisoryTimeout)
	assert.Equal(t, []string{"extension.example.org", "fao.example.net"}, cfg.KBAllowed)
	assert.Equal(t, "gemini", cfg.LLMMode())
}

func TestFromEnvBadValuesFallBack(t *testing.T) {
	cfg := FromEnv(envOf(map[string]string{
		"ADVISORY_TIMEOUT":      "soon",
		"KB_MAX_BYTES_PER_PAGE": "-4",
	}))
	assert.Equal(t, 25*time.Second, cfg.AdvisoryTimeout)
	assert.Equal(t, 1500000, cfg.KBMaxBytes)
}

func TestFromEnvNeverLogsAPIKey(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(prev)

	FromEnv(envOf(map[string]string{"GEMINI_API_KEY": "super-secret-key"}))
	assert.NotContains(t, buf.String(), "super-secret-key")
}
