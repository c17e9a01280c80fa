package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port            string
	DBPath          string
	StaticDir       string
	GeminiEndpoint  string
	GeminiAPIKey    string
	GeminiModel     string
	EmbedModel      string
	AdvisoryTimeout time.Duration
	KBAllowed       []string
	KBMaxBytes      int
}

// LLMMode is "gemini" when an API key is set, "mock" otherwise.
func (c AppConfig) LLMMode() string {
	if c.GeminiAPIKey != "" {
		return "gemini"
	}
	return "mock"
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[cfg] error loading .env: %v", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds the config from a lookup function; empty values take the
// default.
func FromEnv(getenv func(string) string) AppConfig {
	get := func(k, def string) string {
		if v := strings.TrimSpace(getenv(k)); v != "" {
			return v
		}
		return def
	}

	timeout, err := time.ParseDuration(get("ADVISORY_TIMEOUT", "25s"))
	if err != nil || timeout <= 0 {
		log.Printf("[cfg] bad ADVISORY_TIMEOUT %q, using 25s", getenv("ADVISORY_TIMEOUT"))
		timeout = 25 * time.Second
	}
	maxBytes, err := strconv.Atoi(get("KB_MAX_BYTES_PER_PAGE", "1500000"))
	if err != nil || maxBytes <= 0 {
		maxBytes = 1500000
	}
	var allowed []string
	for _, h := range strings.Split(getenv("KB_ALLOWED_DOMAINS"), ",") {
		if h = strings.TrimSpace(h); h != "" {
			allowed = append(allowed, h)
		}
	}

	cfg := AppConfig{
		Port:            get("PORT", "8080"),
		DBPath:          get("DB_PATH", "agrismart.db"),
		StaticDir:       get("STATIC_DIR", "static"),
		GeminiEndpoint:  get("GEMINI_ENDPOINT", "https://generativelanguage.googleapis.com"),
		GeminiAPIKey:    get("GEMINI_API_KEY", ""),
		GeminiModel:     get("GEMINI_MODEL", "gemini-2.0-flash"),
		EmbedModel:      get("GEMINI_EMBED_MODEL", "text-embedding-004"),
		AdvisoryTimeout: timeout,
		KBAllowed:       allowed,
		KBMaxBytes:      maxBytes,
	}
	log.Printf("[cfg] port=%s db=%s static=%s llm=%s model=%s embed=%s timeout=%s kb_domains=%v",
		cfg.Port, cfg.DBPath, cfg.StaticDir, cfg.LLMMode(), cfg.GeminiModel, cfg.EmbedModel, cfg.AdvisoryTimeout, cfg.KBAllowed)
	return cfg
}
