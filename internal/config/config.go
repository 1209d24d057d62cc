package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port     string
	LogLevel string

	// Knowledge base sources
	DocumentPath string
	QAPath       string

	// Embedding model
	EmbedProvider string
	EmbedBaseURL  string
	EmbedModel    string
	EmbedAPIKey   string
	EmbedTimeout  time.Duration
	LoadTimeout   time.Duration

	// Matching thresholds
	HeadingMatchCutoff float64
	QAMatchCutoff      float64
	SemanticMinScore   float64
	SemanticTopN       int
	MaxAnswerLines     int

	// Request limits
	MaxBodyBytes int64

	// PDF
	PDFFallbackPdftotext bool
}

// Embedding providers.
const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
)

// DefaultEmbedModel is Ollama's packaging of all-MiniLM-L6-v2. The hosted
// OpenAI API does not serve it.
const DefaultEmbedModel = "all-minilm"

const openAIHost = "api.openai.com"

func Load() Config {
	cfg := Config{
		Port:     envOr("PORT", "8090"),
		LogLevel: envOr("LOG_LEVEL", "info"),

		DocumentPath: os.Getenv("DOCUMENT_PATH"),
		QAPath:       os.Getenv("QA_PATH"),

		EmbedProvider: strings.ToLower(envOr("EMBED_PROVIDER", ProviderOllama)),
		EmbedBaseURL:  os.Getenv("EMBED_BASE_URL"),
		EmbedModel:    envOr("EMBED_MODEL", DefaultEmbedModel),
		EmbedAPIKey:   os.Getenv("EMBED_API_KEY"),
		EmbedTimeout:  envDuration("EMBED_TIMEOUT", 30*time.Second),
		LoadTimeout:   envDuration("LOAD_TIMEOUT", 5*time.Minute),

		HeadingMatchCutoff: envFloat("HEADING_MATCH_CUTOFF", 0.5),
		QAMatchCutoff:      envFloat("QA_MATCH_CUTOFF", 0.6),
		SemanticMinScore:   envFloat("SEMANTIC_MIN_SCORE", 0.4),
		SemanticTopN:       envInt("SEMANTIC_TOP_N", 1),
		MaxAnswerLines:     envInt("MAX_ANSWER_LINES", 6),

		MaxBodyBytes: envInt64("MAX_BODY_BYTES", 65536), // 64KB

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.EmbedBaseURL == "" {
		cfg.EmbedBaseURL = defaultBaseURL(cfg.EmbedProvider)
	}
	if cfg.EmbedTimeout <= 0 {
		cfg.EmbedTimeout = 30 * time.Second
	}
	if cfg.LoadTimeout <= 0 {
		cfg.LoadTimeout = 5 * time.Minute
	}
	if cfg.SemanticTopN <= 0 {
		cfg.SemanticTopN = 1
	}
	if cfg.MaxAnswerLines <= 0 {
		cfg.MaxAnswerLines = 6
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 65536
	}

	return cfg
}

func (c Config) Validate() error {
	if c.DocumentPath == "" {
		return fmt.Errorf("DOCUMENT_PATH is required")
	}
	switch c.EmbedProvider {
	case ProviderOllama:
	case ProviderOpenAI:
		if c.EmbedAPIKey == "" {
			return fmt.Errorf("EMBED_API_KEY is required for provider %q", ProviderOpenAI)
		}
		if c.EmbedModel == DefaultEmbedModel && isOpenAIHost(c.EmbedBaseURL) {
			return fmt.Errorf("EMBED_MODEL %q is not served by %s; set EMBED_MODEL to an OpenAI embedding model or EMBED_BASE_URL to a compatible server", c.EmbedModel, openAIHost)
		}
	default:
		return fmt.Errorf("EMBED_PROVIDER must be %q or %q, got %q", ProviderOllama, ProviderOpenAI, c.EmbedProvider)
	}
	for name, v := range map[string]float64{
		"HEADING_MATCH_CUTOFF": c.HeadingMatchCutoff,
		"QA_MATCH_CUTOFF":      c.QAMatchCutoff,
		"SEMANTIC_MIN_SCORE":   c.SemanticMinScore,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s must be between 0 and 1, got %v", name, v)
		}
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

func isOpenAIHost(baseURL string) bool {
	u, err := url.Parse(baseURL)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Hostname(), openAIHost)
}

// defaultBaseURL is a local Ollama server, or the OpenAI API for "openai".
func defaultBaseURL(provider string) string {
	if provider == ProviderOpenAI {
		return "https://api.openai.com/v1"
	}
	return "http://localhost:11434"
}

// ParseLevel maps LOG_LEVEL to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return level, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
