package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/quiz-gen/backend/internal/generator"
)

var ErrMissingAPIKey = errors.New("missing API key")

type Config struct {
	Port           string
	LLM            generator.ProviderConfig
	APIKey         string
	MaxAttempts    int
	SessionSecret  []byte
	SessionIdle    time.Duration
	AllowedOrigins []string
}

// Load reads the configuration from the environment. A remote provider
// without its credential is an error.
func Load() (*Config, error) {
	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		LLM: generator.ProviderConfig{
			Provider:       strings.ToLower(getEnv("LLM_PROVIDER", generator.ProviderAnthropic)),
			AnthropicModel: getEnv("ANTHROPIC_MODEL", "claude-sonnet-4-20250514"),
			OpenAIModel:    getEnv("OPENAI_MODEL", ""),
			CLIPath:        getEnv("CLAUDE_CLI_PATH", "claude"),
		},
		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}

	switch cfg.LLM.Provider {
	case generator.ProviderAnthropic:
		cfg.APIKey = getEnv("ANTHROPIC_API_KEY", "")
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%w: ANTHROPIC_API_KEY is not set", ErrMissingAPIKey)
		}
	case generator.ProviderOpenAI:
		cfg.APIKey = getEnv("OPENAI_API_KEY", "")
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%w: OPENAI_API_KEY is not set", ErrMissingAPIKey)
		}
	case generator.ProviderCLI, generator.ProviderMock:
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", cfg.LLM.Provider)
	}

	attempts, err := strconv.Atoi(getEnv("QUIZ_MAX_ATTEMPTS", strconv.Itoa(generator.DefaultMaxAttempts)))
	if err != nil || attempts < 1 {
		return nil, errors.New("QUIZ_MAX_ATTEMPTS must be a positive integer")
	}
	cfg.MaxAttempts = attempts

	idle, err := time.ParseDuration(getEnv("SESSION_IDLE_TIMEOUT", "2h"))
	if err != nil || idle <= 0 {
		return nil, errors.New("SESSION_IDLE_TIMEOUT must be a positive duration")
	}
	cfg.SessionIdle = idle

	secret := getEnv("SESSION_SECRET", "")
	if secret == "" {
		log.Println("[config] SESSION_SECRET not set, sessions will not survive a restart")
		secret = uuid.NewString() + uuid.NewString()
	}
	cfg.SessionSecret = []byte(secret)

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
