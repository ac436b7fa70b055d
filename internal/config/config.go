package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"discussum/internal/roster"
	"discussum/internal/transcript"
	"discussum/pkg/llm"
	"discussum/pkg/retry"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

type Config struct {
	Port        string
	FrontendURL string
	DatabaseURL string
	RedisURL    string

	CanvasToken   string
	CanvasTimeout time.Duration

	LLMProvider string
	LLMAPIKey   string
	LLMBaseURL  string
	LLMModel    string
	LLMTimeout  time.Duration

	RetryBackoff  retry.Backoff
	RetryAttempts int
	RetryDelay    time.Duration

	Roster          string
	RosterFile      string
	RosterRedisKey  string
	MinContributors int
}

func defaultConfig() Config {
	return Config{
		Port:            "8080",
		CanvasTimeout:   30 * time.Second,
		LLMProvider:     ProviderOpenAI,
		LLMBaseURL:      llm.DefaultOpenAIBaseURL,
		LLMModel:        llm.DefaultOpenAIModel,
		LLMTimeout:      2 * time.Minute,
		RetryBackoff:    retry.None,
		RetryAttempts:   1,
		RetryDelay:      500 * time.Millisecond,
		RosterFile:      "configs/roster.txt",
		RosterRedisKey:  roster.DefaultRedisKey,
		MinContributors: transcript.DefaultMinContributors,
	}
}

// Load reads the configuration from the environment. Call godotenv.Load first
// to pick up a .env file.
func Load() (Config, error) {
	c := defaultConfig()

	setString(&c.Port, "PORT")
	setString(&c.FrontendURL, "FRONTEND_URL")
	setString(&c.DatabaseURL, "DATABASE_URL")
	setString(&c.RedisURL, "REDIS_URL")
	setString(&c.CanvasToken, "CANVAS_ACCESS_TOKEN")
	setString(&c.LLMProvider, "LLM_PROVIDER")
	setString(&c.LLMBaseURL, "LLM_BASE_URL")
	setString(&c.LLMModel, "LLM_MODEL")
	setString(&c.Roster, "ROSTER")
	setString(&c.RosterFile, "ROSTER_FILE")
	setString(&c.RosterRedisKey, "ROSTER_REDIS_KEY")

	c.LLMProvider = strings.ToLower(c.LLMProvider)
	if c.LLMProvider == ProviderAnthropic {
		// The OpenAI compatible defaults point at xAI; let the Anthropic client pick its own.
		if os.Getenv("LLM_MODEL") == "" {
			c.LLMModel = ""
		}
		if os.Getenv("LLM_BASE_URL") == "" {
			c.LLMBaseURL = ""
		}
	}
	c.LLMAPIKey = firstEnv("LLM_API_KEY", providerKeyEnv(c.LLMProvider)...)

	var errs []error
	errs = append(errs, setDuration(&c.CanvasTimeout, "CANVAS_TIMEOUT"))
	errs = append(errs, setDuration(&c.LLMTimeout, "LLM_TIMEOUT"))
	errs = append(errs, setDuration(&c.RetryDelay, "UPSTREAM_RETRY_DELAY"))
	errs = append(errs, setInt(&c.RetryAttempts, "UPSTREAM_RETRY_ATTEMPTS"))
	errs = append(errs, setInt(&c.MinContributors, "MIN_CONTRIBUTORS"))

	if v, ok := os.LookupEnv("UPSTREAM_RETRY"); ok {
		b, err := retry.ParseBackoff(v)
		errs = append(errs, err)
		c.RetryBackoff = b
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}

	return c, c.Validate()
}

func (c Config) Validate() error {
	if c.CanvasToken == "" {
		return errors.New("missing CANVAS_ACCESS_TOKEN")
	}
	if c.LLMProvider != ProviderOpenAI && c.LLMProvider != ProviderAnthropic {
		return fmt.Errorf("unknown LLM_PROVIDER %q", c.LLMProvider)
	}
	if c.LLMAPIKey == "" {
		return fmt.Errorf("missing API key for provider %s", c.LLMProvider)
	}
	if c.MinContributors < 1 {
		return errors.New("MIN_CONTRIBUTORS must be >= 1")
	}
	if c.RetryAttempts < 1 {
		return errors.New("UPSTREAM_RETRY_ATTEMPTS must be >= 1")
	}
	if c.Roster == "" && c.RosterFile == "" && c.RedisURL == "" {
		return errors.New("no roster configured: set ROSTER, ROSTER_FILE or REDIS_URL")
	}
	return nil
}

// FetchPolicy is the policy for the discussion API call.
func (c Config) FetchPolicy() retry.Policy {
	return retry.Policy{Backoff: c.RetryBackoff, Attempts: c.RetryAttempts, Delay: c.RetryDelay, Timeout: c.CanvasTimeout}
}

// CompletionPolicy is the policy for the completion call.
func (c Config) CompletionPolicy() retry.Policy {
	return retry.Policy{Backoff: c.RetryBackoff, Attempts: c.RetryAttempts, Delay: c.RetryDelay, Timeout: c.LLMTimeout}
}

func providerKeyEnv(provider string) []string {
	if provider == ProviderAnthropic {
		return []string{"ANTHROPIC_API_KEY"}
	}
	return []string{"XAI_API_KEY", "OPENAI_API_KEY"}
}

func firstEnv(name string, fallbacks ...string) string {
	for _, key := range append([]string{name}, fallbacks...) {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}

func setInt(dst *int, key string) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}
