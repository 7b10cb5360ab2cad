package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/BerylCAtieno/meta-ads-strategist/internal/generator"
)

type Config struct {
	Port string `envconfig:"PORT" default:"8080"`
	Env  string `envconfig:"ENV" default:"development"`

	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogEncoding string `envconfig:"LOG_ENCODING" default:"console"`

	AIProvider string `envconfig:"AI_PROVIDER" default:"gemini"`

	GeminiAPIKey string `envconfig:"GEMINI_API_KEY"`
	GeminiModel  string `envconfig:"GEMINI_MODEL" default:"gemini-2.5-flash"`

	OpenAIAPIKey  string `envconfig:"OPENAI_API_KEY"`
	OpenAIBaseURL string `envconfig:"OPENAI_BASE_URL" default:"https://api.openai.com/v1"`
	OpenAIModel   string `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`

	Temperature       float32       `envconfig:"AI_TEMPERATURE" default:"0.7"`
	TopP              float32       `envconfig:"AI_TOP_P" default:"0.95"`
	MaxOutputTokens   int32         `envconfig:"AI_MAX_OUTPUT_TOKENS" default:"8192"`
	GenerationTimeout time.Duration `envconfig:"GENERATION_TIMEOUT" default:"90s"`

	SessionTTL         time.Duration `envconfig:"SESSION_TTL" default:"30m"`
	CORSAllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	MetricsEnabled     bool          `envconfig:"METRICS_ENABLED" default:"true"`
}

// Load reads an optional .env file, then the environment. A missing provider
// API key is an error.
func Load() (*Config, error) {
	// .env is optional; real environment variables take precedence.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg.AIProvider = strings.ToLower(strings.TrimSpace(cfg.AIProvider))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	switch c.AIProvider {
	case generator.ProviderGemini:
		if c.GeminiAPIKey == "" {
			errs = append(errs, errors.New("GEMINI_API_KEY environment variable is required"))
		}
	case generator.ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			errs = append(errs, errors.New("OPENAI_API_KEY environment variable is required"))
		}
	default:
		errs = append(errs, fmt.Errorf("AI_PROVIDER must be %q or %q, got %q",
			generator.ProviderGemini, generator.ProviderOpenAI, c.AIProvider))
	}

	if c.Temperature < 0 || c.Temperature > 2 {
		errs = append(errs, fmt.Errorf("AI_TEMPERATURE must be between 0 and 2, got %v", c.Temperature))
	}
	if c.TopP < 0 || c.TopP > 1 {
		errs = append(errs, fmt.Errorf("AI_TOP_P must be between 0 and 1, got %v", c.TopP))
	}
	if c.MaxOutputTokens <= 0 {
		errs = append(errs, fmt.Errorf("AI_MAX_OUTPUT_TOKENS must be positive, got %d", c.MaxOutputTokens))
	}
	if c.GenerationTimeout <= 0 {
		errs = append(errs, fmt.Errorf("GENERATION_TIMEOUT must be positive, got %s", c.GenerationTimeout))
	}

	return errors.Join(errs...)
}

// Generator maps the configuration onto generator options for the selected
// provider.
func (c *Config) Generator() generator.Options {
	opts := generator.Options{
		Provider: c.AIProvider,
		Timeout:  c.GenerationTimeout,
		Model: generator.ModelOptions{
			Temperature:     c.Temperature,
			TopP:            c.TopP,
			MaxOutputTokens: c.MaxOutputTokens,
		},
	}

	switch c.AIProvider {
	case generator.ProviderOpenAI:
		opts.APIKey = c.OpenAIAPIKey
		opts.BaseURL = c.OpenAIBaseURL
		opts.Model.Name = c.OpenAIModel
	default:
		opts.APIKey = c.GeminiAPIKey
		opts.Model.Name = c.GeminiModel
	}
	return opts
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}
