package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"textsummarizer/internal/summarizer"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Token        string  `env:"TOKEN"`
	AllowedUsers []int64 `env:"ALLOWED_USERS"`

	ModelID        string `env:"MODEL_ID"         envDefault:"facebook/bart-large-cnn"`
	HFToken        string `env:"HF_TOKEN"`
	HFInferenceURL string `env:"HF_INFERENCE_URL" envDefault:"https://router.huggingface.co/hf-inference"`
	HFHubURL       string `env:"HF_HUB_URL"       envDefault:"https://huggingface.co"`
	OpenAIAPIKey   string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL  string `env:"OPENAI_BASE_URL"`

	MaxLength      int           `env:"MAX_LENGTH"       envDefault:"130"`
	MinLength      int           `env:"MIN_LENGTH"       envDefault:"30"`
	MaxInputWords  int           `env:"MAX_INPUT_WORDS"  envDefault:"1000"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"  envDefault:"2m"`

	MetricsAddr string     `env:"METRICS_ADDR"`
	LogLevel    slog.Level `env:"LOG_LEVEL"    envDefault:"INFO"`
}

// Load reads the configuration from the environment and validates it.
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	if err = cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks values that the environment parser can't.
func (c Config) Validate() error {
	var errs []error

	if c.ModelID == "" {
		errs = append(errs, errors.New("MODEL_ID must not be empty"))
	}
	if c.MaxLength <= 0 {
		errs = append(errs, fmt.Errorf("MAX_LENGTH must be positive, got %d", c.MaxLength))
	}
	if c.MinLength <= 0 {
		errs = append(errs, fmt.Errorf("MIN_LENGTH must be positive, got %d", c.MinLength))
	}
	if c.MinLength > c.MaxLength {
		errs = append(errs, fmt.Errorf("MIN_LENGTH (%d) must not exceed MAX_LENGTH (%d)", c.MinLength, c.MaxLength))
	}
	if c.MaxInputWords < 0 {
		errs = append(errs, fmt.Errorf("MAX_INPUT_WORDS must not be negative, got %d", c.MaxInputWords))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout))
	}

	if backend, _ := summarizer.ParseModelID(c.ModelID); backend == summarizer.BackendOpenAI && c.OpenAIAPIKey == "" {
		errs = append(errs, fmt.Errorf("OPENAI_API_KEY is required for model %q", c.ModelID))
	}

	return errors.Join(errs...)
}

// ValidateBot checks the settings only the Telegram bot needs.
func (c Config) ValidateBot() error {
	if c.Token == "" {
		return errors.New("TOKEN is required to run the bot")
	}
	return nil
}
