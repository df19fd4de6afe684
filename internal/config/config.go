package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	// Google service account
	CredentialsFile string `env:"GOOGLE_CREDENTIALS_FILE" envDefault:"google-credentials.json" validate:"required_unless=DryRun true"`
	Worksheet       string `env:"WORKSHEET_NAME"          envDefault:"Page 1"                  validate:"required"`

	// Layout override; empty uses the embedded layout
	LayoutFile string `env:"LAYOUT_FILE"`

	// Print the batched payload instead of sending it
	DryRun bool `env:"DRY_RUN"`

	// PDF
	PDFFallbackPdftotext bool `env:"PDF_FALLBACK_PDFTOTEXT" envDefault:"true"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	// Preview server
	Port           string `env:"PORT"              envDefault:"8090"     validate:"required,numeric"`
	APIKey         string `env:"CHARSHEET_API_KEY"`
	MaxUploadBytes int64  `env:"MAX_UPLOAD_BYTES"  envDefault:"10485760" validate:"gt=0"` // 10MB
}

// Load reads configuration from the environment. Call godotenv first if a
// .env file should be honoured.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	return cfg, nil
}

func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// ValidateServer adds the checks only the preview server needs.
func (c Config) ValidateServer() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.APIKey == "" {
		return fmt.Errorf("CHARSHEET_API_KEY is required")
	}
	return nil
}

// SlogLevel maps LOG_LEVEL onto a slog level. Unknown values mean info.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
