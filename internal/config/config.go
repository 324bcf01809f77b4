// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads contactdesk settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// DefaultAPIBaseURL is the contact submissions API used when none is configured.
const DefaultAPIBaseURL = "https://parishram-contruction-admin.onrender.com/api"

// knownWeakSecrets contains example secrets that must be rejected in production.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	APIBaseURL    string `env:"CONTACTDESK_API_BASE_URL" envDefault:"https://parishram-contruction-admin.onrender.com/api"`
	SessionSecret string `env:"CONTACTDESK_SESSION_SECRET,required"`
	ServerHost    string `env:"CONTACTDESK_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"CONTACTDESK_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"CONTACTDESK_ENV" envDefault:"development"`
	LogLevel      string `env:"CONTACTDESK_LOG_LEVEL" envDefault:"info"`
	LogFile       string `env:"CONTACTDESK_LOG_FILE"` // Rotating log file; the only log output in TUI mode

	// Screen instances are dropped after this much inactivity
	ScreenTTL time.Duration `env:"CONTACTDESK_SCREEN_TTL" envDefault:"2h"`
	// Cron schedule of the idle screen sweep
	SweepSchedule string `env:"CONTACTDESK_SWEEP_SCHEDULE" envDefault:"@every 1m"`

	// Per-client rate limit for mutating admin requests
	RateLimitRPS   float64 `env:"CONTACTDESK_RATE_LIMIT_RPS" envDefault:"10"`
	RateLimitBurst int     `env:"CONTACTDESK_RATE_LIMIT_BURST" envDefault:"20"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// MinSessionSecretLength is the minimum required length for the session secret,
// which doubles as the 32-byte CSRF key.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("CONTACTDESK_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	if !cfg.IsDevelopment() {
		for _, weak := range knownWeakSecrets {
			if cfg.SessionSecret == weak {
				return nil, fmt.Errorf("CONTACTDESK_SESSION_SECRET is a known default value and must not be used; " +
					"generate a secure secret with: openssl rand -base64 32")
			}
		}
	}

	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("CONTACTDESK_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	if err := validateBaseURL(cfg.APIBaseURL); err != nil {
		return nil, err
	}

	if cfg.RateLimitRPS <= 0 || cfg.RateLimitBurst <= 0 {
		return nil, fmt.Errorf("CONTACTDESK_RATE_LIMIT_RPS and CONTACTDESK_RATE_LIMIT_BURST must be positive")
	}

	return cfg, nil
}

// CSRFKey returns the first 32 bytes of the session secret.
func (c Config) CSRFKey() []byte {
	return []byte(c.SessionSecret)[:MinSessionSecretLength]
}

// validateBaseURL requires an absolute http(s) URL.
func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("CONTACTDESK_API_BASE_URL is not a valid URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("CONTACTDESK_API_BASE_URL must be an absolute http(s) URL, got %q", raw)
	}
	return nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
