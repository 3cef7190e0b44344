// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values. A local .env file,
when present, is loaded first with 'joho/godotenv'; variables already set in
the process environment win.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// # Configuration Schema

// Config holds all runtime configuration for the Director's Cut API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	// Cryptographic keys for identity signing
	JWTPrivKeyPath string `env:"JWT_PRIVATE_KEY_PATH,required"`
	JWTPubKeyPath  string `env:"JWT_PUBLIC_KEY_PATH,required"`

	// Cross-Origin Resource Sharing: origins ending with this suffix are allowed
	AllowedOriginSuffix string `env:"ALLOWED_ORIGIN_SUFFIX" envDefault:"directorscut.app"`

	// Catalog fetch throttling
	MoviesFetchCooldown time.Duration `env:"MOVIES_FETCH_COOLDOWN" envDefault:"1500ms"`
	GenresFetchCooldown time.Duration `env:"GENRES_FETCH_COOLDOWN" envDefault:"3s"`

	// Outbound email
	Email EmailConfig `envPrefix:"EMAIL_"`
}

// EmailConfig configures the auth email dispatcher and its webhook.
type EmailConfig struct {
	// ResendAPIKey enables delivery through Resend. Empty means log-only delivery.
	ResendAPIKey string `env:"RESEND_API_KEY"`
	From         string `env:"FROM"               envDefault:"Director's Cut <noreply@resend.dev>"`
	// HookSecret is the standard-webhooks secret ("whsec_..."). Empty disables the hook route.
	HookSecret string `env:"HOOK_SECRET"`
	// AuthBaseURL prefixes the verification links sent by email.
	AuthBaseURL string `env:"AUTH_BASE_URL"      envDefault:"http://localhost:8080/api/v1/auth"`
	// SiteURL is where users land after confirming an email.
	SiteURL string `env:"SITE_URL"           envDefault:"http://localhost:5173"`
	// ResetRedirectURL is the page that completes a password reset.
	ResetRedirectURL string `env:"RESET_REDIRECT_URL" envDefault:"http://localhost:5173/reset-password"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// A missing .env file is normal outside local development
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to load .env file: %w", err)
	}

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// OriginAllowed reports whether a browser origin may call the API outside development.
func (c *Config) OriginAllowed(origin string) bool {
	return c.AllowedOriginSuffix != "" && strings.HasSuffix(origin, c.AllowedOriginSuffix)
}
