// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct. A '.env' file next to the binary is loaded first when present
('joho/godotenv'); real environment variables always win over it.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
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

	"github.com/losreyesdelusado/backend/internal/platform/constants"
)

// # Configuration Schema

// Config holds all runtime configuration for the API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`
	Timezone    string `env:"TIMEZONE"     envDefault:"America/Argentina/Buenos_Aires"`

	// URLServer is the public base used in links sent by email.
	URLServer string `env:"URL_SERVER" envDefault:"http://localhost:8080"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./migrations"`

	// RedisURL backs the revocation store. Empty selects the in-process store.
	RedisURL string `env:"REDIS_URL"`

	// Token signing
	JWTSecret string        `env:"JWT_SECRET,required,notEmpty"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"86400s"`

	// Local media storage
	MediaBaseDir string `env:"MEDIA_BASE_DIR" envDefault:"./public/uploads"`
	MediaBaseURL string `env:"MEDIA_BASE_URL" envDefault:"http://localhost:8080/uploads"`

	// Outgoing email
	SMTP SMTPConfig

	// Cross-Origin Resource Sharing, comma separated. "*" allows any origin.
	CORSOrigins string `env:"CORS_ORIGINS" envDefault:"*"`
}

// SMTPConfig holds the outgoing mail server settings.
type SMTPConfig struct {
	Host     string `env:"HOST_SMTP"`
	Username string `env:"USERNAME_SMTP"`
	Password string `env:"PASS_SMTP"`
	Port     int    `env:"PORT_SMTP"       envDefault:"587"`
	Secure   string `env:"SMTP_SECURE"     envDefault:"tls"`
	From     string `env:"EMAIL_FROM"`
	FromName string `env:"EMAIL_FROM_NAME" envDefault:"Los Reyes del Usado"`
}

// # Configuration Loading

// Load reads an optional .env file and parses environment variables into a [Config].
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to read .env file: %w", err)
	}

	return Parse()
}

// Parse maps the current process environment into a [Config] and validates it.
func Parse() (*Config, error) {
	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if len(cfg.JWTSecret) < 16 {
		return nil, errors.New("config: JWT_SECRET must be at least 16 characters")
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = constants.DefaultTokenTTL
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// SMTPConfigured reports whether outgoing email is enabled.
func (c *Config) SMTPConfigured() bool {
	return strings.TrimSpace(c.SMTP.Host) != ""
}

// Location resolves the configured time zone, falling back to UTC.
func (c *Config) Location() *time.Location {
	name := c.Timezone
	if name == "" {
		name = constants.DefaultTimezone
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// AllowedOrigins splits CORS_ORIGINS into a trimmed list.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.CORSOrigins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// String hides secrets when the configuration is printed or logged.
func (c *Config) String() string {
	return fmt.Sprintf("Config{env=%s port=%s redis=%t smtp=%t}",
		c.Environment, c.ServerPort, c.RedisURL != "", c.SMTPConfigured())
}
