// Package config holds the settings shared by every command.
package config

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/naka-gawa/github-activity/internal/gateway"
)

const (
	TokenEnv   = "GITHUB_TOKEN"
	BaseURLEnv = "GITHUB_API_URL"

	DefaultAddr        = ":8080"
	DefaultWaitTimeout = 30 * time.Second
)

// Config is the application configuration assembled from flags and environment.
type Config struct {
	Token         string
	BaseURL       string
	RateLimitWait time.Duration
	Verbose       bool
	Addr          string
	WaitTimeout   time.Duration
}

// Load fills the fields that flags left empty from the environment.
// The token is only ever read from the environment.
func Load(cfg Config, getenv func(string) string) Config {
	if getenv == nil {
		getenv = os.Getenv
	}
	cfg.Token = getenv(TokenEnv)
	if cfg.BaseURL == "" {
		cfg.BaseURL = getenv(BaseURLEnv)
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.WaitTimeout <= 0 {
		cfg.WaitTimeout = DefaultWaitTimeout
	}
	if cfg.RateLimitWait < 0 {
		cfg.RateLimitWait = 0
	}
	return cfg
}

// GatewayOptions returns the options for gateway.NewGitHubGateway.
func (c Config) GatewayOptions() gateway.Options {
	return gateway.Options{
		Token:         c.Token,
		BaseURL:       c.BaseURL,
		RateLimitWait: c.RateLimitWait,
	}
}

// Logger discards everything unless Verbose is set, in which case it writes
// human-readable debug output to w.
func (c Config) Logger(w io.Writer) zerolog.Logger {
	if !c.Verbose {
		return zerolog.New(io.Discard)
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		Level(zerolog.DebugLevel).
		With().Timestamp().Logger()
}
