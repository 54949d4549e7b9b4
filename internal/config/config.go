// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

package config

import (
	"net"
	"strconv"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Security SecurityConfig `koanf:"security"`
	Store    StoreConfig    `koanf:"store"`
	Catalog  CatalogConfig  `koanf:"catalog"`
	Breaker  BreakerConfig  `koanf:"breaker"`
	Events   EventsConfig   `koanf:"events"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"`
}

// SecurityConfig configures authentication, CORS and request throttling.
type SecurityConfig struct {
	JWTSecret      string        `koanf:"jwt_secret"`
	SessionTimeout time.Duration `koanf:"session_timeout"`
	BcryptCost     int           `koanf:"bcrypt_cost"`
	CORSOrigins    []string      `koanf:"cors_origins"`
	TrustedProxies []string      `koanf:"trusted_proxies"`

	// RateLimitDisabled turns off the fixed-window presets (general, auth, progress, admin).
	RateLimitDisabled bool `koanf:"rate_limit_disabled"`

	// GlobalRateLimit is the per-IP ceiling applied before routing; 0 disables it.
	GlobalRateLimit  int           `koanf:"global_rate_limit"`
	GlobalRateWindow time.Duration `koanf:"global_rate_window"`

	// LoginAttempts is the burst of failed logins allowed per email before
	// LoginRefill must elapse for another attempt.
	LoginAttempts int           `koanf:"login_attempts"`
	LoginRefill   time.Duration `koanf:"login_refill"`
}

// StoreConfig selects and configures the persistence backend.
type StoreConfig struct {
	// Driver is "badger" (embedded, default) or "mongo".
	Driver string `koanf:"driver"`

	BadgerPath     string `koanf:"badger_path"`
	BadgerInMemory bool   `koanf:"badger_in_memory"`

	// BadgerGCInterval is how often value-log GC runs. Zero disables it.
	BadgerGCInterval time.Duration `koanf:"badger_gc_interval"`

	MongoURI      string `koanf:"mongo_uri"`
	MongoDatabase string `koanf:"mongo_database"`

	// Timeout bounds a single store operation.
	Timeout time.Duration `koanf:"timeout"`
}

// CatalogConfig tunes derived statistics.
type CatalogConfig struct {
	// MinutesPerEpisode estimates runtime for series without a parseable duration.
	MinutesPerEpisode int `koanf:"minutes_per_episode"`

	// PreviewCount caps the next-up and recently-watched lists.
	PreviewCount int `koanf:"preview_count"`

	// OverrideCacheTTL keeps the override set in memory between reads.
	// Zero reads the store on every request.
	OverrideCacheTTL time.Duration `koanf:"override_cache_ttl"`
}

// BreakerConfig configures the circuit breaker guarding override reads.
type BreakerConfig struct {
	MaxRequests  uint32        `koanf:"max_requests"`
	Interval     time.Duration `koanf:"interval"`
	Timeout      time.Duration `koanf:"timeout"`
	MinRequests  uint32        `koanf:"min_requests"`
	FailureRatio float64       `koanf:"failure_ratio"`
}

// EventsConfig configures the in-process event bus.
type EventsConfig struct {
	BufferSize int64 `koanf:"buffer_size"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration from defaults, file and environment, then validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// Addr returns the host:port the HTTP server listens on.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}
