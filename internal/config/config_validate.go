// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

package config

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Validate checks that the configuration is complete and within bounds.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateSecurity,
		c.validateStore,
		c.validateCatalog,
		c.validateBreaker,
		c.validateLogging,
	}
	for _, v := range validators {
		if err := v(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

// Rate limit and session bounds.
const (
	minJWTSecretLength = 32
	minSessionTimeout  = time.Minute
	maxSessionTimeout  = 90 * 24 * time.Hour
	maxGlobalRateLimit = 100000
	minLoginAttempts   = 1
	maxLoginAttempts   = 100
)

func (c *Config) validateSecurity() error {
	s := c.Security
	if s.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if len(s.JWTSecret) < minJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters for security", minJWTSecretLength)
	}
	if containsPlaceholder(s.JWTSecret) {
		return fmt.Errorf("JWT_SECRET contains a placeholder value - generate a secure secret with: openssl rand -base64 32")
	}
	if s.SessionTimeout < minSessionTimeout || s.SessionTimeout > maxSessionTimeout {
		return fmt.Errorf("SESSION_TIMEOUT must be between %v and %v", minSessionTimeout, maxSessionTimeout)
	}
	if s.BcryptCost < bcrypt.MinCost || s.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if s.GlobalRateLimit < 0 || s.GlobalRateLimit > maxGlobalRateLimit {
		return fmt.Errorf("GLOBAL_RATE_LIMIT must be between 0 and %d", maxGlobalRateLimit)
	}
	if s.GlobalRateLimit > 0 && s.GlobalRateWindow < time.Second {
		return fmt.Errorf("GLOBAL_RATE_WINDOW must be at least 1s")
	}
	if s.LoginAttempts < minLoginAttempts || s.LoginAttempts > maxLoginAttempts {
		return fmt.Errorf("LOGIN_ATTEMPTS must be between %d and %d", minLoginAttempts, maxLoginAttempts)
	}
	if s.LoginRefill <= 0 {
		return fmt.Errorf("LOGIN_REFILL must be positive")
	}
	return c.validateCORS()
}

// validateCORS rejects wildcard origins in production since the token cookie
// would be readable cross-origin.
func (c *Config) validateCORS() error {
	if c.IsProduction() && c.HasWildcardCORS() {
		return fmt.Errorf("CORS_ORIGINS=* (wildcard) is not allowed in production; " +
			"set specific origins, e.g. CORS_ORIGINS=https://mcu.example.com")
	}
	return nil
}

// HasWildcardCORS reports whether any configured origin is "*".
func (c *Config) HasWildcardCORS() bool {
	for _, o := range c.Security.CORSOrigins {
		if o == "*" {
			return true
		}
	}
	return false
}

var validStoreDrivers = map[string]bool{
	"badger": true,
	"mongo":  true,
}

func (c *Config) validateStore() error {
	st := c.Store
	if !validStoreDrivers[st.Driver] {
		return fmt.Errorf("STORE_DRIVER must be one of: badger, mongo")
	}
	switch st.Driver {
	case "badger":
		if !st.BadgerInMemory && st.BadgerPath == "" {
			return fmt.Errorf("BADGER_PATH is required when STORE_DRIVER=badger and BADGER_IN_MEMORY=false")
		}
	case "mongo":
		if !strings.HasPrefix(st.MongoURI, "mongodb://") && !strings.HasPrefix(st.MongoURI, "mongodb+srv://") {
			return fmt.Errorf("MONGODB_URI must start with mongodb:// or mongodb+srv://")
		}
		if st.MongoDatabase == "" {
			return fmt.Errorf("MONGO_DATABASE is required when STORE_DRIVER=mongo")
		}
	}
	if st.Timeout <= 0 {
		return fmt.Errorf("STORE_TIMEOUT must be positive")
	}
	if st.BadgerGCInterval < 0 {
		return fmt.Errorf("BADGER_GC_INTERVAL must not be negative")
	}
	return nil
}

func (c *Config) validateCatalog() error {
	if c.Catalog.MinutesPerEpisode < 1 || c.Catalog.MinutesPerEpisode > 600 {
		return fmt.Errorf("MINUTES_PER_EPISODE must be between 1 and 600")
	}
	if c.Catalog.PreviewCount < 1 || c.Catalog.PreviewCount > 50 {
		return fmt.Errorf("CATALOG_PREVIEW_COUNT must be between 1 and 50")
	}
	if c.Catalog.OverrideCacheTTL < 0 {
		return fmt.Errorf("OVERRIDE_CACHE_TTL must not be negative")
	}
	return nil
}

func (c *Config) validateBreaker() error {
	b := c.Breaker
	if b.MaxRequests == 0 {
		return fmt.Errorf("BREAKER_MAX_REQUESTS must be at least 1")
	}
	if b.FailureRatio <= 0 || b.FailureRatio > 1 {
		return fmt.Errorf("BREAKER_FAILURE_RATIO must be in (0, 1]")
	}
	if b.Timeout <= 0 {
		return fmt.Errorf("BREAKER_TIMEOUT must be positive")
	}
	return nil
}

var validLogLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "error": true, "fatal": true, "disabled": true,
}

func (c *Config) validateLogging() error {
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error, fatal, disabled")
	}
	if f := strings.ToLower(c.Logging.Format); f != "json" && f != "console" {
		return fmt.Errorf("LOG_FORMAT must be json or console")
	}
	return nil
}

// IsProduction reports whether ENVIRONMENT is production.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "production" || env == "prod"
}

var placeholders = []string{"changeme", "change-me", "replace", "your-secret", "placeholder", "example"}

func containsPlaceholder(v string) bool {
	lower := strings.ToLower(v)
	for _, p := range placeholders {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
