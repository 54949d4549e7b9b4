// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

package logging

import (
	"strings"

	"github.com/rs/zerolog"
)

// Security event types.
const (
	EventRegister       = "auth.register"
	EventLoginSuccess   = "auth.login.success"
	EventLoginFailure   = "auth.login.failure"
	EventAccessDenied   = "authz.denied"
	EventRateLimited    = "ratelimit.rejected"
	EventOverrideEdited = "admin.override.upsert"
)

// SecurityLogger writes audit-relevant events with identifiers masked.
type SecurityLogger struct {
	logger zerolog.Logger
}

// NewSecurityLogger returns a SecurityLogger on the global logger.
func NewSecurityLogger() *SecurityLogger {
	return &SecurityLogger{logger: WithComponent("security")}
}

// NewSecurityLoggerWithLogger returns a SecurityLogger writing to logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewSecurityLoggerWithLogger(logger zerolog.Logger) *SecurityLogger {
	return &SecurityLogger{logger: logger.With().Str("component", "security").Logger()}
}

// LogRegister records an account creation.
func (l *SecurityLogger) LogRegister(userID, email, ip string) {
	l.logger.Info().
		Str("event", EventRegister).
		Str("user_id", userID).
		Str("email", SanitizeEmail(email)).
		Str("ip", ip).
		Msg("Account registered")
}

// LogLoginSuccess records a successful credential check.
func (l *SecurityLogger) LogLoginSuccess(userID, email, ip string) {
	l.logger.Info().
		Str("event", EventLoginSuccess).
		Str("user_id", userID).
		Str("email", SanitizeEmail(email)).
		Str("ip", ip).
		Msg("Login succeeded")
}

// LogLoginFailure records a rejected login; reason is not sent to the client.
func (l *SecurityLogger) LogLoginFailure(email, ip, reason string) {
	l.logger.Warn().
		Str("event", EventLoginFailure).
		Str("email", SanitizeEmail(email)).
		Str("ip", ip).
		Str("reason", reason).
		Msg("Login failed")
}

// LogAccessDenied records a request refused by the authorization layer.
func (l *SecurityLogger) LogAccessDenied(userID, path string, status int) {
	l.logger.Warn().
		Str("event", EventAccessDenied).
		Str("user_id", userID).
		Str("path", path).
		Int("status", status).
		Msg("Access denied")
}

// LogRateLimited records a throttled request.
func (l *SecurityLogger) LogRateLimited(identifier, path string, retryAfter int) {
	l.logger.Warn().
		Str("event", EventRateLimited).
		Str("identifier", identifier).
		Str("path", path).
		Int("retry_after", retryAfter).
		Msg("Request rate limited")
}

// LogOverrideEdited records an admin write to a title override.
func (l *SecurityLogger) LogOverrideEdited(editor, itemID string) {
	l.logger.Info().
		Str("event", EventOverrideEdited).
		Str("editor", SanitizeEmail(editor)).
		Str("item_id", itemID).
		Msg("Title override saved")
}

// SanitizeToken keeps only the first and last 4 characters.
func SanitizeToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 12 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

// SanitizeEmail masks the local part: "john.doe@example.com" -> "jo***@example.com".
func SanitizeEmail(email string) string {
	if email == "" {
		return ""
	}
	at := strings.Index(email, "@")
	if at <= 0 {
		return "***"
	}
	local, domain := email[:at], email[at:]
	if len(local) <= 2 {
		return "***" + domain
	}
	return local[:2] + "***" + domain
}

// SanitizeValue masks value when key names a credential or value looks like an email.
func SanitizeValue(key, value string) string {
	switch strings.ToLower(key) {
	case "token", "password", "secret", "authorization", "cookie", "jwt_secret":
		return SanitizeToken(value)
	}
	if strings.Contains(value, "@") && strings.Contains(value, ".") {
		return SanitizeEmail(value)
	}
	if len(value) > 200 {
		return value[:200] + "..."
	}
	return value
}
