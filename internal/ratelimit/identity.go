// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

package ratelimit

import (
	"net"
	"net/http"
	"strings"
)

// Identifier extracts the client identity used as the rate limit key.
type Identifier struct {
	trusted map[string]bool
}

// NewIdentifier creates an Identifier. With no trusted proxies, forwarding
// headers are always honored. Otherwise they are honored only when the
// direct peer is one of trustedProxies.
func NewIdentifier(trustedProxies []string) *Identifier {
	trusted := make(map[string]bool, len(trustedProxies))
	for _, p := range trustedProxies {
		trusted[strings.TrimSpace(p)] = true
	}
	return &Identifier{trusted: trusted}
}

// ClientIdentifier returns, in order: the first X-Forwarded-For entry,
// X-Real-IP, the remote address host, or "unknown".
func (id *Identifier) ClientIdentifier(r *http.Request) string {
	remote := remoteHost(r.RemoteAddr)

	if id.honorsHeaders(remote) {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			if first = strings.TrimSpace(first); first != "" {
				return first
			}
		}
		if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
			return xri
		}
	}

	if remote != "" {
		return remote
	}
	return "unknown"
}

func (id *Identifier) honorsHeaders(remote string) bool {
	return len(id.trusted) == 0 || id.trusted[remote]
}

func remoteHost(addr string) string {
	if addr == "" {
		return ""
	}
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}
