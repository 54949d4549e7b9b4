// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

package authz

import "testing"

func TestEnforcer_EmbeddedPolicy(t *testing.T) {
	e, err := NewEnforcer()
	if err != nil {
		t.Fatalf("NewEnforcer() error = %v", err)
	}

	tests := []struct {
		role   string
		object string
		action string
		want   bool
	}{
		{"admin", "/api/admin/mcu-items", "read", true},
		{"admin", "/api/admin/mcu-items", "write", true},
		{"admin", "/api/admin/mcu-items/purge-dead-images", "write", true},
		{"admin", "/api/user/progress", "write", true},
		{"user", "/api/user/progress", "read", true},
		{"user", "/api/user/preferences", "write", true},
		{"user", "/api/admin/mcu-items", "read", false},
		{"user", "/api/admin/mcu-items", "write", false},
		{"user", "/api/user/progress", "delete", false},
		{"", "/api/user/progress", "read", false},
		{"guest", "/api/admin/mcu-items", "read", false},
	}

	for _, tt := range tests {
		t.Run(tt.role+" "+tt.action+" "+tt.object, func(t *testing.T) {
			got, err := e.Enforce(tt.role, tt.object, tt.action)
			if err != nil {
				t.Fatalf("Enforce() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Enforce(%q, %q, %q) = %v, want %v", tt.role, tt.object, tt.action, got, tt.want)
			}
		})
	}
}

func TestEnforcer_CachesDecisions(t *testing.T) {
	e, err := NewEnforcer()
	if err != nil {
		t.Fatalf("NewEnforcer() error = %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := e.Enforce("user", "/api/admin/mcu-items", "read"); err != nil {
			t.Fatalf("Enforce() error = %v", err)
		}
	}
	if got := e.cache.len(); got != 1 {
		t.Errorf("cache len = %d, want 1", got)
	}
}

func TestEnforcer_Policy(t *testing.T) {
	e, err := NewEnforcer()
	if err != nil {
		t.Fatalf("NewEnforcer() error = %v", err)
	}
	policy, err := e.Policy()
	if err != nil {
		t.Fatalf("Policy() error = %v", err)
	}
	if len(policy) != 2 {
		t.Errorf("Policy() = %v, want 2 rules", policy)
	}
}

func TestNewEnforcerFromStrings_MalformedPolicy(t *testing.T) {
	if _, err := NewEnforcerFromStrings(embeddedModel, "p, admin"); err == nil {
		t.Error("expected error for malformed policy line")
	}
	if _, err := NewEnforcerFromStrings("not a model", embeddedPolicy); err == nil {
		t.Error("expected error for malformed model")
	}
}

func TestMethodToAction(t *testing.T) {
	tests := map[string]string{
		"GET":     "read",
		"HEAD":    "read",
		"OPTIONS": "read",
		"POST":    "write",
		"PUT":     "write",
		"PATCH":   "write",
		"DELETE":  "delete",
		"TRACE":   "read",
	}
	for method, want := range tests {
		if got := methodToAction(method); got != want {
			t.Errorf("methodToAction(%q) = %q, want %q", method, got, want)
		}
	}
}
