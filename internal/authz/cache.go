// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

package authz

import "sync"

// maxCachedDecisions bounds the cache; paths include ids, so the key space is open.
const maxCachedDecisions = 4096

// decisionCache memoizes enforcement results. The policy is immutable for
// the process lifetime, so entries never expire; the map is reset when full.
type decisionCache struct {
	mu    sync.RWMutex
	items map[string]bool
}

func newDecisionCache() *decisionCache {
	return &decisionCache{items: make(map[string]bool)}
}

func (c *decisionCache) key(role, object, action string) string {
	return role + "\x00" + object + "\x00" + action
}

func (c *decisionCache) get(role, object, action string) (allowed, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	allowed, ok = c.items[c.key(role, object, action)]
	return allowed, ok
}

func (c *decisionCache) set(role, object, action string, allowed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.items) >= maxCachedDecisions {
		c.items = make(map[string]bool)
	}
	c.items[c.key(role, object, action)] = allowed
}

func (c *decisionCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
