// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package contacts

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// sweepInterval bounds how often Get scans for idle screens.
const sweepInterval = time.Minute

// Registry hands out one Screen per screen ID and forgets screens that have
// been idle longer than the TTL.
type Registry struct {
	mu        sync.Mutex
	screens   map[string]*registryEntry
	factory   func() *Screen
	ttl       time.Duration
	now       func() time.Time
	lastSweep time.Time
}

type registryEntry struct {
	screen   *Screen
	lastUsed time.Time
}

// NewRegistry creates a registry that builds new screens with factory.
// A ttl of zero keeps screens forever.
func NewRegistry(factory func() *Screen, ttl time.Duration) *Registry {
	return &Registry{
		screens: make(map[string]*registryEntry),
		factory: factory,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the screen registered under id. When id is empty or unknown
// (for example after eviction) a fresh screen is created under a new ID,
// which is returned alongside it.
func (r *Registry) Get(id string) (string, *Screen) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.sweepLocked(now)

	if e, ok := r.screens[id]; ok && id != "" {
		e.lastUsed = now
		return id, e.screen
	}

	newID := uuid.NewString()
	s := r.factory()
	r.screens[newID] = &registryEntry{screen: s, lastUsed: now}
	return newID, s
}

// Len returns the number of live screens.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.screens)
}

// Sweep evicts idle screens and returns how many were removed.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastSweep = time.Time{}
	return r.sweepLocked(r.now())
}

func (r *Registry) sweepLocked(now time.Time) int {
	if r.ttl <= 0 || now.Sub(r.lastSweep) < sweepInterval {
		return 0
	}
	r.lastSweep = now

	removed := 0
	for id, e := range r.screens {
		if now.Sub(e.lastUsed) > r.ttl {
			delete(r.screens, id)
			removed++
		}
	}
	return removed
}
