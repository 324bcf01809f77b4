// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session configures the scs session manager used by the admin UI.
package session

import (
	"context"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
)

// Session keys.
const (
	KeyScreenID  = "screen_id"
	KeyFlash     = "flash"
	KeyFlashType = "flash_type"
)

// New creates a session manager backed by an in-memory store.
// Sessions only bind a browser to its contact screen, so nothing needs to survive a restart.
func New(lifetime time.Duration, isDev bool) *scs.SessionManager {
	sm := scs.New()
	sm.Store = memstore.NewWithCleanupInterval(time.Minute)

	sm.Lifetime = lifetime
	sm.IdleTimeout = lifetime
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"
	sm.Cookie.Secure = !isDev
	if !isDev {
		sm.Cookie.Name = "__Host-session"
	}

	return sm
}

// ScreenID returns the screen bound to the session, or "".
func ScreenID(ctx context.Context, sm *scs.SessionManager) string {
	return sm.GetString(ctx, KeyScreenID)
}

// BindScreen stores the screen ID in the session when it changed.
func BindScreen(ctx context.Context, sm *scs.SessionManager, id string) {
	if sm.GetString(ctx, KeyScreenID) != id {
		sm.Put(ctx, KeyScreenID, id)
	}
}
