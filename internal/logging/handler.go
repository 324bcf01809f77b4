// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging provides the slog setup used by contactdesk.
// RequestHandler wraps another handler and tags records with the chi request ID
// and an operation category so admin actions can be traced across log lines.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Log categories attached to records that do not carry one explicitly.
const (
	CategoryLoad   = "load"
	CategoryUpdate = "update"
	CategoryDelete = "delete"
	CategoryHTTP   = "http"
	CategorySystem = "system"
)

// RequestHandler is a slog.Handler that adds request_id and category attributes.
type RequestHandler struct {
	inner slog.Handler
}

// NewRequestHandler wraps inner.
func NewRequestHandler(inner slog.Handler) *RequestHandler {
	return &RequestHandler{inner: inner}
}

// Enabled implements slog.Handler.
func (h *RequestHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *RequestHandler) Handle(ctx context.Context, r slog.Record) error {
	extra := make([]slog.Attr, 0, 2)
	if ctx != nil {
		if id := chimw.GetReqID(ctx); id != "" {
			extra = append(extra, slog.String("request_id", id))
		}
	}
	if !hasAttr(r, "category") {
		extra = append(extra, slog.String("category", inferCategory(r.Message)))
	}
	if len(extra) > 0 {
		r = r.Clone()
		r.AddAttrs(extra...)
	}
	return h.inner.Handle(ctx, r)
}

// WithAttrs implements slog.Handler.
func (h *RequestHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &RequestHandler{inner: h.inner.WithAttrs(attrs)}
}

// WithGroup implements slog.Handler.
func (h *RequestHandler) WithGroup(name string) slog.Handler {
	return &RequestHandler{inner: h.inner.WithGroup(name)}
}

func hasAttr(r slog.Record, key string) bool {
	found := false
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == key {
			found = true
			return false
		}
		return true
	})
	return found
}

// inferCategory guesses a category from the log message.
func inferCategory(msg string) string {
	msg = strings.ToLower(msg)
	switch {
	case strings.Contains(msg, "delete") || strings.Contains(msg, "remove"):
		return CategoryDelete
	case strings.Contains(msg, "update") || strings.Contains(msg, "save"):
		return CategoryUpdate
	case strings.Contains(msg, "load") || strings.Contains(msg, "fetch"):
		return CategoryLoad
	case strings.Contains(msg, "request") || strings.Contains(msg, "http"):
		return CategoryHTTP
	default:
		return CategorySystem
	}
}

// ParseLevel maps a configured level name to a slog.Level. Unknown names mean info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New builds the application logger: a text handler on w wrapped in a RequestHandler.
func New(w io.Writer, level string) *slog.Logger {
	text := slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)})
	return slog.New(NewRequestHandler(text))
}
