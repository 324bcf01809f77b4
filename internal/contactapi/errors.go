// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package contactapi

import (
	"errors"
	"fmt"
)

// NetworkError reports any failed exchange with the API: transport errors,
// non-2xx statuses and undecodable bodies alike. Server error bodies are not parsed.
type NetworkError struct {
	Op         string // "list", "update" or "remove"
	Method     string
	URL        string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *NetworkError) Error() string {
	switch {
	case e.Err != nil && e.StatusCode != 0:
		return fmt.Sprintf("contact api %s: %s %s: status %d: %v", e.Op, e.Method, e.URL, e.StatusCode, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("contact api %s: %s %s: %v", e.Op, e.Method, e.URL, e.Err)
	default:
		return fmt.Sprintf("contact api %s: %s %s: unexpected status %d", e.Op, e.Method, e.URL, e.StatusCode)
	}
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsNetworkError reports whether err is or wraps a *NetworkError.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}
