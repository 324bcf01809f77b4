// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/olegiv/contactdesk/internal/contacts"
)

// Run shows screen in the terminal until the user quits or ctx is cancelled.
func Run(ctx context.Context, screen *contacts.Screen) error {
	p := tea.NewProgram(New(ctx, screen), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running terminal ui: %w", err)
	}
	return nil
}
