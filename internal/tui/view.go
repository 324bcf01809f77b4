// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/olegiv/contactdesk/internal/contacts"
	"github.com/olegiv/contactdesk/internal/model"
)

const (
	previewRunes  = 60
	pendingMarker = "Saving..."
)

// columns sizes the table columns for a terminal of the given width.
func columns(width int) []table.Column {
	avail := max(width-12, 60)
	return []table.Column{
		{Title: "Name", Width: avail * 18 / 100},
		{Title: "Email", Width: avail * 22 / 100},
		{Title: "Phone", Width: avail * 14 / 100},
		{Title: "Subject", Width: avail * 22 / 100},
		{Title: "Date", Width: avail * 24 / 100},
	}
}

func rows(s contacts.State) []table.Row {
	out := make([]table.Row, 0, len(s.Filtered))
	for _, c := range s.Filtered {
		date := contacts.FormatDate(c.CreatedAt)
		if s.IsPending(c.ID) {
			date = pendingMarker
		}
		out = append(out, table.Row{
			c.Name,
			c.Email,
			c.Phone,
			oneLine(c.Subject),
			date,
		})
	}
	return out
}

// oneLine keeps s on a single table or card line.
func oneLine(s string) string {
	return lineBreaks.Replace(s)
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// View renders the screen.
func (m Model) View() string {
	if m.state.Dialog.Open() {
		return m.viewDialog()
	}

	var b strings.Builder
	b.WriteString(m.viewHeader())
	b.WriteString("\n\n")
	b.WriteString(m.viewSearch())
	b.WriteString("\n")
	if n := m.viewNotice(); n != "" {
		b.WriteString(n)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.viewBody())
	b.WriteString("\n\n")
	b.WriteString(m.viewHelp())
	return b.String()
}

func (m Model) viewHeader() string {
	st := contacts.StatsOf(m.state)
	return lipgloss.JoinHorizontal(lipgloss.Center,
		m.styles.Title.Render("Contact Submissions"),
		"  ",
		m.styles.Chip.Render(fmt.Sprintf("Total: %d", st.Total)),
		" ",
		m.styles.Chip.Render(fmt.Sprintf("Showing: %d", st.Showing)),
	)
}

func (m Model) viewSearch() string {
	return m.styles.Search.Render(m.search.View())
}

func (m Model) viewNotice() string {
	n := m.state.Notice
	if n.IsZero() {
		return ""
	}
	if n.Severity == contacts.SeverityError {
		return m.styles.Error.Render(n.Message)
	}
	return m.styles.Success.Render(n.Message)
}

func (m Model) viewBody() string {
	switch {
	case m.state.Phase == contacts.PhaseLoading && len(m.state.Contacts) == 0:
		return m.styles.Muted.Render(contacts.MsgLoadingPrompt)
	case len(m.state.Filtered) == 0:
		return m.styles.Title.Render(contacts.MsgNoContacts) + "\n" +
			m.styles.Muted.Render(contacts.EmptyHint(m.state.Term))
	case m.width >= WideLayout:
		return m.table.View()
	default:
		return m.viewCards()
	}
}

// viewCards renders the narrow layout: one bordered card per contact,
// windowed around the cursor.
func (m Model) viewCards() string {
	const perPage = 3
	start := max(m.cursor-perPage+1, 0)
	end := min(start+perPage, len(m.state.Filtered))

	cardWidth := max(m.width-4, 20)
	cards := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		c := m.state.Filtered[i]
		style := m.styles.Card
		if i == m.cursor {
			style = m.styles.CardSel
		}
		cards = append(cards, style.Width(cardWidth).Render(m.cardBody(c)))
	}
	footer := m.styles.Muted.Render(fmt.Sprintf("%d of %d", m.cursor+1, len(m.state.Filtered)))
	return lipgloss.JoinVertical(lipgloss.Left, append(cards, footer)...)
}

func (m Model) cardBody(c model.Contact) string {
	head := m.styles.Avatar.Render(contacts.Initials(c.Name)) + " " + lipgloss.NewStyle().Bold(true).Render(c.Name)
	date := contacts.FormatDate(c.CreatedAt)
	if m.state.IsPending(c.ID) {
		date = m.styles.Pending.Render(pendingMarker)
	}
	lines := []string{
		head,
		m.styles.Muted.Render(date),
		c.Email,
	}
	if c.Phone != "" {
		lines = append(lines, c.Phone)
	}
	if c.Subject != "" {
		lines = append(lines, oneLine(c.Subject))
	}
	lines = append(lines, m.styles.Muted.Render(contacts.Preview(c.Message, previewRunes)))
	return strings.Join(lines, "\n")
}

func (m Model) viewHelp() string {
	if m.searching {
		return m.styles.Muted.Render("type to filter • enter/esc: done")
	}
	return m.styles.Muted.Render("↑/↓: move • enter: view • e: edit • d: delete • /: search • r: refresh • q: quit")
}

func (m Model) viewDialog() string {
	d := m.state.Dialog
	c, ok := m.state.Find(d.TargetID)
	if !ok {
		return ""
	}

	var body string
	switch d.Kind {
	case contacts.DialogView:
		body = m.viewDetails(c)
	case contacts.DialogEdit:
		body = m.viewEdit()
	case contacts.DialogConfirmDelete:
		body = m.viewConfirm(c)
	}
	return m.styles.Dialog.Width(min(max(m.width-4, 30), 80)).Render(body)
}

func (m Model) viewDetails(c model.Contact) string {
	field := func(label, value string) string {
		return m.styles.Label.Render(label) + " " + value
	}
	lines := []string{
		m.styles.Title.Render("Contact Details"),
		"",
		field("Name", c.Name),
		field("Email", c.Email),
		field("Phone", c.Phone),
		field("Subject", c.Subject),
		field("Date", contacts.FormatDate(c.CreatedAt)),
		"",
		m.styles.Label.Render("Message"),
		c.Message,
		"",
		m.styles.Muted.Render("e: edit • d: delete • esc: close"),
	}
	return strings.Join(lines, "\n")
}

func (m Model) viewEdit() string {
	lines := []string{m.styles.Title.Render("Edit Contact"), ""}
	for i, in := range m.editInputs {
		label := fieldLabels[i]
		if i == m.editField {
			label = "> " + label
		}
		lines = append(lines, m.styles.Label.Render(label)+" "+in.View())
	}
	lines = append(lines, "", m.styles.Muted.Render("tab: next field • ctrl+s: save • esc: cancel"))
	return strings.Join(lines, "\n")
}

func (m Model) viewConfirm(c model.Contact) string {
	return strings.Join([]string{
		m.styles.Danger.Render("Delete Contact"),
		"",
		fmt.Sprintf("Are you sure you want to delete the contact from %s?", c.Name),
		m.styles.Muted.Render("This action cannot be undone."),
		"",
		m.styles.Muted.Render("y: delete • any other key: cancel"),
	}, "\n")
}
