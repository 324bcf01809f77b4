// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package tui is the terminal front end of the contact manager. It renders a
// contacts.Screen with bubbletea and runs remote calls as commands.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/olegiv/contactdesk/internal/contacts"
	"github.com/olegiv/contactdesk/internal/model"
)

// NoticeTTL is how long a notice stays on screen.
const NoticeTTL = 4 * time.Second

// WideLayout is the minimum terminal width that renders the table layout.
const WideLayout = 100

// Edit form fields, in tab order.
const (
	fieldName = iota
	fieldEmail
	fieldPhone
	fieldSubject
	fieldMessage
	fieldCount
)

var fieldLabels = [fieldCount]string{"Name", "Email", "Phone", "Subject", "Message"}

// Result messages of remote commands.
type (
	loadedMsg        struct{ err error }
	mutatedMsg       struct{ err error }
	noticeExpiredMsg struct{ seq int }
)

// Model is the bubbletea model of the contact manager.
type Model struct {
	ctx    context.Context
	screen *contacts.Screen
	state  contacts.State

	width  int
	height int
	cursor int

	table     table.Model
	search    textinput.Model
	searching bool

	editInputs []textinput.Model
	editField  int

	noticeSeq int
	styles    Styles
}

// New creates a model over screen. ctx bounds every remote call.
func New(ctx context.Context, screen *contacts.Screen) Model {
	t := table.New(
		table.WithColumns(columns(WideLayout)),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	si := textinput.New()
	si.Placeholder = "Search by name, email or phone..."
	si.Prompt = "/ "
	si.CharLimit = 100
	si.Width = 40

	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Prompt = ""
		inputs[i].CharLimit = 500
		inputs[i].Width = 50
	}
	inputs[fieldMessage].CharLimit = 5000

	m := Model{
		ctx:        ctx,
		screen:     screen,
		width:      WideLayout,
		height:     30,
		table:      t,
		search:     si,
		editInputs: inputs,
		styles:     DefaultStyles(),
	}
	m.sync()
	return m
}

// Init starts the first load.
func (m Model) Init() tea.Cmd {
	return m.loadCmd(false)
}

func (m Model) loadCmd(force bool) tea.Cmd {
	screen, ctx := m.screen, m.ctx
	return func() tea.Msg {
		if force {
			return loadedMsg{err: screen.Load(ctx)}
		}
		return loadedMsg{err: screen.EnsureLoaded(ctx)}
	}
}

func (m Model) deleteCmd() tea.Cmd {
	screen, ctx := m.screen, m.ctx
	return func() tea.Msg {
		return mutatedMsg{err: screen.ConfirmDelete(ctx)}
	}
}

func (m Model) saveCmd(p model.ContactPatch) tea.Cmd {
	screen, ctx := m.screen, m.ctx
	return func() tea.Msg {
		return mutatedMsg{err: screen.SaveEdit(ctx, p)}
	}
}

// expireNotice schedules removal of the current notice.
func (m *Model) expireNotice() tea.Cmd {
	if m.state.Notice.IsZero() {
		return nil
	}
	m.noticeSeq++
	seq := m.noticeSeq
	return tea.Tick(NoticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetColumns(columns(m.width))
		m.table.SetHeight(max(m.height-10, 3))
		m.search.Width = max(m.width/3, 20)
		return m, nil

	case loadedMsg:
		m.sync()
		// A finished load clears the term, even while the search box has focus.
		if m.search.Value() != m.state.Term {
			m.search.SetValue(m.state.Term)
		}
		return m, m.expireNotice()

	case mutatedMsg:
		m.sync()
		return m, m.expireNotice()

	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.screen.DismissNotice()
			m.sync()
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.state.Dialog.Kind {
		case contacts.DialogView:
			return m.updateView(msg)
		case contacts.DialogEdit:
			return m.updateEdit(msg)
		case contacts.DialogConfirmDelete:
			return m.updateConfirm(msg)
		}
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/":
		m.searching = true
		m.search.Focus()
		return m, textinput.Blink
	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "home", "g":
		m.setCursor(0)
	case "end", "G":
		m.setCursor(len(m.state.Filtered) - 1)
	case "r":
		if m.state.Phase != contacts.PhaseLoading {
			m.state.Phase = contacts.PhaseLoading
			return m, m.loadCmd(true)
		}
	case "enter":
		if c, ok := m.selected(); ok {
			_, _ = m.screen.RequestView(c.ID)
			m.sync()
		}
	case "e":
		return m.openEdit()
	case "d":
		if c, ok := m.selected(); ok {
			_, _ = m.screen.RequestDelete(c.ID)
			m.sync()
		}
	case "esc":
		if !m.state.Notice.IsZero() {
			m.screen.DismissNotice()
			m.sync()
		}
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "up", "down":
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.state.Term {
		m.screen.Search(m.search.Value())
		m.sync()
	}
	return m, cmd
}

func (m Model) updateView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "e":
		return m.openEdit()
	case "d":
		_, _ = m.screen.RequestDelete(m.state.Dialog.TargetID)
		m.sync()
	case "esc", "enter", "q":
		m.screen.CloseDialog()
		m.sync()
	}
	return m, nil
}

func (m Model) openEdit() (tea.Model, tea.Cmd) {
	id := m.state.Dialog.TargetID
	if m.state.Dialog.Kind != contacts.DialogView {
		c, ok := m.selected()
		if !ok {
			return m, nil
		}
		id = c.ID
	}
	if _, err := m.screen.RequestEdit(id); err != nil {
		m.sync()
		return m, nil
	}
	m.sync()

	d := m.state.Dialog.Draft
	values := [fieldCount]string{d.Name, d.Email, d.Phone, d.Subject, d.Message}
	for i := range m.editInputs {
		m.editInputs[i].SetValue(values[i])
		m.editInputs[i].CursorEnd()
		m.editInputs[i].Blur()
	}
	m.editField = fieldName
	m.editInputs[fieldName].Focus()
	return m, textinput.Blink
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.blurEdit()
		m.screen.CloseDialog()
		m.sync()
		return m, nil
	case "ctrl+s":
		p := m.editPatch()
		m.blurEdit()
		m.state.Dialog = contacts.Dialog{}
		return m, m.saveCmd(p)
	case "tab", "down":
		m.focusField((m.editField + 1) % fieldCount)
		return m, textinput.Blink
	case "shift+tab", "up":
		m.focusField((m.editField + fieldCount - 1) % fieldCount)
		return m, textinput.Blink
	}

	var cmd tea.Cmd
	m.editInputs[m.editField], cmd = m.editInputs[m.editField].Update(msg)
	return m, cmd
}

// updateConfirm handles the delete confirmation: y deletes, any other key cancels.
func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.state.Dialog = contacts.Dialog{}
		return m, m.deleteCmd()
	default:
		m.screen.CloseDialog()
		m.sync()
		return m, nil
	}
}

func (m *Model) focusField(i int) {
	m.editInputs[m.editField].Blur()
	m.editField = i
	m.editInputs[i].Focus()
}

func (m *Model) blurEdit() {
	for i := range m.editInputs {
		m.editInputs[i].Blur()
	}
}

func (m Model) editPatch() model.ContactPatch {
	return model.ContactPatch{
		Name:    m.editInputs[fieldName].Value(),
		Email:   m.editInputs[fieldEmail].Value(),
		Phone:   m.editInputs[fieldPhone].Value(),
		Subject: m.editInputs[fieldSubject].Value(),
		Message: m.editInputs[fieldMessage].Value(),
	}
}

// sync refreshes the cached snapshot and the table rows.
func (m *Model) sync() {
	m.state = m.screen.Snapshot()
	if !m.searching && m.search.Value() != m.state.Term {
		m.search.SetValue(m.state.Term)
	}
	m.table.SetRows(rows(m.state))
	m.setCursor(m.cursor)
}

func (m *Model) moveCursor(delta int) {
	m.setCursor(m.cursor + delta)
}

func (m *Model) setCursor(i int) {
	n := len(m.state.Filtered)
	switch {
	case n == 0:
		i = 0
	case i >= n:
		i = n - 1
	case i < 0:
		i = 0
	}
	m.cursor = i
	m.table.SetCursor(i)
}

func (m Model) selected() (model.Contact, bool) {
	if m.cursor < 0 || m.cursor >= len(m.state.Filtered) {
		return model.Contact{}, false
	}
	return m.state.Filtered[m.cursor], true
}

// State returns the snapshot the model last rendered.
func (m Model) State() contacts.State {
	return m.state
}
