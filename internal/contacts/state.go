// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package contacts holds the view state of the contact manager screen and the
// pure transitions that keep the full list and its filtered projection in step.
package contacts

import (
	"github.com/olegiv/contactdesk/internal/model"
)

// Phase is the load lifecycle of a screen.
type Phase int

// Load phases. Ready and LoadError go back to Loading on refresh.
const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseLoadError
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseLoadError:
		return "load_error"
	default:
		return "unknown"
	}
}

// DialogKind identifies the modal dialog currently open.
type DialogKind int

// Dialog kinds
const (
	DialogNone DialogKind = iota
	DialogView
	DialogEdit
	DialogConfirmDelete
)

func (k DialogKind) String() string {
	switch k {
	case DialogView:
		return "view"
	case DialogEdit:
		return "edit"
	case DialogConfirmDelete:
		return "confirm_delete"
	default:
		return "none"
	}
}

// Dialog is the transient dialog state. Draft is only meaningful for DialogEdit.
type Dialog struct {
	Kind     DialogKind
	TargetID string
	Draft    model.ContactPatch
}

// Open reports whether a dialog is showing.
func (d Dialog) Open() bool {
	return d.Kind != DialogNone
}

// Severity of a notice.
const (
	SeveritySuccess = "success"
	SeverityError   = "error"
)

// Notice messages shown after remote operations.
const (
	MsgLoaded        = "Contacts loaded successfully!"
	MsgLoadFailed    = "Failed to load contacts"
	MsgDeleted       = "Contact deleted successfully!"
	MsgDeleteFailed  = "Failed to delete contact"
	MsgUpdated       = "Contact updated successfully!"
	MsgUpdateFailed  = "Failed to update contact"
	MsgEmptySearch   = "Try adjusting your search criteria"
	MsgEmptyList     = "Contact submissions will appear here"
	MsgNoContacts    = "No contacts found"
	MsgLoadingPrompt = "Loading contacts..."
)

// Notice is a dismissible, user-visible message.
type Notice struct {
	Message  string
	Severity string
}

// IsZero reports whether there is no notice.
func (n Notice) IsZero() bool {
	return n.Message == ""
}

// State is the whole view state of one screen instance.
//
// Filtered is always a subsequence (by ID, same relative order) of Contacts.
// Slices are never modified in place: transitions build new ones, so a State
// value handed out by Snapshot stays valid.
type State struct {
	Phase    Phase
	Contacts []model.Contact
	Filtered []model.Contact
	Term     string
	LoadSeq  uint64

	Dialog Dialog
	Notice Notice

	// Pending holds IDs with an update or remove in flight.
	Pending map[string]bool
}

// Find returns the contact with id from the full list.
func (s State) Find(id string) (model.Contact, bool) {
	i := indexOf(s.Contacts, id)
	if i < 0 {
		return model.Contact{}, false
	}
	return s.Contacts[i], true
}

// IsPending reports whether a mutation for id is in flight.
func (s State) IsPending(id string) bool {
	return s.Pending[id]
}

// Stats are the header counters of the screen.
type Stats struct {
	Total   int
	Showing int
}

// StatsOf returns the Total/Showing counters for s.
func StatsOf(s State) Stats {
	return Stats{Total: len(s.Contacts), Showing: len(s.Filtered)}
}

// EmptyHint returns the secondary line of the empty state.
func EmptyHint(term string) string {
	if term != "" {
		return MsgEmptySearch
	}
	return MsgEmptyList
}

func indexOf(list []model.Contact, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}
