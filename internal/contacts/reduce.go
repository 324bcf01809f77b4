// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package contacts

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/olegiv/contactdesk/internal/model"
)

// Event is an input to Reduce.
type Event interface {
	isEvent()
}

// LoadStarted marks the start of load number Seq. A newer Seq supersedes older ones.
type LoadStarted struct{ Seq uint64 }

// LoadSucceeded carries the list fetched by load number Seq.
type LoadSucceeded struct {
	Seq      uint64
	Contacts []model.Contact
}

// LoadFailed reports that load number Seq failed.
type LoadFailed struct {
	Seq uint64
	Err error
}

// Searched re-derives the filtered view for Term.
type Searched struct{ Term string }

// ViewRequested opens the details dialog for ID.
type ViewRequested struct{ ID string }

// EditRequested opens the edit dialog for ID with a draft of its current fields.
type EditRequested struct{ ID string }

// DeleteRequested opens the delete confirmation for ID.
type DeleteRequested struct{ ID string }

// DialogClosed closes whatever dialog is open.
type DialogClosed struct{}

// MutationStarted closes the dialog and marks ID as having a request in flight.
type MutationStarted struct{ ID string }

// Updated applies a successful update of ID.
type Updated struct {
	ID    string
	Patch model.ContactPatch
}

// UpdateFailed reports a failed update of ID.
type UpdateFailed struct {
	ID  string
	Err error
}

// Removed applies a successful removal of ID.
type Removed struct{ ID string }

// RemoveFailed reports a failed removal of ID.
type RemoveFailed struct {
	ID  string
	Err error
}

// NoticeDismissed clears the current notice.
type NoticeDismissed struct{}

func (LoadStarted) isEvent()     {}
func (LoadSucceeded) isEvent()   {}
func (LoadFailed) isEvent()      {}
func (Searched) isEvent()        {}
func (ViewRequested) isEvent()   {}
func (EditRequested) isEvent()   {}
func (DeleteRequested) isEvent() {}
func (DialogClosed) isEvent()    {}
func (MutationStarted) isEvent() {}
func (Updated) isEvent()         {}
func (UpdateFailed) isEvent()    {}
func (Removed) isEvent()         {}
func (RemoveFailed) isEvent()    {}
func (NoticeDismissed) isEvent() {}

// Reduce returns the state that follows s after ev. It does not modify s.
func Reduce(s State, ev Event) State {
	switch e := ev.(type) {
	case LoadStarted:
		s.Phase = PhaseLoading
		s.LoadSeq = e.Seq

	case LoadSucceeded:
		if s.Phase != PhaseLoading || e.Seq != s.LoadSeq {
			return s
		}
		list := dedupe(e.Contacts)
		s.Contacts = list
		s.Filtered = list
		s.Term = ""
		s.Phase = PhaseReady
		s.Notice = Notice{Message: MsgLoaded, Severity: SeveritySuccess}
		if s.Dialog.Open() && indexOf(list, s.Dialog.TargetID) < 0 {
			s.Dialog = Dialog{}
		}

	case LoadFailed:
		if s.Phase != PhaseLoading || e.Seq != s.LoadSeq {
			return s
		}
		s.Phase = PhaseLoadError
		s.Notice = Notice{Message: MsgLoadFailed, Severity: SeverityError}

	case Searched:
		s.Term = e.Term
		s.Filtered = Filter(s.Contacts, e.Term)

	case ViewRequested:
		if _, ok := s.Find(e.ID); ok {
			s.Dialog = Dialog{Kind: DialogView, TargetID: e.ID}
		}

	case EditRequested:
		if c, ok := s.Find(e.ID); ok && !s.IsPending(e.ID) {
			s.Dialog = Dialog{Kind: DialogEdit, TargetID: e.ID, Draft: model.PatchOf(c)}
		}

	case DeleteRequested:
		if _, ok := s.Find(e.ID); ok && !s.IsPending(e.ID) {
			s.Dialog = Dialog{Kind: DialogConfirmDelete, TargetID: e.ID}
		}

	case DialogClosed:
		s.Dialog = Dialog{}

	case MutationStarted:
		s.Dialog = Dialog{}
		s.Pending = withPending(s.Pending, e.ID, true)

	case Updated:
		s.Contacts = replaceByID(s.Contacts, e.ID, e.Patch)
		s.Filtered = replaceByID(s.Filtered, e.ID, e.Patch)
		s.Pending = withPending(s.Pending, e.ID, false)
		s.Notice = Notice{Message: MsgUpdated, Severity: SeveritySuccess}

	case UpdateFailed:
		s.Pending = withPending(s.Pending, e.ID, false)
		s.Notice = Notice{Message: MsgUpdateFailed, Severity: SeverityError}

	case Removed:
		s.Contacts = removeByID(s.Contacts, e.ID)
		s.Filtered = removeByID(s.Filtered, e.ID)
		s.Pending = withPending(s.Pending, e.ID, false)
		s.Notice = Notice{Message: MsgDeleted, Severity: SeveritySuccess}
		if s.Dialog.TargetID == e.ID {
			s.Dialog = Dialog{}
		}

	case RemoveFailed:
		s.Pending = withPending(s.Pending, e.ID, false)
		s.Notice = Notice{Message: MsgDeleteFailed, Severity: SeverityError}

	case NoticeDismissed:
		s.Notice = Notice{}
	}
	return s
}

// Filter returns the contacts whose name, email or phone contains term,
// compared under Unicode case folding. The empty term returns list itself.
func Filter(list []model.Contact, term string) []model.Contact {
	if term == "" {
		return list
	}

	// Casers are stateful, so each call gets its own.
	fold := cases.Fold()
	needle := fold.String(term)

	out := make([]model.Contact, 0, len(list))
	for _, c := range list {
		if matches(fold, c, needle) {
			out = append(out, c)
		}
	}
	return out
}

// Matches reports whether c satisfies the search predicate for term.
func Matches(c model.Contact, term string) bool {
	if term == "" {
		return true
	}
	fold := cases.Fold()
	return matches(fold, c, fold.String(term))
}

func matches(fold cases.Caser, c model.Contact, needle string) bool {
	for _, field := range [...]string{c.Name, c.Email, c.Phone} {
		if strings.Contains(fold.String(field), needle) {
			return true
		}
	}
	return false
}

// dedupe drops later entries that repeat an ID, keeping server order.
func dedupe(list []model.Contact) []model.Contact {
	seen := make(map[string]bool, len(list))
	out := make([]model.Contact, 0, len(list))
	for _, c := range list {
		if seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		out = append(out, c)
	}
	return out
}

func replaceByID(list []model.Contact, id string, p model.ContactPatch) []model.Contact {
	i := indexOf(list, id)
	if i < 0 {
		return list
	}
	out := make([]model.Contact, len(list))
	copy(out, list)
	out[i] = out[i].Apply(p)
	return out
}

func removeByID(list []model.Contact, id string) []model.Contact {
	i := indexOf(list, id)
	if i < 0 {
		return list
	}
	out := make([]model.Contact, 0, len(list)-1)
	out = append(out, list[:i]...)
	return append(out, list[i+1:]...)
}

func withPending(pending map[string]bool, id string, on bool) map[string]bool {
	if !on && !pending[id] {
		return pending
	}
	out := make(map[string]bool, len(pending)+1)
	for k, v := range pending {
		out[k] = v
	}
	if on {
		out[id] = true
	} else {
		delete(out, id)
	}
	return out
}
