// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package contacts

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/olegiv/contactdesk/internal/model"
)

// Screen errors
var (
	ErrNotFound = errors.New("contact not found")
	ErrBusy     = errors.New("a request for this contact is already in flight")
	ErrNoDialog = errors.New("no matching dialog is open")
)

// Store is the remote collection the screen reads and mutates.
type Store interface {
	ListAll(ctx context.Context) ([]model.Contact, error)
	Remove(ctx context.Context, id string) error
	Update(ctx context.Context, contact model.Contact) error
}

// Screen owns the state of one contact manager screen. Transitions are
// serialised on mu; remote calls run without holding it.
type Screen struct {
	mu     sync.Mutex
	state  State
	store  Store
	logger *slog.Logger
}

// NewScreen creates an idle screen backed by store.
func NewScreen(store Store, logger *slog.Logger) *Screen {
	if logger == nil {
		logger = slog.Default()
	}
	return &Screen{store: store, logger: logger}
}

// Snapshot returns the current state. The returned value must be treated as read-only.
func (s *Screen) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Screen) dispatch(ev Event) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Reduce(s.state, ev)
	return s.state
}

// beginLoad starts a new load and returns its sequence number. With onlyIdle
// set it starts nothing (and returns 0) unless the screen has never loaded.
func (s *Screen) beginLoad(onlyIdle bool) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if onlyIdle && s.state.Phase != PhaseIdle {
		return 0
	}
	seq := s.state.LoadSeq + 1
	s.state = Reduce(s.state, LoadStarted{Seq: seq})
	return seq
}

// Load fetches the full list. A load started later supersedes this one:
// its result is then discarded. On failure the previous data is kept.
func (s *Screen) Load(ctx context.Context) error {
	return s.load(ctx, s.beginLoad(false))
}

// EnsureLoaded loads the list if the screen is still idle.
func (s *Screen) EnsureLoaded(ctx context.Context) error {
	seq := s.beginLoad(true)
	if seq == 0 {
		return nil
	}
	return s.load(ctx, seq)
}

func (s *Screen) load(ctx context.Context, seq uint64) error {
	list, err := s.store.ListAll(ctx)
	if err != nil {
		s.dispatch(LoadFailed{Seq: seq, Err: err})
		s.logger.WarnContext(ctx, "failed to load contacts", "error", err, "seq", seq)
		return err
	}
	st := s.dispatch(LoadSucceeded{Seq: seq, Contacts: list})
	s.logger.InfoContext(ctx, "contacts loaded", "count", len(list), "seq", seq, "applied", st.LoadSeq == seq)
	return nil
}

// Search filters the visible list by term without contacting the server.
func (s *Screen) Search(term string) State {
	return s.dispatch(Searched{Term: term})
}

// RequestView opens the details dialog for id.
func (s *Screen) RequestView(id string) (model.Contact, error) {
	return s.open(ViewRequested{ID: id}, id, DialogView)
}

// RequestEdit opens the edit dialog for id.
func (s *Screen) RequestEdit(id string) (model.Contact, error) {
	return s.open(EditRequested{ID: id}, id, DialogEdit)
}

// RequestDelete opens the delete confirmation for id.
func (s *Screen) RequestDelete(id string) (model.Contact, error) {
	return s.open(DeleteRequested{ID: id}, id, DialogConfirmDelete)
}

func (s *Screen) open(ev Event, id string, kind DialogKind) (model.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.state.Find(id)
	if !ok {
		return model.Contact{}, ErrNotFound
	}
	s.state = Reduce(s.state, ev)
	if s.state.Dialog.Kind != kind || s.state.Dialog.TargetID != id {
		return c, ErrBusy
	}
	return c, nil
}

// CloseDialog closes any open dialog.
func (s *Screen) CloseDialog() {
	s.dispatch(DialogClosed{})
}

// ConfirmDelete removes the contact named by the open delete confirmation.
// The dialog closes as soon as the request is dispatched.
func (s *Screen) ConfirmDelete(ctx context.Context) error {
	s.mu.Lock()
	d := s.state.Dialog
	if d.Kind != DialogConfirmDelete {
		s.mu.Unlock()
		return ErrNoDialog
	}
	id := d.TargetID
	if s.state.IsPending(id) {
		s.mu.Unlock()
		return ErrBusy
	}
	s.state = Reduce(s.state, MutationStarted{ID: id})
	s.mu.Unlock()

	if err := s.store.Remove(ctx, id); err != nil {
		s.dispatch(RemoveFailed{ID: id, Err: err})
		s.logger.WarnContext(ctx, "failed to delete contact", "error", err, "contact_id", id)
		return err
	}
	s.dispatch(Removed{ID: id})
	s.logger.InfoContext(ctx, "contact deleted", "contact_id", id)
	return nil
}

// SaveEdit sends patch for the contact named by the open edit dialog.
// ID and CreatedAt of the stored record are kept; the dialog closes as soon
// as the request is dispatched.
func (s *Screen) SaveEdit(ctx context.Context, patch model.ContactPatch) error {
	s.mu.Lock()
	d := s.state.Dialog
	if d.Kind != DialogEdit {
		s.mu.Unlock()
		return ErrNoDialog
	}
	id := d.TargetID
	current, ok := s.state.Find(id)
	if !ok {
		s.state = Reduce(s.state, DialogClosed{})
		s.mu.Unlock()
		return ErrNotFound
	}
	if s.state.IsPending(id) {
		s.mu.Unlock()
		return ErrBusy
	}
	s.state = Reduce(s.state, MutationStarted{ID: id})
	s.mu.Unlock()

	if err := s.store.Update(ctx, current.Apply(patch)); err != nil {
		s.dispatch(UpdateFailed{ID: id, Err: err})
		s.logger.WarnContext(ctx, "failed to update contact", "error", err, "contact_id", id)
		return err
	}
	s.dispatch(Updated{ID: id, Patch: patch})
	s.logger.InfoContext(ctx, "contact updated", "contact_id", id)
	return nil
}

// DismissNotice clears the current notice.
func (s *Screen) DismissNotice() {
	s.dispatch(NoticeDismissed{})
}

// PopNotice returns the current notice and clears it.
func (s *Screen) PopNotice() Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.state.Notice
	s.state = Reduce(s.state, NoticeDismissed{})
	return n
}
