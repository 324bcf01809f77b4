// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/olegiv/contactdesk/internal/contacts"
	"github.com/olegiv/contactdesk/internal/model"
	"github.com/olegiv/contactdesk/internal/render"
	"github.com/olegiv/contactdesk/internal/session"
)

// ContactsHandler serves the contact manager screen. Each browser session is
// bound to one contacts.Screen held in the registry.
type ContactsHandler struct {
	registry *contacts.Registry
	renderer *render.Renderer
	sm       *scs.SessionManager
}

// NewContactsHandler creates a new ContactsHandler.
func NewContactsHandler(registry *contacts.Registry, renderer *render.Renderer, sm *scs.SessionManager) *ContactsHandler {
	return &ContactsHandler{
		registry: registry,
		renderer: renderer,
		sm:       sm,
	}
}

// Mount registers the contact routes on r. mutate wraps the state-changing
// POST routes (rate limiting); nil leaves them unwrapped.
func (h *ContactsHandler) Mount(r chi.Router, mutate func(http.Handler) http.Handler) {
	r.Get(RouteContactsJSON, h.JSON)
	r.Route(RouteContacts, func(r chi.Router) {
		r.Get(RouteRoot, h.List)
		r.Get(RouteParamID, h.View)
		r.Get(RouteParamID+RouteSuffixEdit, h.EditForm)
		r.Get(RouteParamID+RouteSuffixDelete, h.DeleteForm)

		r.Group(func(r chi.Router) {
			if mutate != nil {
				r.Use(mutate)
			}
			r.Post(RouteSuffixRefresh, h.Refresh)
			r.Post(RouteSuffixDialogClose, h.CloseDialog)
			r.Post(RouteParamID, h.Update)
			r.Post(RouteParamID+RouteSuffixDelete, h.Delete)
		})
	})
}

// ContactsPage is the template data of the contact manager page.
type ContactsPage struct {
	Term       string
	Stats      contacts.Stats
	Phase      string
	Loading    bool
	LoadFailed bool
	Rows       []ContactRow
	EmptyTitle string
	EmptyHint  string
	Dialog     *DialogView
}

// ContactRow is one contact in the table or card list.
type ContactRow struct {
	model.Contact
	Pending bool
}

// DialogView describes the open dialog.
type DialogView struct {
	Kind    string
	Contact model.Contact
	Draft   model.ContactPatch
}

// ContactsJSON is the body of GET /admin/contacts.json.
type ContactsJSON struct {
	Phase    string          `json:"phase"`
	Term     string          `json:"term"`
	Total    int             `json:"total"`
	Showing  int             `json:"showing"`
	Contacts []model.Contact `json:"contacts"`
}

// screen returns the screen bound to the request's session, creating and
// binding a new one when needed.
func (h *ContactsHandler) screen(r *http.Request) *contacts.Screen {
	id, s := h.registry.Get(session.ScreenID(r.Context(), h.sm))
	session.BindScreen(r.Context(), h.sm, id)
	return s
}

// remoteCtx detaches a contact API call from the request so that a client
// disconnect or the request timeout cannot leave the screen's store and the
// remote side out of step. The API client's HTTP timeout still bounds it.
func remoteCtx(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

// prepare loads the screen on first use and applies the q parameter. A
// request without q keeps the current term.
func (h *ContactsHandler) prepare(r *http.Request) (*contacts.Screen, contacts.State) {
	s := h.screen(r)
	// A failed load is reflected in the state and its notice.
	_ = s.EnsureLoaded(remoteCtx(r))

	st := s.Snapshot()
	query := r.URL.Query()
	if q := query.Get("q"); query.Has("q") && q != st.Term {
		st = s.Search(q)
	}
	return s, st
}

// List handles GET /admin/contacts.
func (h *ContactsHandler) List(w http.ResponseWriter, r *http.Request) {
	s, st := h.prepare(r)
	h.renderPage(w, r, s, st)
}

// JSON handles GET /admin/contacts.json.
func (h *ContactsHandler) JSON(w http.ResponseWriter, r *http.Request) {
	_, st := h.prepare(r)

	list := st.Filtered
	if list == nil {
		list = []model.Contact{}
	}
	stats := contacts.StatsOf(st)
	writeJSON(w, http.StatusOK, ContactsJSON{
		Phase:    st.Phase.String(),
		Term:     st.Term,
		Total:    stats.Total,
		Showing:  stats.Showing,
		Contacts: list,
	})
}

// View handles GET /admin/contacts/{id}.
func (h *ContactsHandler) View(w http.ResponseWriter, r *http.Request) {
	h.openDialog(w, r, (*contacts.Screen).RequestView)
}

// EditForm handles GET /admin/contacts/{id}/edit.
func (h *ContactsHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	h.openDialog(w, r, (*contacts.Screen).RequestEdit)
}

// DeleteForm handles GET /admin/contacts/{id}/delete.
func (h *ContactsHandler) DeleteForm(w http.ResponseWriter, r *http.Request) {
	h.openDialog(w, r, (*contacts.Screen).RequestDelete)
}

func (h *ContactsHandler) openDialog(w http.ResponseWriter, r *http.Request, open func(*contacts.Screen, string) (model.Contact, error)) {
	s, _ := h.prepare(r)
	id := chi.URLParam(r, "id")

	if _, err := open(s, id); err != nil {
		h.redirectWithError(w, r, s, err)
		return
	}
	h.renderPage(w, r, s, s.Snapshot())
}

// CloseDialog handles POST /admin/contacts/dialog/close.
func (h *ContactsHandler) CloseDialog(w http.ResponseWriter, r *http.Request) {
	s := h.screen(r)
	s.CloseDialog()
	http.Redirect(w, r, listURL(s.Snapshot().Term), http.StatusSeeOther)
}

// Refresh handles POST /admin/contacts/refresh.
func (h *ContactsHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	s := h.screen(r)
	_ = s.Load(remoteCtx(r))
	flashNotice(w, r, h.renderer, listURL(s.Snapshot().Term), s.PopNotice())
}

// Update handles POST /admin/contacts/{id}.
func (h *ContactsHandler) Update(w http.ResponseWriter, r *http.Request) {
	s := h.screen(r)
	id := chi.URLParam(r, "id")
	back := listURL(s.Snapshot().Term)

	if !parseFormOrRedirect(w, r, h.renderer, back) {
		return
	}

	// The form may come from a page whose dialog has since been replaced.
	if d := s.Snapshot().Dialog; d.Kind != contacts.DialogEdit || d.TargetID != id {
		if _, err := s.RequestEdit(id); err != nil {
			h.redirectWithError(w, r, s, err)
			return
		}
	}

	err := s.SaveEdit(remoteCtx(r), patchFromForm(r))
	if errors.Is(err, contacts.ErrBusy) || errors.Is(err, contacts.ErrNotFound) || errors.Is(err, contacts.ErrNoDialog) {
		h.redirectWithError(w, r, s, err)
		return
	}
	flashNotice(w, r, h.renderer, listURL(s.Snapshot().Term), s.PopNotice())
}

// Delete handles POST /admin/contacts/{id}/delete.
func (h *ContactsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	s := h.screen(r)
	id := chi.URLParam(r, "id")

	if d := s.Snapshot().Dialog; d.Kind != contacts.DialogConfirmDelete || d.TargetID != id {
		if _, err := s.RequestDelete(id); err != nil {
			h.redirectWithError(w, r, s, err)
			return
		}
	}

	err := s.ConfirmDelete(remoteCtx(r))
	if errors.Is(err, contacts.ErrBusy) || errors.Is(err, contacts.ErrNoDialog) {
		h.redirectWithError(w, r, s, err)
		return
	}
	flashNotice(w, r, h.renderer, listURL(s.Snapshot().Term), s.PopNotice())
}

// redirectWithError flashes the message for a screen error and goes back to
// the list. The error replaces any notice still pending on the screen.
func (h *ContactsHandler) redirectWithError(w http.ResponseWriter, r *http.Request, s *contacts.Screen, err error) {
	msg := msgNotFound
	if errors.Is(err, contacts.ErrBusy) {
		msg = msgBusy
	}
	s.DismissNotice()
	slog.DebugContext(r.Context(), "contact request rejected", "error", err, "path", r.URL.Path)
	flashError(w, r, h.renderer, listURL(s.Snapshot().Term), msg)
}

func (h *ContactsHandler) renderPage(w http.ResponseWriter, r *http.Request, s *contacts.Screen, st contacts.State) {
	data := render.TemplateData{
		Title: "Contact Manager",
		Data:  buildPage(st),
	}
	// Notices raised while serving this request (the first load) show immediately.
	if n := s.PopNotice(); !n.IsZero() {
		data.Flash = n.Message
		data.FlashType = flashType(n.Severity)
	}

	if err := h.renderer.Render(w, r, templateContacts, data); err != nil {
		logAndInternalError(w, r, "failed to render contacts page", "error", err)
	}
}

func buildPage(st contacts.State) ContactsPage {
	page := ContactsPage{
		Term:       st.Term,
		Stats:      contacts.StatsOf(st),
		Phase:      st.Phase.String(),
		Loading:    st.Phase == contacts.PhaseLoading,
		LoadFailed: st.Phase == contacts.PhaseLoadError,
		Rows:       make([]ContactRow, 0, len(st.Filtered)),
		EmptyTitle: contacts.MsgNoContacts,
		EmptyHint:  contacts.EmptyHint(st.Term),
	}
	for _, c := range st.Filtered {
		page.Rows = append(page.Rows, ContactRow{Contact: c, Pending: st.IsPending(c.ID)})
	}

	if d := st.Dialog; d.Open() {
		if c, ok := st.Find(d.TargetID); ok {
			page.Dialog = &DialogView{Kind: d.Kind.String(), Contact: c, Draft: d.Draft}
		}
	}
	return page
}

func patchFromForm(r *http.Request) model.ContactPatch {
	return model.ContactPatch{
		Name:    r.PostFormValue(formName),
		Email:   r.PostFormValue(formEmail),
		Phone:   r.PostFormValue(formPhone),
		Subject: r.PostFormValue(formSubject),
		Message: r.PostFormValue(formMessage),
	}
}

// listURL returns the list page URL keeping the search term.
func listURL(term string) string {
	if term == "" {
		return RouteContacts
	}
	return RouteContacts + "?q=" + url.QueryEscape(term)
}
