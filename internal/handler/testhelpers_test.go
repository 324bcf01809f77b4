// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/olegiv/contactdesk/internal/contacts"
	"github.com/olegiv/contactdesk/internal/model"
	"github.com/olegiv/contactdesk/internal/render"
	"github.com/olegiv/contactdesk/internal/testutil"
	"github.com/olegiv/contactdesk/web"
)

// fakeStore is an in-memory contacts.Store. A non-zero delay makes Remove
// and Update wait that long unless their context ends first.
type fakeStore struct {
	mu        sync.Mutex
	list      []model.Contact
	listErr   error
	opErr     error
	delay     time.Duration
	listCalls int
	updated   []model.Contact
	removed   []string
}

func (f *fakeStore) wait(ctx context.Context) error {
	if f.delay == 0 {
		return nil
	}
	select {
	case <-time.After(f.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeStore) ListAll(context.Context) ([]model.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]model.Contact, len(f.list))
	copy(out, f.list)
	return out, nil
}

func (f *fakeStore) Remove(ctx context.Context, id string) error {
	if err := f.wait(ctx); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.opErr != nil {
		return f.opErr
	}
	f.removed = append(f.removed, id)
	return nil
}

func (f *fakeStore) Update(ctx context.Context, c model.Contact) error {
	if err := f.wait(ctx); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.opErr != nil {
		return f.opErr
	}
	f.updated = append(f.updated, c)
	return nil
}

func sampleContacts() []model.Contact {
	return []model.Contact{
		{
			ID: "1", Name: "Ann Lee", Email: "ann@x.io", Phone: "555-1000",
			Subject: "Quote", Message: "Need a quote for a kitchen",
			CreatedAt: time.Date(2024, 3, 5, 14, 7, 0, 0, time.UTC),
		},
		{
			ID: "2", Name: "Bo Park", Email: "bo@y.io", Phone: "555-2000",
			Subject: "Visit", Message: "When can you visit?",
			CreatedAt: time.Date(2024, 3, 6, 9, 0, 0, 0, time.UTC),
		},
	}
}

// testSessionManager creates a session manager for testing.
func testSessionManager(t *testing.T) *scs.SessionManager {
	t.Helper()
	sm := scs.New()
	sm.Lifetime = 24 * time.Hour
	return sm
}

func testRenderer(t *testing.T, sm *scs.SessionManager) *render.Renderer {
	t.Helper()
	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		t.Fatalf("fs.Sub: %v", err)
	}
	r, err := render.New(render.Config{TemplatesFS: templatesFS, SessionManager: sm, Version: "test"})
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	return r
}

// testBrowser drives a router and carries the session cookie between requests.
type testBrowser struct {
	t       *testing.T
	handler http.Handler
	cookies map[string]*http.Cookie
}

func newTestBrowser(t *testing.T, store *fakeStore) *testBrowser {
	t.Helper()
	sm := testSessionManager(t)
	logger := testutil.TestLoggerSilent()
	registry := contacts.NewRegistry(func() *contacts.Screen {
		return contacts.NewScreen(store, logger)
	}, time.Hour)

	r := chi.NewRouter()
	r.Use(sm.LoadAndSave)
	NewContactsHandler(registry, testRenderer(t, sm), sm).Mount(r, nil)

	return &testBrowser{t: t, handler: r, cookies: make(map[string]*http.Cookie)}
}

func (b *testBrowser) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	b.t.Helper()
	return b.doContext(context.Background(), method, target, form)
}

// doContext sends a request carrying ctx, as a server would for a client
// that may disconnect.
func (b *testBrowser) doContext(ctx context.Context, method, target string, form url.Values) *httptest.ResponseRecorder {
	b.t.Helper()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequestWithContext(ctx, method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequestWithContext(ctx, method, target, nil)
	}
	for _, c := range b.cookies {
		req.AddCookie(c)
	}

	rr := httptest.NewRecorder()
	b.handler.ServeHTTP(rr, req)

	for _, c := range rr.Result().Cookies() {
		b.cookies[c.Name] = c
	}
	return rr
}

func (b *testBrowser) get(target string) *httptest.ResponseRecorder {
	return b.do(http.MethodGet, target, nil)
}

func (b *testBrowser) post(target string, form url.Values) *httptest.ResponseRecorder {
	if form == nil {
		form = url.Values{}
	}
	return b.do(http.MethodPost, target, form)
}

// assertStatus checks if the response status code matches the expected value.
func assertStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("status = %d; want %d", got, want)
	}
}

// assertRedirect checks a 303 redirect to want.
func assertRedirect(t *testing.T, rr *httptest.ResponseRecorder, want string) {
	t.Helper()
	assertStatus(t, rr.Code, http.StatusSeeOther)
	if got := rr.Header().Get("Location"); got != want {
		t.Errorf("Location = %q; want %q", got, want)
	}
}

// assertContains checks that body contains every fragment.
func assertContains(t *testing.T, body string, fragments ...string) {
	t.Helper()
	for _, f := range fragments {
		if !strings.Contains(body, f) {
			t.Errorf("body does not contain %q", f)
		}
	}
}

// assertNotContains checks that body contains none of the fragments.
func assertNotContains(t *testing.T, body string, fragments ...string) {
	t.Helper()
	for _, f := range fragments {
		if strings.Contains(body, f) {
			t.Errorf("body unexpectedly contains %q", f)
		}
	}
}
