// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package contactapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/contactdesk/internal/model"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL+"/api", WithHTTPClient(srv.Client()), WithUserAgent("contactdesk/test"))
	require.NoError(t, err)
	return c
}

func TestNew_RejectsBadBaseURL(t *testing.T) {
	for _, raw := range []string{"", "ftp://host/api", "/api", "http://"} {
		_, err := New(raw)
		assert.Error(t, err, "base URL %q", raw)
	}
}

func TestListAll(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/all", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "contactdesk/test", r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[
			{"_id":"1","name":"Ann Lee","email":"ann@x.com","phone":"555-1111","createdAt":"2024-01-01T10:00:00Z"},
			{"_id":"2","name":"Bo Park","email":"bo@x.com","phone":"555-2222"}
		]`)
	})

	contacts, err := c.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, contacts, 2)
	assert.Equal(t, "1", contacts[0].ID)
	assert.Equal(t, "Bo Park", contacts[1].Name)
	assert.True(t, contacts[0].CreatedAt.Equal(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)))
}

func TestListAll_NullBodyIsEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "null")
	})

	contacts, err := c.ListAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, contacts)
	assert.Empty(t, contacts)
}

func TestListAll_Non2xxIsNetworkError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"boom"}`, http.StatusInternalServerError)
	})

	_, err := c.ListAll(context.Background())
	require.Error(t, err)

	var ne *NetworkError
	require.True(t, errors.As(err, &ne))
	assert.Equal(t, "list", ne.Op)
	assert.Equal(t, http.StatusInternalServerError, ne.StatusCode)
	assert.True(t, IsNetworkError(err))
}

func TestListAll_BadJSONIsNetworkError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "<html>not json</html>")
	})

	_, err := c.ListAll(context.Background())
	require.Error(t, err)
	assert.True(t, IsNetworkError(err))
}

func TestListAll_TransportErrorIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL + "/api"
	srv.Close()

	c, err := New(base)
	require.NoError(t, err)

	_, err = c.ListAll(context.Background())
	require.Error(t, err)

	var ne *NetworkError
	require.True(t, errors.As(err, &ne))
	assert.Zero(t, ne.StatusCode)
	assert.NotNil(t, ne.Unwrap())
}

func TestRemove(t *testing.T) {
	var gotPath, gotMethod string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotMethod = r.Method
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, c.Remove(context.Background(), "65f1a2"))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/api/65f1a2", gotPath)
}

func TestRemove_EscapesID(t *testing.T) {
	var gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
	})

	require.NoError(t, c.Remove(context.Background(), "a/b c"))
	assert.Equal(t, "/api/a%2Fb%20c", gotPath)
}

func TestRemove_NotFoundIsNetworkError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	err := c.Remove(context.Background(), "gone")
	var ne *NetworkError
	require.True(t, errors.As(err, &ne))
	assert.Equal(t, "remove", ne.Op)
	assert.Equal(t, http.StatusNotFound, ne.StatusCode)
}

func TestUpdate_SendsFullRecord(t *testing.T) {
	var body map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/2", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusOK)
	})

	created := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)
	contact := model.Contact{
		ID: "2", Name: "Bo Park", Email: "bo@x.com", Phone: "555-9999",
		Subject: "Quote", Message: "hi", CreatedAt: created,
	}

	require.NoError(t, c.Update(context.Background(), contact))
	assert.Equal(t, "2", body["_id"])
	assert.Equal(t, "555-9999", body["phone"])
	assert.Equal(t, "2024-02-03T04:05:06Z", body["createdAt"])
}

func TestUpdate_ContextCancelled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Update(ctx, model.Contact{ID: "1"})
	require.Error(t, err)
	assert.True(t, IsNetworkError(err))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNetworkErrorMessage(t *testing.T) {
	err := &NetworkError{Op: "remove", Method: http.MethodDelete, URL: "http://h/api/1", StatusCode: 502}
	assert.Equal(t, "contact api remove: DELETE http://h/api/1: unexpected status 502", err.Error())
}
