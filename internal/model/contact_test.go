// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestContactUnmarshalKeepsExtraFields(t *testing.T) {
	data := `{"_id":"65f1","name":"Ann Lee","email":"ann@x.com","phone":"555-1111",
		"subject":"Quote","message":"Hello","createdAt":"2024-03-05T14:07:00.000Z","__v":0}`

	var c Contact
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if c.ID != "65f1" || c.Name != "Ann Lee" || c.Phone != "555-1111" {
		t.Errorf("unexpected contact: %+v", c)
	}
	want := time.Date(2024, 3, 5, 14, 7, 0, 0, time.UTC)
	if !c.CreatedAt.Equal(want) {
		t.Errorf("CreatedAt = %v; want %v", c.CreatedAt, want)
	}
	if len(c.Extra) != 1 || string(c.Extra["__v"]) != "0" {
		t.Errorf("Extra = %v; want only __v", c.Extra)
	}
}

func TestContactUnmarshalMissingCreatedAt(t *testing.T) {
	var c Contact
	if err := json.Unmarshal([]byte(`{"_id":"1","name":"Bo"}`), &c); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !c.CreatedAt.IsZero() {
		t.Errorf("CreatedAt = %v; want zero", c.CreatedAt)
	}
	if c.Extra != nil {
		t.Errorf("Extra = %v; want nil", c.Extra)
	}
}

func TestContactMarshalRoundTripsServerFields(t *testing.T) {
	src := `{"_id":"2","name":"Bo Park","email":"bo@x.com","phone":"555-2222","subject":"","message":"hi","createdAt":"2024-01-02T03:04:05Z","__v":3}`

	var c Contact
	if err := json.Unmarshal([]byte(src), &c); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	c = c.Apply(ContactPatch{Name: "Bo Park", Email: "bo@x.com", Phone: "555-9999", Message: "hi"})

	out, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("Unmarshal output: %v", err)
	}
	if got["_id"] != "2" {
		t.Errorf("_id = %v; want 2", got["_id"])
	}
	if got["phone"] != "555-9999" {
		t.Errorf("phone = %v; want 555-9999", got["phone"])
	}
	if got["createdAt"] != "2024-01-02T03:04:05Z" {
		t.Errorf("createdAt = %v; want 2024-01-02T03:04:05Z", got["createdAt"])
	}
	if got["__v"] != float64(3) {
		t.Errorf("__v = %v; want 3", got["__v"])
	}
}

func TestContactMarshalOmitsZeroCreatedAt(t *testing.T) {
	out, err := json.Marshal(Contact{ID: "1", Name: "Ann"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("Unmarshal output: %v", err)
	}
	if _, ok := got["createdAt"]; ok {
		t.Errorf("createdAt present in %s", out)
	}
}

func TestContactApplyPreservesIdentity(t *testing.T) {
	created := time.Date(2023, 7, 1, 9, 30, 0, 0, time.UTC)
	c := Contact{ID: "7", Name: "Old", Phone: "1", CreatedAt: created}

	got := c.Apply(ContactPatch{Name: "New", Phone: "2", Subject: "s", Message: "m", Email: "e"})

	if got.ID != "7" || !got.CreatedAt.Equal(created) {
		t.Errorf("identity changed: %+v", got)
	}
	if got.Name != "New" || got.Phone != "2" || got.Email != "e" || got.Subject != "s" || got.Message != "m" {
		t.Errorf("patch not applied: %+v", got)
	}
	if c.Name != "Old" {
		t.Errorf("receiver mutated: %+v", c)
	}
	if PatchOf(got) != (ContactPatch{Name: "New", Email: "e", Phone: "2", Subject: "s", Message: "m"}) {
		t.Errorf("PatchOf = %+v", PatchOf(got))
	}
}
