// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model contains domain models shared by the API client and the views.
package model

import (
	"encoding/json"
	"time"
)

// Wire names of the contact fields as served by the remote API.
const (
	FieldID        = "_id"
	FieldName      = "name"
	FieldEmail     = "email"
	FieldPhone     = "phone"
	FieldSubject   = "subject"
	FieldMessage   = "message"
	FieldCreatedAt = "createdAt"
)

// knownFields lists the wire names decoded into Contact's typed fields.
var knownFields = []string{
	FieldID, FieldName, FieldEmail, FieldPhone, FieldSubject, FieldMessage, FieldCreatedAt,
}

// Contact is a "contact us" submission owned by the remote API.
// ID and CreatedAt are assigned by the server and never changed by the client.
type Contact struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`

	// Extra holds fields the server sent that the client does not model
	// (for example "__v" or "updatedAt"). They are sent back unchanged on update.
	// Treat the map as read-only: copies of a Contact share it.
	Extra map[string]json.RawMessage `json:"-"`
}

// contactWire is the on-the-wire shape of a Contact.
type contactWire struct {
	ID        string     `json:"_id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	Subject   string     `json:"subject"`
	Message   string     `json:"message"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// UnmarshalJSON decodes a contact and keeps unknown fields in Extra.
func (c *Contact) UnmarshalJSON(data []byte) error {
	var w contactWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, k := range knownFields {
		delete(raw, k)
	}

	*c = Contact{
		ID:      w.ID,
		Name:    w.Name,
		Email:   w.Email,
		Phone:   w.Phone,
		Subject: w.Subject,
		Message: w.Message,
	}
	if w.CreatedAt != nil {
		c.CreatedAt = *w.CreatedAt
	}
	if len(raw) > 0 {
		c.Extra = raw
	}
	return nil
}

// MarshalJSON encodes the contact with its extra fields. A zero CreatedAt is omitted.
func (c Contact) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(c.Extra)+len(knownFields))
	for k, v := range c.Extra {
		out[k] = v
	}
	out[FieldID] = c.ID
	out[FieldName] = c.Name
	out[FieldEmail] = c.Email
	out[FieldPhone] = c.Phone
	out[FieldSubject] = c.Subject
	out[FieldMessage] = c.Message
	if !c.CreatedAt.IsZero() {
		out[FieldCreatedAt] = c.CreatedAt
	}
	return json.Marshal(out)
}

// ContactPatch carries the mutable fields of a contact.
type ContactPatch struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// PatchOf returns the mutable fields of c.
func PatchOf(c Contact) ContactPatch {
	return ContactPatch{
		Name:    c.Name,
		Email:   c.Email,
		Phone:   c.Phone,
		Subject: c.Subject,
		Message: c.Message,
	}
}

// Apply returns a copy of c with the mutable fields taken from p.
// ID, CreatedAt and Extra are preserved.
func (c Contact) Apply(p ContactPatch) Contact {
	c.Name = p.Name
	c.Email = p.Email
	c.Phone = p.Phone
	c.Subject = p.Subject
	c.Message = p.Message
	return c
}
