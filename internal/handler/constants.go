// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the root path.
	RouteRoot = "/"
	// RouteContacts is the contact manager mount point.
	RouteContacts = "/admin/contacts"
	// RouteContactsJSON serves the filtered view as JSON.
	RouteContactsJSON = "/admin/contacts.json"

	// RouteSuffixRefresh is the suffix for the refresh action.
	RouteSuffixRefresh = "/refresh"
	// RouteSuffixDialogClose is the suffix for closing the open dialog.
	RouteSuffixDialogClose = "/dialog/close"
	// RouteParamID is the ID parameter pattern.
	RouteParamID = "/{id}"
	// RouteSuffixEdit is the suffix for edit routes.
	RouteSuffixEdit = "/edit"
	// RouteSuffixDelete is the suffix for delete routes.
	RouteSuffixDelete = "/delete"

	// RouteHealth is the health check route.
	RouteHealth = "/health"
	// RouteHealthLive is the liveness probe route.
	RouteHealthLive = "/health/live"
)

// Template names.
const (
	templateContacts = "admin/contacts"
)

// Form field names of the edit dialog.
const (
	formName    = "name"
	formEmail   = "email"
	formPhone   = "phone"
	formSubject = "subject"
	formMessage = "message"
)

// Page-level messages that do not come from the screen.
const (
	msgBusy        = "Another request for this contact is still in progress"
	msgNotFound    = "Contact not found"
	msgInvalidForm = "Invalid form data"
)

// Utility constants.
const (
	// HeaderContentType is the Content-Type HTTP header name.
	HeaderContentType = "Content-Type"
	// ContentTypeJSON is the JSON media type.
	ContentTypeJSON = "application/json"
)
