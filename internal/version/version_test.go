// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package version

import "testing"

func TestInfo_String(t *testing.T) {
	info := Info{
		Version:   "v1.0.0",
		GitCommit: "abc1234",
		BuildTime: "2025-01-30T12:00:00Z",
	}

	want := "contactdesk v1.0.0 (commit abc1234, built 2025-01-30T12:00:00Z)"
	if got := info.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got := info.UserAgent(); got != "contactdesk/v1.0.0" {
		t.Errorf("UserAgent() = %q", got)
	}
}

func TestInfoZeroValue(t *testing.T) {
	var info Info

	if got := info.Short(); got != "dev" {
		t.Errorf("Short() = %q, want dev", got)
	}
	if got := info.String(); got != "contactdesk dev (commit unknown, built unknown)" {
		t.Errorf("String() = %q", got)
	}
	if got := info.UserAgent(); got != "contactdesk/dev" {
		t.Errorf("UserAgent() = %q, want contactdesk/dev", got)
	}
}
