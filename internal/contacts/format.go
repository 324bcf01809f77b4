// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package contacts

import (
	"html"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

// DateLayout renders submission times, e.g. "Mar 5, 2024, 02:07 PM".
const DateLayout = "Jan 2, 2006, 03:04 PM"

// stripPolicy removes all markup from user supplied text. Policies are safe
// for concurrent use once built.
var stripPolicy = bluemonday.StrictPolicy()

// Initials returns the upper-cased first letter of every word in name.
func Initials(name string) string {
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// FormatDate formats t with DateLayout in t's location. The zero time formats as "".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// PlainText strips markup from s, decodes entities and collapses whitespace.
func PlainText(s string) string {
	clean := html.UnescapeString(stripPolicy.Sanitize(s))
	return strings.Join(strings.Fields(clean), " ")
}

// Preview returns at most n runes of the plain text of s, ending in "..."
// when it was cut.
func Preview(s string, n int) string {
	text := PlainText(s)
	if n <= 0 || utf8.RuneCountInString(text) <= n {
		return text
	}
	runes := []rune(text)
	return strings.TrimRightFunc(string(runes[:n]), unicode.IsSpace) + "..."
}
