// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug derivation from titles and names.
package slug

import (
	"regexp"
	"strings"
)

var (
	// invalidChars matches anything that isn't a word character, whitespace,
	// or hyphen. Stripping these before hyphenation keeps separators clean:
	// "Tech & Travel" → "tech-travel", not "tech--travel".
	invalidChars = regexp.MustCompile(`[^\w\s-]`)
	// whitespaceRun matches one or more consecutive whitespace characters.
	whitespaceRun = regexp.MustCompile(`\s+`)
	// hyphenRun collapses consecutive hyphens into one.
	hyphenRun = regexp.MustCompile(`-{2,}`)
)

// Derive creates a URL-friendly slug from the given string.
// Example: "My First Post" → "my-first-post".
// Derive is pure and idempotent. It performs no collision handling —
// uniqueness is enforced by the storage schema.
func Derive(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = invalidChars.ReplaceAllString(result, "")
	result = whitespaceRun.ReplaceAllString(result, "-")
	result = hyphenRun.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}
