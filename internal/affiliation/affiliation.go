// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package affiliation extracts structured fields from free-text
// institutional affiliation strings. An affiliation is split on commas
// and segments are kept or skipped by keyword and length heuristics.
// Deduplication and scoring depend on the extracted values being
// stable, so the skip ordering must not change.
package affiliation

import (
	"regexp"
	"strings"
)

// Unknown is the company fallback when no segment survives the filters.
const Unknown = "Unknown"

var (
	emailRe        = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	emailStripRe   = regexp.MustCompile(`\S+@\S+`)
	leadingDigitRe = regexp.MustCompile(`^\d`)
)

// skipKeywords marks comma segments that name an academic unit rather
// than an institution. Matching is case-insensitive substring.
var skipKeywords = []string{
	"department", "university", "college", "school", "institute",
	"institution", "center", "centre", "laboratory", "lab", "faculty",
}

// Email returns the first email address found in text, or empty.
func Email(text string) string {
	return emailRe.FindString(text)
}

// Company extracts an institution or company name from an affiliation
// string. It strips any email, splits on commas, skips segments that
// match the academic-unit denylist, start with a digit, or are shorter
// than 3 characters, and returns the first surviving segment longer
// than 3 characters. If nothing survives, the first segment longer
// than 5 characters is used; failing that, Unknown.
func Company(text string) string {
	if text == "" {
		return Unknown
	}

	stripped := emailStripRe.ReplaceAllString(text, "")
	parts := splitSegments(stripped)

	for _, part := range parts {
		lower := strings.ToLower(part)
		if containsAny(lower, skipKeywords) {
			continue
		}
		if leadingDigitRe.MatchString(part) || len(part) < 3 {
			continue
		}
		if len(part) > 3 {
			return part
		}
	}

	for _, part := range parts {
		if len(part) > 5 {
			return part
		}
	}

	return Unknown
}

// Location extracts the trailing location from an affiliation string.
// Institutional affiliations conventionally end with city and country,
// so the last two comma segments are rejoined with ", ". Returns empty
// when fewer than two segments exist.
func Location(text string) string {
	if text == "" {
		return ""
	}

	stripped := emailStripRe.ReplaceAllString(text, "")
	parts := splitSegments(stripped)

	if len(parts) < 2 {
		return ""
	}
	return strings.Join(parts[len(parts)-2:], ", ")
}

func splitSegments(text string) []string {
	raw := strings.Split(text, ",")
	parts := make([]string, len(raw))
	for i, p := range raw {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
