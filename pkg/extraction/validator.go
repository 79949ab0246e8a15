// Package extraction gates OCR/LLM-extracted lease values before they may
// pre-fill an intake form. The extractor confidently returns syntactically
// plausible garbage over noisy scans, and its confidence scores are not
// reliably available, so the predicates here are cheap, explainable
// heuristics. A failing value is dropped silently; the user can always type
// the correct value by hand.
package extraction

import (
	"regexp"
	"strings"
	"time"
	"unicode"
)

// unitDescriptionTokens mark an extracted "address" that is actually a unit
// description sentence ("2 Bedroom, 1 Bath, 900 sq ft ...").
var unitDescriptionTokens = []string{"sq ft", "sqft", "bedr", "bath"}

// boilerplateNames are document-structure words the extractor mistakes for a
// person's name.
var boilerplateNames = []string{"property", "lease", "tenant", "agreement", "the", "this"}

// IsValidAddress reports whether s looks like a mailing address: long enough,
// starting with a street number, and free of unit-description tokens.
func IsValidAddress(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) <= 5 {
		return false
	}
	if !startsWithStreetNumber(s) {
		return false
	}
	lower := strings.ToLower(s)
	for _, token := range unitDescriptionTokens {
		if strings.Contains(lower, token) {
			return false
		}
	}
	return true
}

// startsWithStreetNumber checks for one or more digits followed by a letter
// (possibly after spaces), e.g. "123 Main St".
func startsWithStreetNumber(s string) bool {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return false
	}
	for _, r := range s[i:] {
		if unicode.IsLetter(r) {
			return true
		}
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return false
}

// IsValidName reports whether s is plausibly a person's name rather than a
// boilerplate word lifted from the document.
func IsValidName(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) < 3 {
		return false
	}
	for _, word := range boilerplateNames {
		if strings.EqualFold(s, word) {
			return false
		}
	}
	return true
}

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsValidDate accepts only the canonical YYYY-MM-DD calendar form. Partial
// and locale-formatted dates are rejected, as are shapes like 2024-13-40
// that pass the pattern but are not real dates.
func IsValidDate(s string) bool {
	s = strings.TrimSpace(s)
	if !isoDatePattern.MatchString(s) {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
