package usecase

import (
	"html"

	goaway "github.com/TwiN/go-away"
	"github.com/microcosm-cc/bluemonday"
)

// ProfanityChecker flags message text. The detection rules are owned by the implementation.
type ProfanityChecker interface {
	IsProfane(s string) bool
}

// Sanitizer strips markup from user supplied text
type Sanitizer interface {
	Sanitize(s string) string
}

// NewProfanityChecker returns the go-away detector, or a checker that flags nothing when disabled
func NewProfanityChecker(enabled bool) ProfanityChecker {
	if !enabled {
		return allowAll{}
	}
	return goaway.NewProfanityDetector().
		WithSanitizeLeetSpeak(true).
		WithSanitizeSpecialCharacters(true).
		WithSanitizeAccents(true)
}

// NewSanitizer returns a sanitizer that removes every HTML element and
// leaves the remaining text as written. Escaping is left to the renderer.
func NewSanitizer() Sanitizer {
	return markupStripper{policy: bluemonday.StrictPolicy()}
}

type markupStripper struct {
	policy *bluemonday.Policy
}

// Sanitize undoes the entity escaping the strict policy applies to plain text
func (m markupStripper) Sanitize(s string) string {
	return html.UnescapeString(m.policy.Sanitize(s))
}

type allowAll struct{}

func (allowAll) IsProfane(string) bool { return false }
