package platform

import (
	"strings"
)

// patternChars are the characters whose presence marks a platform field as
// a pattern rather than a literal name.
const patternChars = "(|)*[].+?"

// IsPattern reports whether s is a pattern-form platform field.
func IsPattern(s string) bool {
	return strings.ContainsAny(s, patternChars)
}

// Source records how a platform was assigned to a record.
type Source string

// Resolution sources.
const (
	// SourceLiteral means the platform field was already a literal name.
	SourceLiteral Source = "literal"
	// SourcePrefix means a known platform prefixed the primary filename.
	SourcePrefix Source = "prefix"
	// SourceFallback means no known platform matched and the name was
	// synthesized from the filename.
	SourceFallback Source = "fallback"
)

// Resolution is the platform assigned to one record.
type Resolution struct {
	// Platform is the concrete platform name.
	Platform string `json:"platform"`
	// Source records how Platform was chosen.
	Source Source `json:"source"`
}
