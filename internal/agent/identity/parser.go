// Package identity mines unstructured instruction text for user signals and
// bridges them into the assistant's per-turn context. Front-ends (CopilotKit
// instructions, the voice platform's system message) embed identity hints in
// free-form text; this package extracts them, keeps them in a keyed store for
// the session's lifetime, and renders the merged result into the prompt.
package identity

import (
	"regexp"
	"strings"
)

// Identity is the result of extracting user signals from instruction text.
// Empty fields mean the corresponding pattern did not match.
type Identity struct {
	UserID string `json:"user_id,omitempty"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
}

// HasSignal reports whether the identity is strong enough to store: a user id
// or a name. An email alone is not treated as an identity.
func (id Identity) HasSignal() bool {
	return id.UserID != "" || id.Name != ""
}

var userIDPattern = regexp.MustCompile(`(?i)User ID:\s*([a-f0-9-]+)`)

// Label variants tried in order; the first matching pattern wins.
var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)User Name:\s*([^\n]+)`),
	regexp.MustCompile(`(?i)-\s*Name:\s*([^\n]+)`),
	regexp.MustCompile(`(?i)Name:\s*([^\n]+)`),
	regexp.MustCompile(`(?i)first name \(([^)]+)\)`),
}

var emailPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)User Email:\s*([^\n]+)`),
	regexp.MustCompile(`(?i)-\s*Email:\s*([^\n]+)`),
	regexp.MustCompile(`(?i)Email:\s*([^\s\n]+)`),
}

// Extract mines the given text for user id, name, and email. Each field is
// extracted independently; a field whose patterns all miss stays empty. Extract
// never fails: empty or unrecognizable input yields a zero Identity.
func Extract(text string) Identity {
	var id Identity
	if text == "" {
		return id
	}

	if m := userIDPattern.FindStringSubmatch(text); m != nil {
		id.UserID = m[1]
	}

	for _, p := range namePatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			id.Name = strings.TrimSpace(m[1])
			break
		}
	}

	for _, p := range emailPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			id.Email = strings.TrimSpace(m[1])
			break
		}
	}

	return id
}

// FirstName derives a first name from a full name.
func FirstName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
