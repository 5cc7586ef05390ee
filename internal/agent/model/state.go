package model

import (
	"context"

	"github.com/cloudwego/eino/schema"
)

// UserProfile is the structured user record supplied by a front-end session.
// All fields are optional; the zero value means "not provided".
type UserProfile struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	Email     string `json:"email,omitempty"`
}

// Trait is one domain-specific profile field carried in session state, e.g.
// "Organisation Type" for the membership consultant or "Yoga Styles" for the
// insurance advisor. Empty names the placeholder rendered when Value is blank;
// when unset it defaults to "Not specified".
type Trait struct {
	Label string `json:"label"`
	Value string `json:"value,omitempty"`
	Empty string `json:"-"`
}

// SessionState is the caller-owned, per-conversation profile. The core never
// mutates it; the voice-compatibility path synthesizes a fresh one per request.
type SessionState struct {
	User        *UserProfile `json:"user,omitempty"`
	CurrentPage string       `json:"current_page,omitempty"`
	Traits      []Trait      `json:"traits,omitempty"`
}

// Trait returns the value of the named trait, or "" when absent.
func (s *SessionState) Trait(label string) string {
	if s == nil {
		return ""
	}
	for _, t := range s.Traits {
		if t.Label == label {
			return t.Value
		}
	}
	return ""
}

type sessionCtxKey struct{}

// WithSession attaches the per-request session state to the context so tools
// invoked by the model can read the caller's profile.
func WithSession(ctx context.Context, s *SessionState) context.Context {
	return context.WithValue(ctx, sessionCtxKey{}, s)
}

// SessionFromContext returns the session attached by WithSession, or nil.
func SessionFromContext(ctx context.Context) *SessionState {
	s, _ := ctx.Value(sessionCtxKey{}).(*SessionState)
	return s
}

// AppState stores per-invocation state for the assistant graph.
// Concurrency model:
//   - This struct is registered as Graph Local State via compose.WithGenLocalState.
//   - All reads/writes happen only inside Eino state handlers:
//     WithStatePreHandler, WithStatePostHandler, or compose.ProcessState.
//   - Eino serializes access to state within these handlers, so no additional
//     mutex/atomic is required as long as you never touch it outside handlers.
type AppState struct {
	ConversationID       string
	History              []*schema.Message // mutated only inside Eino state handlers
	ToolCallCount        int               // maintained in handlers (reset/increment)
	ToolCallLimitReached bool              // set when tool call limit is exceeded
	ToolCallIDSeq        int               // local sequence to synthesize tool_call_id when provider omits

	// Accumulated total LLM cost (USD) across model invocations for this turn
	TotalCostUSD float64
}

// QueryInput represents one conversational turn handed to the assistant.
// SessionKey selects the identity-store slot for this conversation; empty
// means the shared default slot.
type QueryInput struct {
	ConversationID string        `json:"conversation_id"`
	SessionKey     string        `json:"session_key,omitempty"`
	Query          string        `json:"query"`
	Session        *SessionState `json:"session,omitempty"`
}
