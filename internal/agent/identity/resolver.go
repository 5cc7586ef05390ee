package identity

import (
	"context"
	"fmt"
	"strings"

	"github.com/advisor-agents/server/internal/agent/model"
)

// ResolveName returns the effective display name for a turn. Structured
// session data always wins over cached parsed text: session firstName, then
// session name, then the cached name, then "".
func ResolveName(user *model.UserProfile, cached Identity) string {
	if user != nil {
		if user.FirstName != "" {
			return user.FirstName
		}
		if user.Name != "" {
			return user.Name
		}
	}
	return cached.Name
}

type cachedCtxKey struct{}

// WithCached attaches the cached identity snapshot for this turn so tools can
// fall back to it when session state carries no user.
func WithCached(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, cachedCtxKey{}, id)
}

// CachedFromContext returns the identity attached by WithCached, zero if none.
func CachedFromContext(ctx context.Context) Identity {
	id, _ := ctx.Value(cachedCtxKey{}).(Identity)
	return id
}

// TurnContext renders the per-turn context block that is prepended to the
// assistant's static system prompt. It is a pure function of the current
// session state and cached identity, recomputed on every turn.
type TurnContext struct {
	// Pages maps current_page keys from the front-end to descriptions.
	Pages map[string]string
	// DefaultPage names the entry used when the key is absent or unrecognized.
	DefaultPage string
}

// Render produces the context block. With an effective name it renders the
// logged-in variant (identity plus the session's domain traits); otherwise a
// shorter guest variant.
func (tc TurnContext) Render(session *model.SessionState, cached Identity) string {
	var currentPage string
	if session != nil {
		currentPage = session.CurrentPage
	}
	pageContext, ok := tc.Pages[currentPage]
	if !ok {
		pageContext = tc.Pages[tc.DefaultPage]
	}

	var user *model.UserProfile
	if session != nil {
		user = session.User
	}
	name := ResolveName(user, cached)

	var b strings.Builder
	b.WriteString("## CURRENT PAGE CONTEXT\n")
	b.WriteString(pageContext)
	b.WriteString("\n\n")

	if name == "" {
		b.WriteString("## GUEST USER\n")
		b.WriteString("This user is not logged in. They can still have a consultation.\n")
		b.WriteString("Focus on understanding their needs. They can sign in to save preferences, or continue as guest.\n")
		return b.String()
	}

	fullName := cached.Name
	if user != nil && user.Name != "" {
		fullName = user.Name
	}
	if fullName == "" {
		fullName = name
	}
	firstName := name
	if user != nil && user.FirstName != "" {
		firstName = user.FirstName
	} else if fullName != "" {
		firstName = FirstName(fullName)
	}
	email := cached.Email
	if user != nil && user.Email != "" {
		email = user.Email
	}
	if email == "" {
		email = "Not provided"
	}

	b.WriteString("## CURRENT USER CONTEXT\n")
	b.WriteString("You are speaking with a logged-in user. Here is their information:\n")
	fmt.Fprintf(&b, "- Name: %s\n", fullName)
	fmt.Fprintf(&b, "- First Name: %s\n", firstName)
	fmt.Fprintf(&b, "- Email: %s\n", email)
	if session != nil {
		for _, t := range session.Traits {
			v := t.Value
			if v == "" {
				v = t.Empty
				if v == "" {
					v = "Not specified"
				}
			}
			fmt.Fprintf(&b, "- %s: %s\n", t.Label, v)
		}
	}
	b.WriteString("\nIMPORTANT INSTRUCTIONS:\n")
	fmt.Fprintf(&b, "- ALWAYS address the user by their first name (%s) in your responses\n", firstName)
	fmt.Fprintf(&b, "- When they ask \"what's my name\" or about their profile, tell them: %q\n", fullName)
	b.WriteString("- Use their profile context to give personalised recommendations\n")
	b.WriteString("- Reference the current page context when relevant\n")
	return b.String()
}
