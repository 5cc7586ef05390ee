package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/advisor-agents/server/internal/agent/model"
)

func TestResolveName(t *testing.T) {
	tests := []struct {
		name   string
		user   *model.UserProfile
		cached Identity
		want   string
	}{
		{
			name:   "session first name wins over everything",
			user:   &model.UserProfile{Name: "Ann Lee", FirstName: "Ann"},
			cached: Identity{Name: "Cached"},
			want:   "Ann",
		},
		{
			name:   "session full name beats cached",
			user:   &model.UserProfile{Name: "Ann Lee"},
			cached: Identity{Name: "Cached"},
			want:   "Ann Lee",
		},
		{
			name:   "cached fills in when session is empty",
			user:   &model.UserProfile{},
			cached: Identity{Name: "Cached"},
			want:   "Cached",
		},
		{
			name:   "cached fills in when session user is nil",
			user:   nil,
			cached: Identity{Name: "Cached"},
			want:   "Cached",
		},
		{
			name: "nothing known",
			user: nil,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveName(tt.user, tt.cached))
		})
	}
}

func TestCachedContextRoundTrip(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, Identity{}, CachedFromContext(ctx))

	ctx = WithCached(ctx, Identity{Name: "Priya"})
	assert.Equal(t, "Priya", CachedFromContext(ctx).Name)
}

var testTurn = TurnContext{
	Pages: map[string]string{
		"contact":  "The user is on the CONTACT page.",
		"homepage": "The user is on the HOMEPAGE.",
	},
	DefaultPage: "homepage",
}

func TestRenderPageContext(t *testing.T) {
	tests := []struct {
		name        string
		currentPage string
		wantPage    string
	}{
		{"known page", "contact", "The user is on the CONTACT page."},
		{"unknown page falls back to default", "pricing", "The user is on the HOMEPAGE."},
		{"empty page falls back to default", "", "The user is on the HOMEPAGE."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := testTurn.Render(&model.SessionState{CurrentPage: tt.currentPage}, Identity{})
			assert.Contains(t, out, "## CURRENT PAGE CONTEXT")
			assert.Contains(t, out, tt.wantPage)
		})
	}
}

func TestRenderGuestVariant(t *testing.T) {
	out := testTurn.Render(nil, Identity{})
	assert.Contains(t, out, "## GUEST USER")
	assert.NotContains(t, out, "## CURRENT USER CONTEXT")
}

func TestRenderLoggedInFromSession(t *testing.T) {
	session := &model.SessionState{
		User: &model.UserProfile{Name: "Ann Lee", FirstName: "Ann", Email: "ann@example.org"},
		Traits: []model.Trait{
			{Label: "Organisation Type", Value: "Professional Body"},
			{Label: "Budget Range", Empty: "Not discussed"},
			{Label: "Member Count"},
		},
	}
	out := testTurn.Render(session, Identity{})

	assert.Contains(t, out, "## CURRENT USER CONTEXT")
	assert.Contains(t, out, "- Name: Ann Lee")
	assert.Contains(t, out, "- First Name: Ann")
	assert.Contains(t, out, "- Email: ann@example.org")
	assert.Contains(t, out, "- Organisation Type: Professional Body")
	assert.Contains(t, out, "- Budget Range: Not discussed")
	assert.Contains(t, out, "- Member Count: Not specified")
	assert.Contains(t, out, "first name (Ann)")
}

func TestRenderLoggedInFromCache(t *testing.T) {
	out := testTurn.Render(nil, Identity{Name: "Priya Sharma", Email: "priya@example.org"})

	assert.Contains(t, out, "## CURRENT USER CONTEXT")
	assert.Contains(t, out, "- Name: Priya Sharma")
	assert.Contains(t, out, "- First Name: Priya")
	assert.Contains(t, out, "- Email: priya@example.org")
}

func TestRenderSessionBeatsCache(t *testing.T) {
	session := &model.SessionState{
		User: &model.UserProfile{Name: "Ann Lee"},
	}
	out := testTurn.Render(session, Identity{Name: "Cached Name", Email: "cached@example.org"})

	assert.Contains(t, out, "- Name: Ann Lee")
	assert.NotContains(t, out, "Cached Name")
	// Cache still backfills fields the session leaves empty.
	assert.Contains(t, out, "- Email: cached@example.org")
}

func TestRenderMissingEmailPlaceholder(t *testing.T) {
	session := &model.SessionState{User: &model.UserProfile{Name: "Ann Lee"}}
	out := testTurn.Render(session, Identity{})
	assert.Contains(t, out, "- Email: Not provided")
}
