package yoga

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/advisor-agents/server/internal/agent/identity"
	"github.com/advisor-agents/server/internal/agent/model"
)

func TestGetCoverageInfoNotFound(t *testing.T) {
	out, err := getCoverageInfo(context.Background(), &GetCoverageInfoInput{CoverageType: "pet insurance"})
	require.NoError(t, err, "a miss is a structured result, not an error")

	assert.NotEmpty(t, out.Error)
	assert.Contains(t, out.Error, "pet insurance")
	assert.Equal(t, CoverageKeys(), out.AvailableTypes)
	assert.NotEmpty(t, out.Suggestion)
	assert.Empty(t, out.Coverage)
}

func TestGetCoverageInfoFound(t *testing.T) {
	out, err := getCoverageInfo(context.Background(), &GetCoverageInfoInput{CoverageType: "indemnity"})
	require.NoError(t, err)

	assert.Equal(t, "Professional Indemnity", out.Coverage)
	assert.NotEmpty(t, out.TypicalLimits)
	assert.NotEmpty(t, out.MonthlyFrom)
	assert.Empty(t, out.Error)
}

func TestCompareProvidersAll(t *testing.T) {
	out, err := compareProviders(context.Background(), &CompareProvidersInput{})
	require.NoError(t, err)
	assert.Len(t, out.Providers, len(Providers))
	assert.Empty(t, out.Error)
}

func TestCompareProvidersByStyle(t *testing.T) {
	out, err := compareProviders(context.Background(), &CompareProvidersInput{Style: "aerial"})
	require.NoError(t, err)

	require.NotEmpty(t, out.Providers)
	for _, p := range out.Providers {
		assert.Contains(t, p.StylesCovered, "Aerial Yoga")
	}
}

func TestCompareProvidersUnknownStyle(t *testing.T) {
	out, err := compareProviders(context.Background(), &CompareProvidersInput{Style: "crossfit"})
	require.NoError(t, err)

	assert.NotEmpty(t, out.Error)
	assert.Equal(t, StyleKeys(), out.AvailableStyles)
	assert.NotEmpty(t, out.Suggestion)
}

func TestGetStyleRequirementsNotFound(t *testing.T) {
	out, err := getStyleRequirements(context.Background(), &GetStyleRequirementsInput{Style: "crossfit"})
	require.NoError(t, err)

	assert.NotEmpty(t, out.Error)
	assert.Equal(t, StyleKeys(), out.AvailableStyles)
	assert.NotEmpty(t, out.Suggestion)
}

func TestGetStyleRequirementsFound(t *testing.T) {
	out, err := getStyleRequirements(context.Background(), &GetStyleRequirementsInput{Style: "bikram"})
	require.NoError(t, err)

	assert.Equal(t, "Hot Yoga", out.Style)
	assert.NotEmpty(t, out.RequiredCover)
	assert.NotEmpty(t, out.RiskProfile)
}

func TestRecommendCoverBaseline(t *testing.T) {
	out, err := recommendCover(context.Background(), &RecommendCoverInput{})
	require.NoError(t, err)

	require.Len(t, out.RecommendedCover, 2)
	assert.Equal(t, "Public Liability", out.RecommendedCover[0].Name)
	assert.Equal(t, "Professional Indemnity", out.RecommendedCover[1].Name)
	assert.NotEmpty(t, out.Providers)
}

func TestRecommendCoverAerialAddsEquipment(t *testing.T) {
	out, err := recommendCover(context.Background(), &RecommendCoverInput{Styles: []string{"aerial"}})
	require.NoError(t, err)

	names := map[string]bool{}
	for _, c := range out.RecommendedCover {
		names[c.Name] = true
	}
	assert.True(t, names["Equipment Cover"], "aerial teaching should add equipment cover")
}

func TestRecommendCoverOwnStudio(t *testing.T) {
	out, err := recommendCover(context.Background(), &RecommendCoverInput{OwnStudio: true})
	require.NoError(t, err)

	names := map[string]bool{}
	for _, c := range out.RecommendedCover {
		names[c.Name] = true
	}
	assert.True(t, names["Studio & Business Cover"])
}

func TestGetMyProfileGuest(t *testing.T) {
	out, err := getMyProfile(context.Background(), &GetMyProfileInput{})
	require.NoError(t, err)
	assert.False(t, out.LoggedIn)
}

func TestGetMyProfileFromCache(t *testing.T) {
	ctx := identity.WithCached(context.Background(), identity.Identity{Name: "Priya Sharma"})
	out, err := getMyProfile(ctx, &GetMyProfileInput{})
	require.NoError(t, err)

	assert.True(t, out.LoggedIn)
	assert.Equal(t, "Priya", out.FirstName)
}

func TestBookCallbackCapturesProfile(t *testing.T) {
	ctx := model.WithSession(context.Background(), &model.SessionState{
		User: &model.UserProfile{Name: "Ann Lee", Email: "ann@example.org"},
		Traits: []model.Trait{
			{Label: "Styles Taught", Value: "Hot Yoga, Vinyasa"},
		},
	})

	out, err := bookCallback(ctx, &BookCallbackInput{SpecificTopic: "hot yoga cover"})
	require.NoError(t, err)

	assert.Equal(t, "book_callback", out.Action)
	assert.Equal(t, "Ann Lee", out.ProfileCaptured["name"])
	assert.Equal(t, "Hot Yoga, Vinyasa", out.ProfileCaptured["styles_taught"])
	assert.Equal(t, callbackLink, out.CalendarLink)
}

func TestToolsExposeInfo(t *testing.T) {
	ctx := context.Background()
	tools := Tools()
	require.Len(t, tools, 6)

	names := map[string]bool{}
	for _, tl := range tools {
		info, err := tl.Info(ctx)
		require.NoError(t, err)
		names[info.Name] = true
	}
	for _, want := range []string{
		ToolGetCoverageInfo,
		ToolCompareProviders,
		ToolGetStyleRequirements,
		ToolRecommendCover,
		ToolBookCallback,
		ToolGetMyProfile,
	} {
		assert.True(t, names[want], "missing tool %s", want)
	}
}
