package membership

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProfile(t *testing.T) {
	p, err := NewProfile(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "membership-marketing-agent", p.Name)
	assert.Equal(t, "membership_", p.SessionPrefix)
	assert.NotEmpty(t, p.FallbackReply)
	assert.Len(t, p.Tools, 7)

	// The rendered prompt references the tools by their wire names.
	assert.Contains(t, p.SystemPrompt, ToolRecommendServices)
	assert.Contains(t, p.SystemPrompt, ToolGetMyProfile)
	assert.NotContains(t, p.SystemPrompt, "{{", "all template placeholders must be resolved")

	_, ok := p.Turn.Pages[p.Turn.DefaultPage]
	assert.True(t, ok, "default page must exist in the page map")
}
