package yoga

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProfile(t *testing.T) {
	p, err := NewProfile(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "yoga-insurance-agent", p.Name)
	assert.Equal(t, "yoga_", p.SessionPrefix)
	assert.NotEmpty(t, p.FallbackReply)
	assert.Len(t, p.Tools, 6)

	assert.Contains(t, p.SystemPrompt, ToolCompareProviders)
	assert.Contains(t, p.SystemPrompt, ToolGetMyProfile)
	assert.NotContains(t, p.SystemPrompt, "{{", "all template placeholders must be resolved")

	_, ok := p.Turn.Pages[p.Turn.DefaultPage]
	assert.True(t, ok, "default page must exist in the page map")
}
