package repo

import (
	"context"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryConversationRepository()

	require.NoError(t, r.AddMessage(ctx, "conv-1", schema.UserMessage("hello")))
	require.NoError(t, r.AddMessage(ctx, "conv-1", schema.AssistantMessage("hi there", nil)))
	require.NoError(t, r.AddMessage(ctx, "conv-2", schema.UserMessage("other conversation")))

	history, err := r.LoadHistory(ctx, "conv-1")
	require.NoError(t, err)
	require.Len(t, history.Messages, 2)
	assert.Equal(t, schema.User, history.Messages[0].Role)
	assert.Equal(t, "hello", history.Messages[0].Content)
	assert.Equal(t, schema.Assistant, history.Messages[1].Role)

	count, err := r.GetMessageCount(ctx, "conv-1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = r.GetMessageCount(ctx, "conv-2")
	require.NoError(t, err)
	assert.Equal(t, 1, count, "conversations must not leak into each other")
}

func TestMemoryRepositoryClearHistory(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryConversationRepository()

	require.NoError(t, r.AddMessage(ctx, "conv-1", schema.UserMessage("hello")))
	require.NoError(t, r.ClearHistory(ctx, "conv-1"))

	count, err := r.GetMessageCount(ctx, "conv-1")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestMemoryRepositoryEmptyConversation(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryConversationRepository()

	history, err := r.LoadHistory(ctx, "nope")
	require.NoError(t, err)
	assert.Empty(t, history.Messages)
}

func TestMemoryRepositoryLoadReturnsCopy(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryConversationRepository()
	require.NoError(t, r.AddMessage(ctx, "conv-1", schema.UserMessage("hello")))

	history, err := r.LoadHistory(ctx, "conv-1")
	require.NoError(t, err)
	history.Messages[0] = schema.UserMessage("mutated")

	again, err := r.LoadHistory(ctx, "conv-1")
	require.NoError(t, err)
	assert.Equal(t, "hello", again.Messages[0].Content)
}
