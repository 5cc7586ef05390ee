package conversations

import (
	"context"

	"github.com/cloudwego/eino/schema"

	"github.com/advisor-agents/server/internal/agent/model"
)

// MessagesManager mediates between the assistant graph and the conversation
// repository: it persists turns and assembles the message window handed to the
// chat model.
type MessagesManager struct {
	conversationRepo model.ConversationRepository
}

func NewMessagesManager(conversationRepo model.ConversationRepository) *MessagesManager {
	return &MessagesManager{conversationRepo: conversationRepo}
}

// AppendUserMessage persists the user's query for this turn.
func (m *MessagesManager) AppendUserMessage(ctx context.Context, conversationID string, query string) error {
	return m.conversationRepo.AddMessage(ctx, conversationID, schema.UserMessage(query))
}

// BuildTurnContext returns the system prompt followed by the stored history.
// The current user message is expected to be in the history already (appended
// via AppendUserMessage before the model runs).
func (m *MessagesManager) BuildTurnContext(ctx context.Context, conversationID string, systemPrompt string) ([]*schema.Message, error) {
	history, err := m.conversationRepo.LoadHistory(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	messages := []*schema.Message{
		schema.SystemMessage(systemPrompt),
	}
	messages = append(messages, history.Messages...)

	return messages, nil
}

// SaveResponse persists the assistant's final reply for this turn.
func (m *MessagesManager) SaveResponse(ctx context.Context, conversationID string, content string) error {
	return m.conversationRepo.AddMessage(ctx, conversationID, schema.AssistantMessage(content, nil))
}
