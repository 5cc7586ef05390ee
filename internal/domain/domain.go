// Package domain defines the per-assistant profile: the static system prompt,
// page-context map, trait labels, and tool set that specialise the shared
// agent core into one product (membership consultant, yoga insurance advisor).
package domain

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"

	"github.com/advisor-agents/server/internal/agent/identity"
)

// Profile specialises the shared assistant core for one product.
type Profile struct {
	// Name is the agent/model identifier exposed over the chat-completions API.
	Name string
	// Title is the human-readable description for the info endpoint.
	Title string
	// SessionPrefix is stripped from voice session ids to recover the user id,
	// e.g. "membership_" in "Priya|membership_ab12|contact".
	SessionPrefix string
	// SystemPrompt is the static instruction text; the per-turn context block
	// is prepended to it, never merged into it.
	SystemPrompt string
	// FallbackReply is returned to callers when the model run fails.
	FallbackReply string
	// Turn renders the per-turn context block.
	Turn identity.TurnContext
	// Tools is the domain tool set bound to the chat model.
	Tools []tool.BaseTool
	// TraitLabels lists the domain profile fields in render order, with their
	// absent-value placeholders.
	TraitLabels []TraitLabel
}

// TraitLabel names one domain profile field and its placeholder when unset.
type TraitLabel struct {
	Label string
	Empty string
}

// ToolInfos collects the ToolInfo of each tool for model binding.
func ToolInfos(ctx context.Context, tools []tool.BaseTool) ([]*schema.ToolInfo, error) {
	infos := make([]*schema.ToolInfo, 0, len(tools))
	for _, t := range tools {
		info, err := t.Info(ctx)
		if err != nil {
			return nil, fmt.Errorf("tool info: %w", err)
		}
		infos = append(infos, info)
	}
	return infos, nil
}
