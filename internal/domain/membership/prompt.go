package membership

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

//go:embed template/system_prompt.txt
var coreSystemPrompt string

// RenderSystemPrompt renders the static consultant system prompt. It is rendered
// once at startup; per-turn user context is assembled separately by the graph.
func RenderSystemPrompt(ctx context.Context) (string, error) {
	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(coreSystemPrompt),
	)
	vars := map[string]any{
		"RecommendTool":   ToolRecommendServices,
		"AssessTool":      ToolAssessChallenges,
		"CaseStudiesTool": ToolGetCaseStudies,
		"ServiceInfoTool": ToolGetServiceInfo,
		"ProfileTool":     ToolGetMyProfile,
		"BookTool":        ToolBookConsultation,
	}
	msgs, err := tpl.Format(ctx, vars)
	if err != nil {
		return "", fmt.Errorf("membership prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("membership prompt render: empty result")
	}
	return msgs[0].Content, nil
}
