package yoga

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

//go:embed template/system_prompt.txt
var coreSystemPrompt string

// RenderSystemPrompt renders the static advisor system prompt, once at startup.
func RenderSystemPrompt(ctx context.Context) (string, error) {
	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(coreSystemPrompt),
	)
	vars := map[string]any{
		"CoverageTool":  ToolGetCoverageInfo,
		"CompareTool":   ToolCompareProviders,
		"StyleTool":     ToolGetStyleRequirements,
		"RecommendTool": ToolRecommendCover,
		"ProfileTool":   ToolGetMyProfile,
		"BookTool":      ToolBookCallback,
	}
	msgs, err := tpl.Format(ctx, vars)
	if err != nil {
		return "", fmt.Errorf("yoga prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("yoga prompt render: empty result")
	}
	return msgs[0].Content, nil
}
