package graph

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/advisor-agents/server/internal/agent/graph/conversations"
	"github.com/advisor-agents/server/internal/agent/graph/nodes"
	"github.com/advisor-agents/server/internal/agent/graph/observers"
	"github.com/advisor-agents/server/internal/agent/identity"
	"github.com/advisor-agents/server/internal/agent/model"
	"github.com/advisor-agents/server/internal/domain"
	logx "github.com/advisor-agents/server/pkg/logger"
)

// Runner executes the compiled assistant graph for one conversational turn.
type Runner interface {
	Invoke(ctx context.Context, in model.QueryInput) (string, error)
}

// Config holds everything needed to compose the assistant graph end-to-end.
type Config struct {
	APIKey           string
	BaseURL          string
	ChatModel        model.ChatModelConfig
	Conversation     model.ConversationConfig
	ConversationRepo model.ConversationRepository
	Identity         *identity.Store
	Profile          *domain.Profile
}

type graphRunner struct {
	runnable compose.Runnable[model.QueryInput, *schema.Message]
	store    *identity.Store
}

func (r *graphRunner) Invoke(ctx context.Context, in model.QueryInput) (string, error) {
	// Snapshot the cached identity for this turn and expose session state to
	// the tools through the context.
	cached, _ := r.store.Lookup(in.SessionKey)
	ctx = identity.WithCached(ctx, cached)
	ctx = model.WithSession(ctx, in.Session)

	out, err := r.runnable.Invoke(ctx, in, compose.WithCallbacks(observers.NewAllCallbacks()))
	if err != nil {
		return "", err
	}
	if out == nil {
		return "", nil
	}
	return out.Content, nil
}

// BuildAssistantGraph wires the chat model, conversation manager, and domain
// tools into a compiled graph and returns a Runner.
func BuildAssistantGraph(ctx context.Context, cfg Config) (Runner, error) {
	if cfg.ConversationRepo == nil {
		return nil, fmt.Errorf("conversation repo is nil")
	}
	if cfg.Identity == nil {
		return nil, fmt.Errorf("identity store is nil")
	}
	if cfg.Profile == nil {
		return nil, fmt.Errorf("domain profile is nil")
	}

	chatModel, err := nodes.NewChatModel(ctx, nodes.ChatModelConfig{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Config:  &cfg.ChatModel,
	})
	if err != nil {
		return nil, err
	}

	toolInfos, err := domain.ToolInfos(ctx, cfg.Profile.Tools)
	if err != nil {
		return nil, fmt.Errorf("failed to get tool infos: %w", err)
	}
	if err := nodes.BindTools(chatModel, toolInfos); err != nil {
		return nil, err
	}

	mm := conversations.NewMessagesManager(cfg.ConversationRepo)
	maxToolCalls := cfg.Conversation.Tools.MaxCalls

	g := compose.NewGraph[model.QueryInput, *schema.Message](
		compose.WithGenLocalState(func(ctx context.Context) *model.AppState {
			return &model.AppState{}
		}),
	)

	g.AddLambdaNode(nodes.NodeContextAssembler,
		nodes.NewContextAssemblerNode(mm, cfg.Profile.Turn, cfg.Profile.SystemPrompt),
		compose.WithStatePreHandler(nodes.NewContextAssemblerPreHandler()),
	)

	g.AddChatModelNode(nodes.NodeChatModel,
		chatModel,
		compose.WithStatePreHandler(nodes.NewChatModelPreHandler(maxToolCalls)),
		compose.WithStatePostHandler(nodes.NewChatModelPostHandler(mm, cfg.ChatModel.Model)),
	)

	toolsNode, err := compose.NewToolNode(ctx, &compose.ToolsNodeConfig{
		Tools:               cfg.Profile.Tools,
		ExecuteSequentially: true,
		UnknownToolsHandler: func(ctx context.Context, name, input string) (string, error) {
			// Gracefully handle hallucinated or malformed tool calls
			logx.Warn().
				Str("tool_name", name).
				Str("arguments", input).
				Msg("Unknown or invalid tool call; returning fallback result")
			return fmt.Sprintf("{\"error\":\"unknown_tool\",\"name\":%q,\"note\":\"ignored\"}", name), nil
		},
	})
	if err != nil {
		logx.Error().Err(err).Msg("Failed to create tools node")
		return nil, fmt.Errorf("failed to create tools node: %w", err)
	}

	g.AddToolsNode(nodes.NodeToolExecutor, toolsNode,
		compose.WithStatePreHandler(nodes.NewToolExecutorPreHandler(maxToolCalls)),
	)

	g.AddEdge(compose.START, nodes.NodeContextAssembler)
	g.AddEdge(nodes.NodeContextAssembler, nodes.NodeChatModel)
	g.AddEdge(nodes.NodeToolExecutor, nodes.NodeChatModel)

	decisionBranch := compose.NewGraphBranch(
		nodes.NewToolExecutorCondition(),
		map[string]bool{
			nodes.NodeToolExecutor: true,
			compose.END:            true,
		},
	)
	if err := g.AddBranch(nodes.NodeChatModel, decisionBranch); err != nil {
		logx.Error().Err(err).Msg("Error adding decision branch")
		return nil, fmt.Errorf("error adding decision branch: %w", err)
	}

	// Limit total run steps to avoid infinite tool loops
	maxSteps := 10 + maxToolCalls*2
	if maxSteps < 20 {
		maxSteps = 20
	}

	runnable, err := g.Compile(ctx, compose.WithMaxRunSteps(maxSteps))
	if err != nil {
		logx.Error().Err(err).Msg("Error compiling graph")
		return nil, fmt.Errorf("error compiling graph: %w", err)
	}

	logx.Debug().Str("agent", cfg.Profile.Name).Msg("Assistant graph built successfully")
	return &graphRunner{runnable: runnable, store: cfg.Identity}, nil
}
