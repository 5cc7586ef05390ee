// Package app is the shared composition root for the assistant binaries: it
// loads configuration, connects infrastructure, builds the graph, and runs the
// HTTP server until shutdown.
package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/advisor-agents/server/internal/agent/graph"
	"github.com/advisor-agents/server/internal/agent/identity"
	"github.com/advisor-agents/server/internal/agent/model"
	"github.com/advisor-agents/server/internal/agent/repo"
	"github.com/advisor-agents/server/internal/core"
	"github.com/advisor-agents/server/internal/domain"
	"github.com/advisor-agents/server/internal/server"
	logx "github.com/advisor-agents/server/pkg/logger"
	pkgredis "github.com/advisor-agents/server/pkg/redis"
)

// Config defines all configurable parameters for an assistant binary, sourced
// from environment variables (loaded from .env for local runs).
type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`

	// Infrastructure
	Redis pkgredis.Config
	// DatabaseURL is provisioned by the hosting platform; nothing reads it
	// beyond startup logging yet.
	DatabaseURL string `envconfig:"DATABASE_URL"`

	// LLM provider
	APIKey  string `envconfig:"GEMINI_API_KEY" required:"true"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	// Agent configs
	Chat         model.ChatModelConfig
	Conversation model.ConversationConfig
	Identity     model.IdentityConfig
	Server       model.ServerConfig
}

// ProfileBuilder constructs the domain profile for one assistant.
type ProfileBuilder func(ctx context.Context) (*domain.Profile, error)

// Run boots one assistant end-to-end and blocks until SIGINT/SIGTERM.
func Run(buildProfile ProfileBuilder) error {
	ctx := context.Background()

	if err := godotenv.Load(".env"); err != nil {
		logx.Warn().Err(err).Msg("could not load .env file")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return err
	}

	env := core.ParseEnvironment(cfg.Environment)
	logx.Init(logx.LoggerOpts{Environment: env})

	profile, err := buildProfile(ctx)
	if err != nil {
		return err
	}

	conversationTTL, err := time.ParseDuration(cfg.Conversation.TTL)
	if err != nil {
		return err
	}
	identityTTL, err := time.ParseDuration(cfg.Identity.TTL)
	if err != nil {
		return err
	}

	var conversationRepo model.ConversationRepository
	if cfg.Redis.Enabled() {
		rdb, err := cfg.Redis.New(ctx)
		if err != nil {
			return err
		}
		defer rdb.Close()
		conversationRepo = repo.NewRedisConversationRepository(rdb, profile.Name, conversationTTL)
		logx.Info().Msg("conversation history backed by redis")
	} else {
		conversationRepo = repo.NewMemoryConversationRepository()
		logx.Warn().Msg("REDIS_URL not set, conversation history is in-memory only")
	}

	if cfg.DatabaseURL != "" {
		logx.Info().Msg("DATABASE_URL configured (not used by this service yet)")
	}

	store := identity.NewStore(identityTTL)

	runner, err := graph.BuildAssistantGraph(ctx, graph.Config{
		APIKey:           cfg.APIKey,
		BaseURL:          cfg.BaseURL,
		ChatModel:        cfg.Chat,
		Conversation:     cfg.Conversation,
		ConversationRepo: conversationRepo,
		Identity:         store,
		Profile:          profile,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: server.New(runner, store, profile, cfg.Server).Routes(),
	}

	errCh := make(chan error, 1)
	go func() {
		logx.Info().
			Str("addr", cfg.Server.Addr).
			Str("agent", profile.Name).
			Str("environment", env.String()).
			Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logx.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
