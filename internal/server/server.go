// Package server exposes the assistant over an OpenAI-compatible HTTP surface
// so a voice platform can drive it as a custom language model.
package server

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/rs/cors"

	"github.com/advisor-agents/server/internal/agent/graph"
	"github.com/advisor-agents/server/internal/agent/identity"
	"github.com/advisor-agents/server/internal/agent/model"
	"github.com/advisor-agents/server/internal/domain"
)

// Server wires the assistant runner and identity store behind HTTP handlers.
type Server struct {
	runner  graph.Runner
	store   *identity.Store
	profile *domain.Profile
	config  model.ServerConfig
}

// New builds a Server for one domain profile.
func New(runner graph.Runner, store *identity.Store, profile *domain.Profile, config model.ServerConfig) *Server {
	return &Server{
		runner:  runner,
		store:   store,
		profile: profile,
		config:  config,
	}
}

// Routes assembles the router with permissive CORS for browser front-ends.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	}).Handler)

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)
	r.Post("/chat/completions", s.handleChatCompletions)

	return r
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"agent":  s.profile.Name,
		"endpoints": []string{
			"/chat/completions (CLM for Hume Voice)",
			"/health",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
