package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/advisor-agents/server/internal/agent/identity"
	"github.com/advisor-agents/server/internal/agent/model"
	logx "github.com/advisor-agents/server/pkg/logger"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Messages []chatMessage `json:"messages"`
	Model    string        `json:"model,omitempty"`
	// Stream defaults to true when omitted, matching the voice platform's
	// expectations.
	Stream          *bool  `json:"stream,omitempty"`
	CustomSessionID string `json:"custom_session_id,omitempty"`
	SessionID       string `json:"session_id,omitempty"`
}

type chunkDelta struct {
	Content string `json:"content,omitempty"`
}

type chunkChoice struct {
	Index        int         `json:"index"`
	Delta        chunkDelta  `json:"delta"`
	FinishReason interface{} `json:"finish_reason"`
}

type completionChunk struct {
	ID      string        `json:"id"`
	Object  string        `json:"object"`
	Created int64         `json:"created,omitempty"`
	Model   string        `json:"model,omitempty"`
	Choices []chunkChoice `json:"choices"`
}

type completionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionChoice struct {
	Index        int               `json:"index"`
	Message      completionMessage `json:"message"`
	FinishReason string            `json:"finish_reason"`
}

type chatCompletion struct {
	ID      string             `json:"id"`
	Object  string             `json:"object"`
	Created int64              `json:"created"`
	Model   string             `json:"model"`
	Choices []completionChoice `json:"choices"`
}

// voiceSession is the metadata packed into the platform's session id,
// "firstName|<prefix><userId>|<page>".
type voiceSession struct {
	Key       string
	FirstName string
	UserID    string
	Page      string
}

func (s *Server) parseVoiceSession(raw string) voiceSession {
	vs := voiceSession{Key: raw}
	parts := strings.Split(raw, "|")
	if len(parts) > 0 {
		vs.FirstName = strings.TrimSpace(parts[0])
	}
	if len(parts) > 1 {
		vs.UserID = strings.TrimPrefix(strings.TrimSpace(parts[1]), s.profile.SessionPrefix)
	}
	if len(parts) > 2 {
		vs.Page = strings.TrimSpace(parts[2])
	}
	return vs
}

func (s *Server) handleChatCompletions(w http.ResponseWriter, r *http.Request) {
	var req chatCompletionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	rawSession := req.CustomSessionID
	if rawSession == "" {
		rawSession = req.SessionID
	}
	vs := s.parseVoiceSession(rawSession)

	// The platform packs user context into the last system message; parse it
	// into the identity store before synthesizing the session.
	var systemText string
	for _, m := range req.Messages {
		if m.Role == "system" {
			systemText = m.Content
		}
	}
	extracted := s.store.Observe(vs.Key, systemText)
	if !extracted.HasSignal() && vs.FirstName != "" {
		s.store.Put(vs.Key, identity.Identity{UserID: vs.UserID, Name: vs.FirstName})
	}

	var query string
	for i := len(req.Messages) - 1; i >= 0; i-- {
		if req.Messages[i].Role == "user" {
			query = req.Messages[i].Content
			break
		}
	}

	session := s.synthesizeSession(vs)

	conversationID := vs.Key
	if conversationID == "" {
		conversationID = "voice-" + uuid.NewString()[:8]
	}

	content, err := s.runner.Invoke(r.Context(), model.QueryInput{
		ConversationID: conversationID,
		SessionKey:     vs.Key,
		Query:          query,
		Session:        session,
	})
	if err != nil {
		logx.Error().Err(err).Str("conversation_id", conversationID).Msg("assistant run failed, returning fallback reply")
		content = s.profile.FallbackReply
	}

	if req.Stream == nil || *req.Stream {
		s.streamCompletion(w, r, content)
		return
	}

	writeJSON(w, http.StatusOK, chatCompletion{
		ID:      newCompletionID(),
		Object:  "chat.completion",
		Created: time.Now().Unix(),
		Model:   s.profile.Name,
		Choices: []completionChoice{{
			Index:        0,
			Message:      completionMessage{Role: "assistant", Content: content},
			FinishReason: "stop",
		}},
	})
}

// synthesizeSession builds a per-request session from the identity store. The
// session is populated only when the stored identity carries a name or id; it
// is never written back to any long-lived state.
func (s *Server) synthesizeSession(vs voiceSession) *model.SessionState {
	session := &model.SessionState{CurrentPage: vs.Page}
	for _, tl := range s.profile.TraitLabels {
		session.Traits = append(session.Traits, model.Trait{Label: tl.Label, Empty: tl.Empty})
	}
	if cached, ok := s.store.Lookup(vs.Key); ok && cached.HasSignal() {
		session.User = &model.UserProfile{
			ID:        cached.UserID,
			Name:      cached.Name,
			FirstName: cached.Name,
			Email:     cached.Email,
		}
	}
	return session
}

func (s *Server) streamCompletion(w http.ResponseWriter, r *http.Request, content string) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "streaming unsupported"})
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	id := newCompletionID()
	created := time.Now().Unix()
	delay := time.Duration(s.config.StreamDelayMS) * time.Millisecond

	words := strings.Split(content, " ")
	for i, word := range words {
		token := word
		if i < len(words)-1 {
			token += " "
		}
		writeSSE(w, completionChunk{
			ID:      id,
			Object:  "chat.completion.chunk",
			Created: created,
			Model:   s.profile.Name,
			Choices: []chunkChoice{{Index: 0, Delta: chunkDelta{Content: token}, FinishReason: nil}},
		})
		flusher.Flush()

		if delay > 0 {
			select {
			case <-r.Context().Done():
				return
			case <-time.After(delay):
			}
		} else if r.Context().Err() != nil {
			return
		}
	}

	writeSSE(w, completionChunk{
		ID:      id,
		Object:  "chat.completion.chunk",
		Choices: []chunkChoice{{Index: 0, Delta: chunkDelta{}, FinishReason: "stop"}},
	})
	fmt.Fprint(w, "data: [DONE]\n\n")
	flusher.Flush()
}

func newCompletionID() string {
	return "chatcmpl-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

func writeSSE(w http.ResponseWriter, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "data: %s\n\n", data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logx.Error().Err(err).Msg("encode response")
	}
}
