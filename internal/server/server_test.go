package server

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/advisor-agents/server/internal/agent/identity"
	"github.com/advisor-agents/server/internal/agent/model"
	"github.com/advisor-agents/server/internal/domain"
)

type stubRunner struct {
	reply string
	err   error
	last  model.QueryInput
}

func (s *stubRunner) Invoke(ctx context.Context, in model.QueryInput) (string, error) {
	s.last = in
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func testProfile() *domain.Profile {
	return &domain.Profile{
		Name:          "test-agent",
		Title:         "Test Agent",
		SessionPrefix: "test_",
		FallbackReply: "Sorry, I couldn't process that request.",
		Turn: identity.TurnContext{
			Pages:       map[string]string{"homepage": "HOMEPAGE"},
			DefaultPage: "homepage",
		},
		TraitLabels: []domain.TraitLabel{
			{Label: "Budget Range", Empty: "Not discussed"},
		},
	}
}

func newTestServer(runner *stubRunner) (*Server, *identity.Store) {
	store := identity.NewStore(0)
	srv := New(runner, store, testProfile(), model.ServerConfig{StreamDelayMS: 0})
	return srv, store
}

func postCompletions(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/chat/completions", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(&stubRunner{reply: "ok"})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestRoot(t *testing.T) {
	srv, _ := newTestServer(&stubRunner{reply: "ok"})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Status    string   `json:"status"`
		Agent     string   `json:"agent"`
		Endpoints []string `json:"endpoints"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "test-agent", body.Agent)
	assert.NotEmpty(t, body.Endpoints)
}

func TestChatCompletionsNonStreaming(t *testing.T) {
	runner := &stubRunner{reply: "Hello there, how can I help?"}
	srv, _ := newTestServer(runner)

	rec := postCompletions(t, srv.Routes(), `{
		"messages": [
			{"role": "system", "content": "User Name: Priya\nUser ID: ab12cd34"},
			{"role": "user", "content": "what do you offer?"}
		],
		"stream": false
	}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		ID      string `json:"id"`
		Object  string `json:"object"`
		Model   string `json:"model"`
		Choices []struct {
			Message struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"message"`
			FinishReason string `json:"finish_reason"`
		} `json:"choices"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.True(t, strings.HasPrefix(body.ID, "chatcmpl-"))
	assert.Equal(t, "chat.completion", body.Object)
	assert.Equal(t, "test-agent", body.Model)
	require.Len(t, body.Choices, 1)
	assert.Equal(t, "assistant", body.Choices[0].Message.Role)
	assert.Equal(t, "Hello there, how can I help?", body.Choices[0].Message.Content)
	assert.Equal(t, "stop", body.Choices[0].FinishReason)

	assert.Equal(t, "what do you offer?", runner.last.Query)
}

func TestChatCompletionsStreaming(t *testing.T) {
	runner := &stubRunner{reply: "one two three"}
	srv, _ := newTestServer(runner)

	// stream omitted: defaults to true
	rec := postCompletions(t, srv.Routes(), `{
		"messages": [{"role": "user", "content": "hi"}]
	}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	var (
		rebuilt   strings.Builder
		finish    string
		sawDone   bool
		numChunks int
	)
	scanner := bufio.NewScanner(rec.Body)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		payload := strings.TrimPrefix(line, "data: ")
		if payload == "[DONE]" {
			sawDone = true
			continue
		}
		var chunk struct {
			Object  string `json:"object"`
			Choices []struct {
				Delta struct {
					Content string `json:"content"`
				} `json:"delta"`
				FinishReason *string `json:"finish_reason"`
			} `json:"choices"`
		}
		require.NoError(t, json.Unmarshal([]byte(payload), &chunk))
		assert.Equal(t, "chat.completion.chunk", chunk.Object)
		require.Len(t, chunk.Choices, 1)
		rebuilt.WriteString(chunk.Choices[0].Delta.Content)
		if chunk.Choices[0].FinishReason != nil {
			finish = *chunk.Choices[0].FinishReason
		}
		numChunks++
	}

	assert.Equal(t, "one two three", rebuilt.String(), "concatenated deltas must reproduce the reply")
	assert.Equal(t, "stop", finish)
	assert.True(t, sawDone, "stream must end with data: [DONE]")
	// one chunk per token plus the final empty-delta chunk
	assert.Equal(t, 4, numChunks)
}

func TestChatCompletionsRunnerFailureReturnsFallback(t *testing.T) {
	runner := &stubRunner{err: errors.New("model quota exceeded")}
	srv, _ := newTestServer(runner)

	rec := postCompletions(t, srv.Routes(), `{
		"messages": [{"role": "user", "content": "hi"}],
		"stream": false
	}`)

	require.Equal(t, http.StatusOK, rec.Code, "model failures must not surface as 5xx")

	var body struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Choices, 1)
	assert.Equal(t, "Sorry, I couldn't process that request.", body.Choices[0].Message.Content)
}

func TestChatCompletionsMalformedBody(t *testing.T) {
	srv, _ := newTestServer(&stubRunner{reply: "ok"})
	rec := postCompletions(t, srv.Routes(), `{"messages": [`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatCompletionsObservesSystemMessage(t *testing.T) {
	runner := &stubRunner{reply: "hello"}
	srv, store := newTestServer(runner)

	rec := postCompletions(t, srv.Routes(), `{
		"messages": [
			{"role": "system", "content": "User Name: Priya\nUser ID: ab12cd34\nUser Email: priya@example.org"},
			{"role": "user", "content": "who am I?"}
		],
		"custom_session_id": "Priya|test_ab12cd34|contact",
		"stream": false
	}`)
	require.Equal(t, http.StatusOK, rec.Code)

	cached, ok := store.Lookup("Priya|test_ab12cd34|contact")
	require.True(t, ok)
	assert.Equal(t, "Priya", cached.Name)
	assert.Equal(t, "ab12cd34", cached.UserID)

	// The synthesized session carries the parsed identity and page context.
	require.NotNil(t, runner.last.Session)
	require.NotNil(t, runner.last.Session.User)
	assert.Equal(t, "Priya", runner.last.Session.User.Name)
	assert.Equal(t, "ab12cd34", runner.last.Session.User.ID)
	assert.Equal(t, "priya@example.org", runner.last.Session.User.Email)
	assert.Equal(t, "contact", runner.last.Session.CurrentPage)
	assert.Equal(t, "Priya|test_ab12cd34|contact", runner.last.SessionKey)
	assert.Equal(t, "Priya|test_ab12cd34|contact", runner.last.ConversationID)
}

func TestChatCompletionsSeedsIdentityFromSessionID(t *testing.T) {
	runner := &stubRunner{reply: "hello"}
	srv, store := newTestServer(runner)

	// No parseable system message, but the session id names the caller.
	rec := postCompletions(t, srv.Routes(), `{
		"messages": [{"role": "user", "content": "hi"}],
		"custom_session_id": "Sam|test_deadbeef|homepage",
		"stream": false
	}`)
	require.Equal(t, http.StatusOK, rec.Code)

	cached, ok := store.Lookup("Sam|test_deadbeef|homepage")
	require.True(t, ok)
	assert.Equal(t, "Sam", cached.Name)
	assert.Equal(t, "deadbeef", cached.UserID)
}

func TestChatCompletionsGuest(t *testing.T) {
	runner := &stubRunner{reply: "hello"}
	srv, _ := newTestServer(runner)

	rec := postCompletions(t, srv.Routes(), `{
		"messages": [{"role": "user", "content": "hi"}],
		"stream": false
	}`)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, runner.last.Session)
	assert.Nil(t, runner.last.Session.User)
	assert.NotEmpty(t, runner.last.ConversationID)
}

func TestParseVoiceSession(t *testing.T) {
	srv, _ := newTestServer(&stubRunner{})

	tests := []struct {
		name string
		raw  string
		want voiceSession
	}{
		{
			name: "full form",
			raw:  "Priya|test_ab12|contact",
			want: voiceSession{Key: "Priya|test_ab12|contact", FirstName: "Priya", UserID: "ab12", Page: "contact"},
		},
		{
			name: "missing page",
			raw:  "Priya|test_ab12",
			want: voiceSession{Key: "Priya|test_ab12", FirstName: "Priya", UserID: "ab12"},
		},
		{
			name: "anonymous",
			raw:  "|test_ab12|homepage",
			want: voiceSession{Key: "|test_ab12|homepage", UserID: "ab12", Page: "homepage"},
		},
		{
			name: "foreign prefix kept verbatim",
			raw:  "Priya|other_ab12|contact",
			want: voiceSession{Key: "Priya|other_ab12|contact", FirstName: "Priya", UserID: "other_ab12", Page: "contact"},
		},
		{
			name: "empty",
			raw:  "",
			want: voiceSession{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, srv.parseVoiceSession(tt.raw))
		})
	}
}
