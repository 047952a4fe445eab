package service

import (
	"context"
	"encoding/json"
	"learnhub_backend/internal/config"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFakeAIServer(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 2)

		resp := ChatCompletionResponse{}
		resp.Choices = []struct {
			Message AIChatMessage `json:"message"`
		}{{Message: AIChatMessage{Role: "assistant", Content: reply}}}
		json.NewEncoder(w).Encode(resp)
	}))
}

func newAIClient(baseURL string) *AIService {
	return NewAIService(config.AIConfig{
		BaseURL: baseURL,
		APIKey:  "test-key",
		Model:   "deepseek-chat",
	})
}

const sampleOutlineJSON = `{
	"title": "Go 入门",
	"description": "从零开始学 Go",
	"category": "programming",
	"level": "beginner",
	"modules": [
		{"title": "基础", "lessons": [{"title": "环境搭建", "type": "video"}]}
	]
}`

func TestGenerateOutlineParsesResponse(t *testing.T) {
	srv := newFakeAIServer(t, sampleOutlineJSON)
	defer srv.Close()

	outline, err := newAIClient(srv.URL).GenerateOutline(context.Background(), "一些讲义", "")
	require.NoError(t, err)
	assert.Equal(t, "Go 入门", outline.Title)
	require.Len(t, outline.Modules, 1)
	require.Len(t, outline.Modules[0].Lessons, 1)
	assert.Equal(t, "环境搭建", outline.Modules[0].Lessons[0].Title)
}

func TestGenerateOutlineStripsCodeFence(t *testing.T) {
	srv := newFakeAIServer(t, "```json\n"+sampleOutlineJSON+"\n```")
	defer srv.Close()

	outline, err := newAIClient(srv.URL).GenerateOutline(context.Background(), "一些讲义", "")
	require.NoError(t, err)
	assert.Equal(t, "Go 入门", outline.Title)
}

func TestGenerateOutlineMalformedJSON(t *testing.T) {
	srv := newFakeAIServer(t, "这不是JSON")
	defer srv.Close()

	_, err := newAIClient(srv.URL).GenerateOutline(context.Background(), "一些讲义", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed outline")
}

func TestGenerateOutlineIncompleteOutline(t *testing.T) {
	srv := newFakeAIServer(t, `{"title":"Go 入门","modules":[]}`)
	defer srv.Close()

	_, err := newAIClient(srv.URL).GenerateOutline(context.Background(), "一些讲义", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "incomplete outline")
}

func TestChatPropagatesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer srv.Close()

	_, err := newAIClient(srv.URL).Chat(context.Background(), "sys", "user")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripCodeFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence(`  {"a":1}  `))
}
