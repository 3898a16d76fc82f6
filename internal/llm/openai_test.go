package llm_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/abhisek/wordiz/internal/llm"
	"github.com/abhisek/wordiz/internal/quizgen"
)

func newChatServer(t *testing.T, handler http.HandlerFunc) string {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server.URL + "/v1"
}

func newTestOpenAIProvider(t *testing.T, handler http.HandlerFunc) *llm.OpenAIProvider {
	t.Helper()
	p, err := llm.NewOpenAIProvider(llm.OpenAIConfig{
		APIKey:  "test-key",
		Model:   "gpt-mini",
		BaseURL: newChatServer(t, handler),
	})
	if err != nil {
		t.Fatalf("NewOpenAIProvider: %v", err)
	}
	return p
}

func chatCompletion(content, finishReason string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1234567890,
		"model":   "gpt-4.1-mini",
		"choices": []map[string]any{
			{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": finishReason,
			},
		},
		"usage": map[string]any{
			"prompt_tokens":     240,
			"completion_tokens": 130,
			"total_tokens":      370,
		},
	}
}

func chatError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{"type": code, "message": code, "code": code},
	})
}

func TestOpenAIProvider_QuizRequest(t *testing.T) {
	var body struct {
		Model          string `json:"model"`
		ResponseFormat struct {
			Type       string `json:"type"`
			JSONSchema struct {
				Name   string         `json:"name"`
				Strict bool           `json:"strict"`
				Schema map[string]any `json:"schema"`
			} `json:"json_schema"`
		} `json:"response_format"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	handler := func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletion(string(llm.SampleQuiz().Content), "stop"))
	}

	p := newTestOpenAIProvider(t, handler)
	resp, err := p.Generate(context.Background(), llm.Request{
		Purpose:   quizgen.Purpose,
		System:    "You are a vocabulary tutor.",
		Prompt:    "Write 3 questions.",
		Schema:    quizgen.QuizSchema,
		MaxTokens: 1500,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Usage.InputTokens != 240 || resp.Usage.OutputTokens != 130 {
		t.Fatalf("usage = %+v", resp.Usage)
	}
	if resp.Model != "gpt-4.1-mini" {
		t.Fatalf("model = %q", resp.Model)
	}

	if body.Model != "gpt-4.1-mini" {
		t.Errorf("sent model = %q, want alias resolved", body.Model)
	}
	if body.ResponseFormat.Type != "json_schema" || body.ResponseFormat.JSONSchema.Name != "vocab-quiz" {
		t.Errorf("response_format = %+v", body.ResponseFormat)
	}
	if !body.ResponseFormat.JSONSchema.Strict {
		t.Error("schema should be strict")
	}
	if len(body.Messages) != 2 || body.Messages[0].Role != "system" || body.Messages[1].Content != "Write 3 questions." {
		t.Errorf("messages = %+v", body.Messages)
	}
}

func TestOpenAIProvider_Truncated(t *testing.T) {
	p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletion(`{"questions":[`, "length"))
	})
	_, err := p.Generate(context.Background(), llm.Request{Prompt: "quiz", Schema: quizgen.QuizSchema, MaxTokens: 10})
	if !llm.IsKind(err, llm.KindTruncated) {
		t.Fatalf("expected truncated, got %v", err)
	}
}

func TestOpenAIProvider_StatusKinds(t *testing.T) {
	tests := []struct {
		status int
		code   string
		want   llm.ErrorKind
	}{
		{http.StatusTooManyRequests, "rate_limit_exceeded", llm.KindRateLimited},
		{http.StatusInternalServerError, "server_error", llm.KindUnavailable},
		{http.StatusUnauthorized, "invalid_api_key", llm.KindRejected},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
				chatError(w, tt.status, tt.code)
			})
			_, err := p.Generate(context.Background(), llm.Request{Prompt: "quiz", MaxTokens: 100})
			if !llm.IsKind(err, tt.want) {
				t.Fatalf("status %d: expected %s, got %v", tt.status, tt.want, err)
			}
		})
	}
}

func TestOpenRouterProvider(t *testing.T) {
	if _, err := llm.NewOpenRouterProvider(llm.OpenRouterConfig{}); err == nil {
		t.Fatal("expected error without API key")
	}

	baseURL := newChatServer(t, func(w http.ResponseWriter, r *http.Request) {
		chatError(w, http.StatusTooManyRequests, "rate_limit_exceeded")
	})
	p, err := llm.NewOpenRouterProvider(llm.OpenRouterConfig{
		APIKey:  "sk-or",
		Model:   "google/gemini-2.0-flash-001",
		BaseURL: baseURL,
	})
	if err != nil {
		t.Fatalf("NewOpenRouterProvider: %v", err)
	}
	if p.ModelID() != "google/gemini-2.0-flash-001" {
		t.Fatalf("ModelID = %q, OpenRouter IDs pass through", p.ModelID())
	}

	_, err = p.Generate(context.Background(), llm.Request{Prompt: "quiz", MaxTokens: 100})
	if !llm.IsKind(err, llm.KindRateLimited) {
		t.Fatalf("expected rate limit, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "openrouter: ") {
		t.Errorf("error should name openrouter: %v", err)
	}
}
