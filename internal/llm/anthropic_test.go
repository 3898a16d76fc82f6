package llm_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/abhisek/wordiz/internal/llm"
	"github.com/abhisek/wordiz/internal/quizgen"
)

func newTestAnthropicProvider(t *testing.T, handler http.HandlerFunc) *llm.AnthropicProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := llm.NewAnthropicProvider(llm.AnthropicConfig{
		APIKey:  "test-key",
		Model:   "claude-haiku",
		BaseURL: server.URL,
	})
	if err != nil {
		t.Fatalf("NewAnthropicProvider: %v", err)
	}
	return p
}

func anthropicMessage(text, stopReason string) map[string]any {
	return map[string]any{
		"id":   "msg_test",
		"type": "message",
		"role": "assistant",
		"content": []map[string]any{
			{"type": "text", "text": text},
		},
		"model":       "claude-haiku-4-5",
		"stop_reason": stopReason,
		"usage": map[string]any{
			"input_tokens":  250,
			"output_tokens": 135,
		},
	}
}

func anthropicError(w http.ResponseWriter, status int, errType string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"type":  "error",
		"error": map[string]any{"type": errType, "message": errType},
	})
}

func TestAnthropicProvider_QuizRequest(t *testing.T) {
	var body map[string]any
	handler := func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(anthropicMessage(string(llm.SampleQuiz().Content), "end_turn"))
	}

	p := newTestAnthropicProvider(t, handler)
	if p.ModelID() != "claude-haiku-4-5" {
		t.Fatalf("ModelID = %q, want alias resolved", p.ModelID())
	}

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
	if resp.Usage.InputTokens != 250 || resp.Usage.OutputTokens != 135 {
		t.Fatalf("usage = %+v", resp.Usage)
	}
	if resp.Model != "claude-haiku-4-5" {
		t.Fatalf("model = %q", resp.Model)
	}
	if err := quizgen.QuizSchema.Validate(resp.Content); err != nil {
		t.Fatalf("content does not validate: %v", err)
	}

	if body["model"] != "claude-haiku-4-5" {
		t.Errorf("sent model = %v", body["model"])
	}
	oc, _ := body["output_config"].(map[string]any)
	format, _ := oc["format"].(map[string]any)
	schema, _ := format["schema"].(map[string]any)
	if schema["type"] != "object" {
		t.Errorf("request carries no quiz schema: %v", body["output_config"])
	}
}

func TestAnthropicProvider_InvalidOutput(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(anthropicMessage(`{"questions":[{"prompt":"p"}]}`, "end_turn"))
	}

	p := newTestAnthropicProvider(t, handler)
	_, err := p.Generate(context.Background(), llm.Request{Prompt: "quiz", Schema: quizgen.QuizSchema, MaxTokens: 100})
	if !llm.IsKind(err, llm.KindInvalidOutput) {
		t.Fatalf("expected invalid output, got %v", err)
	}
}

func TestAnthropicProvider_Truncated(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(anthropicMessage(`{"questions":[{"prompt":`, "max_tokens"))
	}

	p := newTestAnthropicProvider(t, handler)
	_, err := p.Generate(context.Background(), llm.Request{Prompt: "quiz", Schema: quizgen.QuizSchema, MaxTokens: 10})
	if !llm.IsKind(err, llm.KindTruncated) {
		t.Fatalf("expected truncated, got %v", err)
	}
}

func TestAnthropicProvider_RateLimit(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "7")
		anthropicError(w, http.StatusTooManyRequests, "rate_limit_error")
	}

	p := newTestAnthropicProvider(t, handler)
	_, err := p.Generate(context.Background(), llm.Request{Prompt: "quiz", MaxTokens: 100})

	var perr *llm.Error
	if !errors.As(err, &perr) || perr.Kind != llm.KindRateLimited {
		t.Fatalf("expected rate limit, got %T (%v)", err, err)
	}
	if perr.RetryAfter != 7*time.Second {
		t.Errorf("RetryAfter = %v, want 7s", perr.RetryAfter)
	}
	if perr.Provider != llm.ProviderAnthropic {
		t.Errorf("Provider = %q", perr.Provider)
	}
}

func TestAnthropicProvider_StatusKinds(t *testing.T) {
	tests := []struct {
		status  int
		errType string
		want    llm.ErrorKind
	}{
		{http.StatusInternalServerError, "api_error", llm.KindUnavailable},
		{529, "overloaded_error", llm.KindUnavailable},
		{http.StatusUnauthorized, "authentication_error", llm.KindRejected},
		{http.StatusBadRequest, "invalid_request_error", llm.KindRejected},
	}
	for _, tt := range tests {
		t.Run(tt.errType, func(t *testing.T) {
			p := newTestAnthropicProvider(t, func(w http.ResponseWriter, r *http.Request) {
				anthropicError(w, tt.status, tt.errType)
			})
			_, err := p.Generate(context.Background(), llm.Request{Prompt: "quiz", MaxTokens: 100})
			if !llm.IsKind(err, tt.want) {
				t.Fatalf("status %d: expected %s, got %v", tt.status, tt.want, err)
			}
		})
	}
}

func TestNewAnthropicProviderRequiresKey(t *testing.T) {
	if _, err := llm.NewAnthropicProvider(llm.AnthropicConfig{}); err == nil {
		t.Fatal("expected error without API key")
	}
}
