package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is one canned answer of a MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider replays canned answers in order and records every request.
// When the queue runs dry it repeats its fallback answer, or fails as
// unavailable if it has none.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	fallback  *MockResponse
	Calls     []Request
}

// NewMockProvider creates a MockProvider with the given answers queued.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// Repeat sets the answer given once the queue is empty.
func (m *MockProvider) Repeat(resp MockResponse) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fallback = &resp
	return m
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	var resp MockResponse
	switch {
	case len(m.responses) > 0:
		resp = m.responses[0]
		m.responses = m.responses[1:]
	case m.fallback != nil:
		resp = *m.fallback
	default:
		return nil, &Error{Kind: KindUnavailable, Provider: ProviderMock}
	}
	if resp.Err != nil {
		return nil, resp.Err
	}
	return finish(ProviderMock, req, resp.Content, false, resp.Usage, "mock")
}

func (m *MockProvider) ModelID() string {
	return "mock"
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// MockQuestion is one multiple-choice question of a canned quiz answer.
type MockQuestion struct {
	Prompt  string
	Options []string
	Correct string
}

// QuizResponse builds a canned answer in the vocab-quiz shape:
// {"questions": [{"prompt", "options", "correct_option"}]}.
func QuizResponse(questions ...MockQuestion) MockResponse {
	type item struct {
		Prompt        string   `json:"prompt"`
		Options       []string `json:"options"`
		CorrectOption string   `json:"correct_option"`
	}
	out := struct {
		Questions []item `json:"questions"`
	}{Questions: make([]item, 0, len(questions))}
	for _, q := range questions {
		out.Questions = append(out.Questions, item{Prompt: q.Prompt, Options: q.Options, CorrectOption: q.Correct})
	}

	raw, err := json.Marshal(out)
	if err != nil {
		return MockResponse{Err: err}
	}
	return MockResponse{
		Content: raw,
		Usage:   Usage{InputTokens: 250, OutputTokens: 45 * len(questions)},
	}
}

// SampleQuiz is the answer the mock provider gives when it has nothing
// queued: three questions over the built-in shopping lesson.
func SampleQuiz() MockResponse {
	return QuizResponse(
		MockQuestion{
			Prompt:  `What is the Turkish translation of "Price"?`,
			Options: []string{"Fiyat", "Ucuz", "Pahalı", "Fiş"},
			Correct: "Fiyat",
		},
		MockQuestion{
			Prompt:  `What is the Turkish translation of "Cash"?`,
			Options: []string{"Beden", "Nakit", "Pazar", "Ucuz"},
			Correct: "Nakit",
		},
		MockQuestion{
			Prompt:  `What is the Turkish translation of "Discount"?`,
			Options: []string{"Fiş", "Pahalı", "İndirim", "Fiyat"},
			Correct: "İndirim",
		},
	)
}
