package quizgen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/wordiz/internal/content"
	"github.com/abhisek/wordiz/internal/llm"
)

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns recommended defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1500,
		Temperature: 0.7,
	}
}

// Purpose labels quiz-generation requests in the LLM event log.
const Purpose = "quiz-gen"

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// NewLLMGenerator creates a new LLMGenerator with the given provider and config.
func NewLLMGenerator(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// quizOutput is the raw LLM response before validation.
type quizOutput struct {
	Questions []struct {
		Prompt        string   `json:"prompt"`
		Options       []string `json:"options"`
		CorrectOption string   `json:"correct_option"`
	} `json:"questions"`
}

// Generate asks the provider for n questions and keeps the valid ones.
// It fails if none survive validation.
func (g *LLMGenerator) Generate(ctx context.Context, lesson content.Lesson, n int) ([]content.QuizQuestion, error) {
	req := llm.Request{
		Purpose:     Purpose,
		System:      systemPrompt,
		Prompt:      buildUserMessage(lesson, n),
		Schema:      QuizSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw quizOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	var questions []content.QuizQuestion
	var firstErr error
	for _, r := range raw.Questions {
		if len(questions) == n {
			break
		}
		q := content.QuizQuestion{
			Prompt:        r.Prompt,
			Options:       r.Options,
			CorrectOption: r.CorrectOption,
		}
		if err := content.ValidateQuestion(q); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		questions = append(questions, q)
	}

	if len(questions) == 0 {
		if firstErr != nil {
			return nil, fmt.Errorf("no valid questions generated: %w", firstErr)
		}
		return nil, fmt.Errorf("no questions generated for lesson %q", lesson.ID)
	}
	return questions, nil
}
