// Package memstore is an in-memory storage backend. Nothing survives the
// process; it backs tests and the "memory" backend setting.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/abhisek/wordiz/internal/store"
)

// Store is an in-memory implementation of store.Backend.
type Store struct {
	mu      sync.RWMutex
	values  map[string]string
	llm     []store.LLMEvent
	quizzes []store.QuizResult
	now     func() time.Time
}

var _ store.Backend = (*Store)(nil)

func New() *Store {
	return &Store{
		values: make(map[string]string),
		now:    time.Now,
	}
}

func (s *Store) KV() store.KV               { return s }
func (s *Store) EventRepo() store.EventRepo { return s }
func (s *Store) Close() error               { return nil }

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *Store) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

func (s *Store) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.llm = append(s.llm, store.LLMEvent{
		ID:           len(s.llm) + 1,
		Timestamp:    s.now().UTC(),
		Provider:     data.Provider,
		Model:        data.Model,
		Purpose:      data.Purpose,
		InputTokens:  data.InputTokens,
		OutputTokens: data.OutputTokens,
		LatencyMs:    data.LatencyMs,
		Success:      data.Success,
		ErrorMessage: data.ErrorMessage,
		RequestBody:  data.RequestBody,
		ResponseBody: data.ResponseBody,
	})
	return nil
}

func (s *Store) QueryLLMEvents(_ context.Context, opts store.QueryOpts) ([]store.LLMEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []store.LLMEvent
	for i := len(s.llm) - 1; i >= 0; i-- {
		e := s.llm[i]
		if !opts.Match(e.ID, e.Timestamp) {
			continue
		}
		out = append(out, e)
		if opts.Limit > 0 && len(out) == opts.Limit {
			break
		}
	}
	return out, nil
}

func (s *Store) GetLLMEvent(_ context.Context, id int) (*store.LLMEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id < 1 || id > len(s.llm) {
		return nil, nil
	}
	e := s.llm[id-1]
	return &e, nil
}

func (s *Store) LLMUsageByPurpose(_ context.Context) ([]store.PurposeUsage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return store.SummarizeByPurpose(s.llm), nil
}

func (s *Store) LLMUsageByModel(_ context.Context) ([]store.ModelUsage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return store.SummarizeByModel(s.llm), nil
}

func (s *Store) AppendQuizResult(_ context.Context, data store.QuizResultData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quizzes = append(s.quizzes, store.QuizResult{
		ID:          len(s.quizzes) + 1,
		Timestamp:   s.now().UTC(),
		SessionID:   data.SessionID,
		Course:      data.Course,
		Lesson:      data.Lesson,
		Correct:     data.Correct,
		Wrong:       data.Wrong,
		SuccessRate: data.SuccessRate,
		Committed:   data.Committed,
	})
	return nil
}

func (s *Store) RecentQuizResults(_ context.Context, opts store.QueryOpts) ([]store.QuizResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []store.QuizResult
	for i := len(s.quizzes) - 1; i >= 0; i-- {
		q := s.quizzes[i]
		if !opts.Match(q.ID, q.Timestamp) {
			continue
		}
		out = append(out, q)
		if opts.Limit > 0 && len(out) == opts.Limit {
			break
		}
	}
	return out, nil
}
