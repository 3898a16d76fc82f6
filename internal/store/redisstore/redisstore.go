// Package redisstore is a Redis storage backend. Records live under a key
// prefix; events are kept in capped sorted sets scored by their ID.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/abhisek/wordiz/internal/store"
)

// DefaultPrefix namespaces every key written by the store.
const DefaultPrefix = "wordiz:"

// DefaultMaxEvents caps each event set.
const DefaultMaxEvents = 1000

// Store is a Redis implementation of store.Backend.
type Store struct {
	client    *redis.Client
	prefix    string
	maxEvents int64
	now       func() time.Time
}

var _ store.Backend = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithPrefix overrides the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) { s.prefix = prefix }
}

// WithMaxEvents overrides how many events of each kind are retained.
func WithMaxEvents(n int) Option {
	return func(s *Store) { s.maxEvents = int64(n) }
}

// New wraps an existing client.
func New(client *redis.Client, opts ...Option) *Store {
	s := &Store{
		client:    client,
		prefix:    DefaultPrefix,
		maxEvents: DefaultMaxEvents,
		now:       time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Open connects to addr and verifies the connection with PING.
func Open(ctx context.Context, addr, password string, db int, opts ...Option) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return New(client, opts...), nil
}

func (s *Store) KV() store.KV               { return s }
func (s *Store) EventRepo() store.EventRepo { return s }
func (s *Store) Close() error               { return s.client.Close() }

func (s *Store) key(name string) string {
	return s.prefix + name
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return v, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (s *Store) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("remove %q: %w", key, err)
	}
	return nil
}

// appendEvent assigns the next ID for kind, lets build fill in the record,
// and adds it to the capped set.
func (s *Store) appendEvent(ctx context.Context, kind string, build func(id int, ts time.Time) any) error {
	id, err := s.client.Incr(ctx, s.key(kind+":seq")).Result()
	if err != nil {
		return fmt.Errorf("next %s id: %w", kind, err)
	}

	b, err := json.Marshal(build(int(id), s.now().UTC()))
	if err != nil {
		return fmt.Errorf("encode %s event: %w", kind, err)
	}

	setKey := s.key(kind + ":events")
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZAdd(ctx, setKey, redis.Z{Score: float64(id), Member: string(b)})
		pipe.ZRemRangeByRank(ctx, setKey, 0, -(s.maxEvents + 1))
		return nil
	})
	if err != nil {
		return fmt.Errorf("append %s event: %w", kind, err)
	}
	return nil
}

// queryEvents returns raw event payloads newest first. When time filters are
// set the limit is left to the caller, which filters after decoding.
func (s *Store) queryEvents(ctx context.Context, kind string, opts store.QueryOpts) ([]string, error) {
	rng := &redis.ZRangeBy{Min: "-inf", Max: "+inf"}
	if opts.After > 0 {
		rng.Min = "(" + strconv.Itoa(opts.After)
	}
	if opts.Before > 0 {
		rng.Max = "(" + strconv.Itoa(opts.Before)
	}
	if opts.Limit > 0 && opts.From.IsZero() && opts.To.IsZero() {
		rng.Count = int64(opts.Limit)
	}

	vals, err := s.client.ZRevRangeByScore(ctx, s.key(kind+":events"), rng).Result()
	if err != nil {
		return nil, fmt.Errorf("query %s events: %w", kind, err)
	}
	return vals, nil
}

func (s *Store) AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error {
	return s.appendEvent(ctx, "llm", func(id int, ts time.Time) any {
		return store.LLMEvent{
			ID:           id,
			Timestamp:    ts,
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
		}
	})
}

func (s *Store) QueryLLMEvents(ctx context.Context, opts store.QueryOpts) ([]store.LLMEvent, error) {
	vals, err := s.queryEvents(ctx, "llm", opts)
	if err != nil {
		return nil, err
	}

	var out []store.LLMEvent
	for _, v := range vals {
		var e store.LLMEvent
		if err := json.Unmarshal([]byte(v), &e); err != nil {
			return nil, fmt.Errorf("decode LLM event: %w", err)
		}
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

func (s *Store) GetLLMEvent(ctx context.Context, id int) (*store.LLMEvent, error) {
	score := strconv.Itoa(id)
	vals, err := s.client.ZRangeByScore(ctx, s.key("llm:events"), &redis.ZRangeBy{Min: score, Max: score}).Result()
	if err != nil {
		return nil, fmt.Errorf("get LLM event %d: %w", id, err)
	}
	if len(vals) == 0 {
		return nil, nil
	}
	var e store.LLMEvent
	if err := json.Unmarshal([]byte(vals[0]), &e); err != nil {
		return nil, fmt.Errorf("decode LLM event: %w", err)
	}
	return &e, nil
}

func (s *Store) LLMUsageByPurpose(ctx context.Context) ([]store.PurposeUsage, error) {
	events, err := s.QueryLLMEvents(ctx, store.QueryOpts{})
	if err != nil {
		return nil, err
	}
	return store.SummarizeByPurpose(events), nil
}

func (s *Store) LLMUsageByModel(ctx context.Context) ([]store.ModelUsage, error) {
	events, err := s.QueryLLMEvents(ctx, store.QueryOpts{})
	if err != nil {
		return nil, err
	}
	return store.SummarizeByModel(events), nil
}

func (s *Store) AppendQuizResult(ctx context.Context, data store.QuizResultData) error {
	return s.appendEvent(ctx, "quiz", func(id int, ts time.Time) any {
		return store.QuizResult{
			ID:          id,
			Timestamp:   ts,
			SessionID:   data.SessionID,
			Course:      data.Course,
			Lesson:      data.Lesson,
			Correct:     data.Correct,
			Wrong:       data.Wrong,
			SuccessRate: data.SuccessRate,
			Committed:   data.Committed,
		}
	})
}

func (s *Store) RecentQuizResults(ctx context.Context, opts store.QueryOpts) ([]store.QuizResult, error) {
	vals, err := s.queryEvents(ctx, "quiz", opts)
	if err != nil {
		return nil, err
	}

	var out []store.QuizResult
	for _, v := range vals {
		var q store.QuizResult
		if err := json.Unmarshal([]byte(v), &q); err != nil {
			return nil, fmt.Errorf("decode quiz result: %w", err)
		}
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
