package store

import (
	"context"
	"time"
)

// Logical keys for the records kept in the key-value store.
const (
	KeyUserStats   = "userStats"
	KeyUserData    = "userData"
	KeyUserToken   = "userToken"
	KeyTokenSecret = "tokenSecret"
)

// KV is a string key-value store. A missing key is reported through found,
// never as an error.
type KV interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int       // id > After
	Before int       // id < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// Match reports whether an event with the given id and timestamp passes the
// filters. Limit is applied by the caller.
func (o QueryOpts) Match(id int, ts time.Time) bool {
	if o.After > 0 && id <= o.After {
		return false
	}
	if o.Before > 0 && id >= o.Before {
		return false
	}
	if !o.From.IsZero() && ts.Before(o.From) {
		return false
	}
	if !o.To.IsZero() && ts.After(o.To) {
		return false
	}
	return true
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int       `json:"id"`
	Timestamp time.Time `json:"timestamp"`

	Provider     string `json:"provider"`
	Model        string `json:"model"`
	Purpose      string `json:"purpose"`
	InputTokens  int    `json:"input_tokens"`
	OutputTokens int    `json:"output_tokens"`
	LatencyMs    int64  `json:"latency_ms"`
	Success      bool   `json:"success"`
	ErrorMessage string `json:"error_message,omitempty"`
	RequestBody  string `json:"request_body,omitempty"`
	ResponseBody string `json:"response_body,omitempty"`
}

// PurposeUsage aggregates LLM token usage for one purpose.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates LLM token usage for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// QuizResultData captures a finished quiz.
type QuizResultData struct {
	SessionID   string
	Course      string
	Lesson      string
	Correct     int
	Wrong       int
	SuccessRate int
	// Committed is false when the stats commit for this quiz failed.
	Committed bool
}

// QuizResult is a stored quiz result.
type QuizResult struct {
	ID        int       `json:"id"`
	Timestamp time.Time `json:"timestamp"`

	SessionID   string `json:"session_id"`
	Course      string `json:"course"`
	Lesson      string `json:"lesson"`
	Correct     int    `json:"correct"`
	Wrong       int    `json:"wrong"`
	SuccessRate int    `json:"success_rate"`
	Committed   bool   `json:"committed"`
}

// EventRepo provides append and query access to the event log.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns a single event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	// LLMUsageByPurpose aggregates token usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)

	// AppendQuizResult records a finished quiz.
	AppendQuizResult(ctx context.Context, data QuizResultData) error

	// RecentQuizResults returns quiz results, newest first.
	RecentQuizResults(ctx context.Context, opts QueryOpts) ([]QuizResult, error)
}
