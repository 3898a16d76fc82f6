package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// ErrorKind classifies a provider failure for the retry decorator.
type ErrorKind int

const (
	KindUnavailable   ErrorKind = iota // network failure or 5xx
	KindRateLimited                    // 429
	KindRejected                       // other 4xx: bad key, bad request
	KindInvalidOutput                  // answer does not match the schema
	KindTruncated                      // answer cut off by the token budget
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnavailable:
		return "unavailable"
	case KindRateLimited:
		return "rate limited"
	case KindRejected:
		return "rejected"
	case KindInvalidOutput:
		return "invalid output"
	case KindTruncated:
		return "truncated"
	}
	return "unknown"
}

// Error is the error every provider returns.
type Error struct {
	Kind     ErrorKind
	Provider string

	// RetryAfter is the server's requested wait for KindRateLimited.
	RetryAfter time.Duration

	// Content is the raw answer for KindInvalidOutput and KindTruncated.
	Content json.RawMessage

	Err error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Provider, e.Kind)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether err is, or wraps, a provider error of kind k.
func IsKind(err error, k ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

// statusError classifies a failed HTTP exchange. Status 0 means no response
// was received.
func statusError(provider string, status int, header http.Header, err error) *Error {
	e := &Error{Kind: KindUnavailable, Provider: provider, Err: err}
	switch {
	case status == http.StatusTooManyRequests:
		e.Kind = KindRateLimited
		if header != nil {
			e.RetryAfter = parseRetryAfter(header.Get("Retry-After"))
		}
	case status >= 400 && status < 500:
		e.Kind = KindRejected
	}
	return e
}

// parseRetryAfter reads the delay-seconds form of Retry-After.
func parseRetryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(v)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
