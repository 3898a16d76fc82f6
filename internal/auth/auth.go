// Package auth implements local sign-in. Credentials are only checked for
// presence; the signed-in profile is kept in the store together with an
// HS256 session token whose signing secret is generated per install.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/abhisek/wordiz/internal/store"
)

var (
	ErrMissingCredentials = errors.New("email and password are required")
	ErrMissingName        = errors.New("name is required to sign up")
)

// DefaultTokenTTL is how long a session token stays valid.
const DefaultTokenTTL = 30 * 24 * time.Hour

const issuer = "wordiz"

// Profile is the signed-in user.
type Profile struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	LastLogin time.Time `json:"lastLogin"`
}

// Credentials are what the sign-in form collects. Name is only required when
// signing up.
type Credentials struct {
	Name     string
	Email    string
	Password string
}

// StatsResetter clears learning progress on logout.
type StatsResetter interface {
	Reset(ctx context.Context) error
}

// Service signs users in and out.
type Service struct {
	kv     store.KV
	stats  StatsResetter
	ttl    time.Duration
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithTokenTTL sets the session token lifetime.
func WithTokenTTL(d time.Duration) Option {
	return func(s *Service) { s.ttl = d }
}

// WithClock overrides the clock used for login times and token validation.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLogger sets the logger for sign-in events.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// NewService creates a Service. stats may be nil, in which case logout keeps
// the learning progress.
func NewService(kv store.KV, stats StatsResetter, opts ...Option) *Service {
	s := &Service{
		kv:     kv,
		stats:  stats,
		ttl:    DefaultTokenTTL,
		now:    time.Now,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Login signs in an existing user. When the stored profile has the same
// email, its name is kept if none is given.
func (s *Service) Login(ctx context.Context, creds Credentials) (Profile, error) {
	creds = trim(creds)
	if creds.Email == "" || creds.Password == "" {
		return Profile{}, ErrMissingCredentials
	}
	if creds.Name == "" {
		if prev, found, err := s.loadProfile(ctx); err == nil && found && strings.EqualFold(prev.Email, creds.Email) {
			creds.Name = prev.Name
		}
	}
	return s.start(ctx, creds)
}

// SignUp signs in a new user, which also needs a name.
func (s *Service) SignUp(ctx context.Context, creds Credentials) (Profile, error) {
	creds = trim(creds)
	if creds.Email == "" || creds.Password == "" {
		return Profile{}, ErrMissingCredentials
	}
	if creds.Name == "" {
		return Profile{}, ErrMissingName
	}
	return s.start(ctx, creds)
}

func (s *Service) start(ctx context.Context, creds Credentials) (Profile, error) {
	now := s.now()
	p := Profile{
		Name:      creds.Name,
		Email:     creds.Email,
		LastLogin: now.UTC(),
	}

	token, err := s.issue(ctx, p.Email, now)
	if err != nil {
		return Profile{}, err
	}

	b, err := json.Marshal(p)
	if err != nil {
		return Profile{}, fmt.Errorf("encode profile: %w", err)
	}
	if err := s.kv.Set(ctx, store.KeyUserData, string(b)); err != nil {
		return Profile{}, fmt.Errorf("save profile: %w", err)
	}
	if err := s.kv.Set(ctx, store.KeyUserToken, token); err != nil {
		return Profile{}, fmt.Errorf("save token: %w", err)
	}

	s.logger.Info("user signed in", "email", p.Email)
	return p, nil
}

// Current returns the signed-in profile. A missing, expired or tampered
// token means nobody is signed in, which is not an error.
func (s *Service) Current(ctx context.Context) (Profile, bool, error) {
	token, found, err := s.kv.Get(ctx, store.KeyUserToken)
	if err != nil {
		return Profile{}, false, fmt.Errorf("load token: %w", err)
	}
	if !found {
		return Profile{}, false, nil
	}

	subject, err := s.verify(ctx, token)
	if err != nil {
		s.logger.Debug("session token rejected", "error", err)
		return Profile{}, false, nil
	}

	p, found, err := s.loadProfile(ctx)
	if err != nil || !found {
		return Profile{}, false, err
	}
	if !strings.EqualFold(p.Email, subject) {
		s.logger.Debug("session token does not match profile", "subject", subject)
		return Profile{}, false, nil
	}
	return p, true, nil
}

// Logout removes the token, the profile and the learning stats.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.kv.Remove(ctx, store.KeyUserToken); err != nil {
		return fmt.Errorf("remove token: %w", err)
	}
	if err := s.kv.Remove(ctx, store.KeyUserData); err != nil {
		return fmt.Errorf("remove profile: %w", err)
	}
	if s.stats != nil {
		if err := s.stats.Reset(ctx); err != nil {
			return err
		}
	}
	s.logger.Info("user signed out")
	return nil
}

// loadProfile treats a malformed record as absent.
func (s *Service) loadProfile(ctx context.Context) (Profile, bool, error) {
	raw, found, err := s.kv.Get(ctx, store.KeyUserData)
	if err != nil {
		return Profile{}, false, fmt.Errorf("load profile: %w", err)
	}
	if !found {
		return Profile{}, false, nil
	}
	var p Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		s.logger.Warn("discarding malformed profile record", "error", err)
		return Profile{}, false, nil
	}
	return p, true, nil
}

func trim(c Credentials) Credentials {
	return Credentials{
		Name:     strings.TrimSpace(c.Name),
		Email:    strings.TrimSpace(c.Email),
		Password: c.Password,
	}
}
