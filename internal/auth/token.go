package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/abhisek/wordiz/internal/store"
)

func (s *Service) issue(ctx context.Context, email string, now time.Time) (string, error) {
	key, err := s.signingKey(ctx)
	if err != nil {
		return "", err
	}

	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		ID:        uuid.New().String(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// verify returns the token subject.
func (s *Service) verify(ctx context.Context, token string) (string, error) {
	key, err := s.signingKey(ctx)
	if err != nil {
		return "", err
	}

	var claims jwt.RegisteredClaims
	_, err = jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) { return key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// signingKey returns the per-install secret, creating it on first use.
func (s *Service) signingKey(ctx context.Context) ([]byte, error) {
	raw, found, err := s.kv.Get(ctx, store.KeyTokenSecret)
	if err != nil {
		return nil, fmt.Errorf("load token secret: %w", err)
	}
	if found {
		if key, err := hex.DecodeString(raw); err == nil && len(key) >= 32 {
			return key, nil
		}
		s.logger.Warn("replacing malformed token secret")
	}

	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate token secret: %w", err)
	}
	if err := s.kv.Set(ctx, store.KeyTokenSecret, hex.EncodeToString(key)); err != nil {
		return nil, fmt.Errorf("save token secret: %w", err)
	}
	return key, nil
}
