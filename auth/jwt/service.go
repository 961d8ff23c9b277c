// Package jwt provides a generic JWT token service using Go generics.
//
// The service is parameterized by a claims type T, which must implement
// jwt.Claims (typically by embedding jwt.RegisteredClaims). Claims types that
// implement SetDefaults receive issuer and expiry from Issue.
//
// Usage:
//
//	type apiClaims struct {
//	    jwt.RegisteredClaims
//	}
//
//	svc, err := jwt.NewService(&jwt.Config{Secret: secret, Issuer: key},
//	    func() *apiClaims { return &apiClaims{} })
//	token, err := svc.Issue(&apiClaims{})
//	claims, err := svc.Parse(token)
package jwt

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// ErrTokenExpired is returned (wrapped) by Parse when the exp claim has passed.
var ErrTokenExpired = gojwt.ErrTokenExpired

// Service provides JWT token generation and parsing for custom claims type T.
// T must implement jwt.Claims (e.g., by embedding jwt.RegisteredClaims).
type Service[T gojwt.Claims] struct {
	cfg      Config
	newEmpty func() T
}

// NewService creates a new JWT service.
// The newEmpty function returns a zero-value instance of T for parsing.
func NewService[T gojwt.Claims](cfg *Config, newEmpty func() T) (*Service[T], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("jwt: %w", err)
	}
	return &Service[T]{cfg: *cfg, newEmpty: newEmpty}, nil
}

// Generate creates a signed JWT token from the given claims as they are.
func (s *Service[T]) Generate(claims T) (string, error) {
	token := gojwt.NewWithClaims(s.cfg.signingMethod(), claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("jwt: sign token: %w", err)
	}
	return signed, nil
}

// Issue stamps issuer and expiry (now + TTL) onto claims and signs them.
func (s *Service[T]) Issue(claims T) (string, error) {
	s.prepareClaims(claims)
	return s.Generate(claims)
}

// Parse validates and parses a JWT token string into claims of type T.
// It verifies the signature, expiry against the configured clock, and the
// issuer when one is configured.
func (s *Service[T]) Parse(tokenString string) (T, error) {
	var zero T
	claims := s.newEmpty()
	token, err := gojwt.ParseWithClaims(tokenString, claims, s.keyFunc, s.parserOptions()...)
	if err != nil {
		return zero, fmt.Errorf("jwt: parse token: %w", err)
	}
	if !token.Valid {
		return zero, errors.New("jwt: invalid token")
	}
	parsed, ok := token.Claims.(T)
	if !ok {
		return zero, errors.New("jwt: unexpected claims type")
	}
	return parsed, nil
}

// Expired reports whether err from Parse was caused by an elapsed exp claim.
func Expired(err error) bool {
	return errors.Is(err, ErrTokenExpired)
}

// keyFunc is the jwt.Keyfunc used during token parsing.
func (s *Service[T]) keyFunc(token *gojwt.Token) (interface{}, error) {
	expected := s.cfg.signingMethod()
	if token.Method.Alg() != expected.Alg() {
		return nil, fmt.Errorf("jwt: unexpected signing method: %s", token.Method.Alg())
	}
	return []byte(s.cfg.Secret), nil
}

// parserOptions returns jwt.ParserOption based on config.
func (s *Service[T]) parserOptions() []gojwt.ParserOption {
	opts := []gojwt.ParserOption{
		gojwt.WithValidMethods([]string{s.cfg.signingMethod().Alg()}),
		gojwt.WithTimeFunc(s.cfg.Clock.Now),
		gojwt.WithExpirationRequired(),
	}
	if s.cfg.Issuer != "" {
		opts = append(opts, gojwt.WithIssuer(s.cfg.Issuer))
	}
	return opts
}

// prepareClaims sets standard claims when the claims type supports it.
func (s *Service[T]) prepareClaims(claims T) {
	if setter, ok := any(claims).(interface {
		SetDefaults(now time.Time, ttl time.Duration, issuer string)
	}); ok {
		setter.SetDefaults(s.cfg.Clock.Now(), s.cfg.TTL, s.cfg.Issuer)
	}
}
