package httpclient

import (
	"context"
	"net/http"
)

// AuthType identifies the authentication method.
type AuthType int

const (
	// AuthNone disables authentication.
	AuthNone AuthType = iota
	// AuthBearer uses a static Bearer token.
	AuthBearer
	// AuthBasic uses HTTP Basic authentication.
	AuthBasic
	// AuthDynamic delegates to an Authorizer on every attempt.
	AuthDynamic
)

// Authorizer decorates an outbound request with credentials that may change
// between calls, such as short-lived access tokens.
type Authorizer interface {
	Authorize(ctx context.Context, req *http.Request) error
}

// AuthorizerFunc adapts a function to the Authorizer interface.
type AuthorizerFunc func(ctx context.Context, req *http.Request) error

// Authorize calls f(ctx, req).
func (f AuthorizerFunc) Authorize(ctx context.Context, req *http.Request) error {
	return f(ctx, req)
}

// AuthConfig configures request authentication.
type AuthConfig struct {
	// Type is the authentication method.
	Type AuthType
	// Token is the bearer token (AuthBearer).
	Token string
	// Username is the basic auth username (AuthBasic).
	Username string
	// Password is the basic auth password (AuthBasic).
	Password string
	// Authorizer supplies credentials per attempt (AuthDynamic).
	Authorizer Authorizer
}

// BearerAuth creates a bearer token auth config.
func BearerAuth(token string) *AuthConfig {
	return &AuthConfig{Type: AuthBearer, Token: token}
}

// BasicAuth creates a basic auth config.
func BasicAuth(username, password string) *AuthConfig {
	return &AuthConfig{Type: AuthBasic, Username: username, Password: password}
}

// DynamicAuth creates an auth config that asks a for credentials on every attempt.
func DynamicAuth(a Authorizer) *AuthConfig {
	return &AuthConfig{Type: AuthDynamic, Authorizer: a}
}

// apply applies authentication to an HTTP request.
func (a *AuthConfig) apply(ctx context.Context, req *http.Request) error {
	if a == nil {
		return nil
	}
	switch a.Type {
	case AuthBearer:
		req.Header.Set("Authorization", "Bearer "+a.Token)
	case AuthBasic:
		req.SetBasicAuth(a.Username, a.Password)
	case AuthDynamic:
		if a.Authorizer != nil {
			return a.Authorizer.Authorize(ctx, req)
		}
	}
	return nil
}
