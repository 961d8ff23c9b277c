package httpclient

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

func TestBearerAuth(t *testing.T) {
	auth := BearerAuth("my-token")
	req, _ := http.NewRequest("GET", "http://example.com", nil)
	if err := auth.apply(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := req.Header.Get("Authorization"); got != "Bearer my-token" {
		t.Errorf("got %q, want %q", got, "Bearer my-token")
	}
}

func TestBasicAuth(t *testing.T) {
	auth := BasicAuth("user", "pass")
	req, _ := http.NewRequest("GET", "http://example.com", nil)
	_ = auth.apply(context.Background(), req)
	u, p, ok := req.BasicAuth()
	if !ok || u != "user" || p != "pass" {
		t.Errorf("basic auth not set correctly: user=%q pass=%q ok=%v", u, p, ok)
	}
}

func TestDynamicAuth(t *testing.T) {
	calls := 0
	auth := DynamicAuth(AuthorizerFunc(func(_ context.Context, req *http.Request) error {
		calls++
		req.Header.Set("Authorization", "Bearer fresh")
		return nil
	}))
	req, _ := http.NewRequest("GET", "http://example.com", nil)
	_ = auth.apply(context.Background(), req)
	_ = auth.apply(context.Background(), req)
	if calls != 2 {
		t.Errorf("expected authorizer per apply, got %d calls", calls)
	}
	if got := req.Header.Get("Authorization"); got != "Bearer fresh" {
		t.Errorf("got %q", got)
	}
}

func TestDynamicAuth_Error(t *testing.T) {
	want := errors.New("exchange refused")
	auth := DynamicAuth(AuthorizerFunc(func(context.Context, *http.Request) error {
		return want
	}))
	req, _ := http.NewRequest("GET", "http://example.com", nil)
	if err := auth.apply(context.Background(), req); !errors.Is(err, want) {
		t.Errorf("expected authorizer error, got %v", err)
	}
}

func TestNilAuth(t *testing.T) {
	var auth *AuthConfig
	req, _ := http.NewRequest("GET", "http://example.com", nil)
	if err := auth.apply(context.Background(), req); err != nil {
		t.Errorf("nil auth should be a no-op, got %v", err)
	}
}

func TestAuthNone(t *testing.T) {
	auth := &AuthConfig{Type: AuthNone}
	req, _ := http.NewRequest("GET", "http://example.com", nil)
	_ = auth.apply(context.Background(), req)
	if req.Header.Get("Authorization") != "" {
		t.Error("AuthNone should not set Authorization header")
	}
}
