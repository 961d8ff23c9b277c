package httpclient

import (
	"net/http"
	"testing"
	"time"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Timeout != 30*time.Second {
		t.Errorf("expected default timeout 30s, got %v", cfg.Timeout)
	}
	if len(cfg.RetryStatuses) != 1 || cfg.RetryStatuses[0] != http.StatusTooManyRequests {
		t.Errorf("expected retry statuses [429], got %v", cfg.RetryStatuses)
	}
	if cfg.MaxStatusRetries != 3 {
		t.Errorf("expected 3 status retries, got %d", cfg.MaxStatusRetries)
	}
	if len(cfg.RetryMethods) != 5 {
		t.Errorf("expected 5 retry methods, got %v", cfg.RetryMethods)
	}
}

func TestConfig_ApplyDefaults_PreservesExisting(t *testing.T) {
	cfg := Config{Timeout: 10 * time.Second, RetryStatuses: []int{503}}
	cfg.ApplyDefaults()
	if cfg.Timeout != 10*time.Second {
		t.Errorf("expected timeout 10s, got %v", cfg.Timeout)
	}
	if cfg.RetryStatuses[0] != 503 {
		t.Errorf("expected retry statuses [503], got %v", cfg.RetryStatuses)
	}
}

func TestConfig_Validate_Valid(t *testing.T) {
	cfg := Config{Timeout: 10 * time.Second}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestConfig_Validate_InvalidTimeout(t *testing.T) {
	cfg := Config{Timeout: -1}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative timeout")
	}
}

func TestConfig_Validate_InvalidRetryStatus(t *testing.T) {
	cfg := Config{Timeout: time.Second, RetryStatuses: []int{42}}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for out-of-range retry status")
	}
}

func TestConfig_Validate_InvalidTLS(t *testing.T) {
	cfg := Config{
		Timeout: 10 * time.Second,
		TLS:     &TLSConfig{CertFile: "cert.pem"}, // missing KeyFile
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for mismatched TLS cert/key")
	}
}

func TestDefaultRetryConfig(t *testing.T) {
	cfg := DefaultRetryConfig()
	if cfg == nil {
		t.Fatal("expected non-nil config")
	}
	if cfg.MaxAttempts != 6 {
		t.Errorf("expected 6 attempts, got %d", cfg.MaxAttempts)
	}
	if cfg.RetryIf == nil || cfg.BackoffHint == nil {
		t.Error("expected RetryIf and BackoffHint to be set")
	}
}

func TestDefaultRateLimiterConfig(t *testing.T) {
	cfg := DefaultRateLimiterConfig("test")
	if cfg == nil {
		t.Fatal("expected non-nil config")
	}
	if cfg.Name != "test" {
		t.Errorf("expected name 'test', got %q", cfg.Name)
	}
}
