package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kbukum/basiczoom/errors"
)

// execute runs zoomctl with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

// writeConfig writes a config.yml pointing the client at baseURL.
func writeConfig(t *testing.T, baseURL, extra string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	content := "zoom:\n  base_url: " + baseURL + "\n  retry:\n    disabled: true\n" + extra
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestGet_PrintsMergedResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer cli-token" {
			t.Errorf("unexpected Authorization %q", got)
		}
		if got := r.URL.Query().Get("status"); got != "active" {
			t.Errorf("expected status=active, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("next_page_token") == "" {
			_, _ = io.WriteString(w, `{"users":[{"id":"a"}],"next_page_token":"t1"}`)
			return
		}
		_, _ = io.WriteString(w, `{"users":[{"id":"b"}],"next_page_token":""}`)
	}))
	defer srv.Close()

	out, _, err := execute(t, "get", "/users",
		"--config", writeConfig(t, srv.URL, ""),
		"--access-token", "cli-token",
		"--param", "status=active")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	var got struct {
		Users []map[string]string `json:"users"`
		Next  *string             `json:"next_page_token"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(got.Users) != 2 || got.Users[1]["id"] != "b" || got.Next != nil {
		t.Errorf("unexpected output %s", out)
	}
}

func TestGet_NoAutoPage(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = io.WriteString(w, `{"users":[],"next_page_token":"t1"}`)
	}))
	defer srv.Close()

	out, _, err := execute(t, "get", "/users", "--no-auto-page",
		"--config", writeConfig(t, srv.URL, ""), "--access-token", "x")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if calls != 1 || !strings.Contains(out, `"next_page_token": "t1"`) {
		t.Errorf("expected a single unmerged page, got %d calls and %s", calls, out)
	}
}

func TestPost_SendsDataFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if r.Method != http.MethodPost || string(body) != `{"topic":"demo"}` {
			t.Errorf("unexpected %s %s", r.Method, body)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	dataFile := filepath.Join(t.TempDir(), "body.json")
	if err := os.WriteFile(dataFile, []byte(`{"topic":"demo"}`), 0o600); err != nil {
		t.Fatal(err)
	}

	out, _, err := execute(t, "post", "/users/me/meetings", "--data", "@"+dataFile,
		"--config", writeConfig(t, srv.URL, ""), "--access-token", "x")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if strings.TrimSpace(out) != "201" {
		t.Errorf("expected status code output, got %q", out)
	}
}

func TestDelete_ReportsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"code":1001,"message":"User does not exist: u1."}`)
	}))
	defer srv.Close()

	out, errOut, err := execute(t, "delete", "/users/u1",
		"--config", writeConfig(t, srv.URL, ""), "--access-token", "x")
	if err == nil || err.Error() != "User does not exist: u1." {
		t.Fatalf("expected API error, got %v", err)
	}
	if out != "" {
		t.Errorf("nothing should be printed on error, got %q", out)
	}
	if !strings.Contains(errOut, "User does not exist") {
		t.Errorf("expected error on stderr, got %q", errOut)
	}
}

func TestStdoutTelemetry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	_, errOut, err := execute(t, "delete", "/users/u1", "--telemetry", "stdout",
		"--config", writeConfig(t, srv.URL, ""), "--access-token", "x")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(errOut, "zoom.delete") {
		t.Errorf("expected exported span on stderr, got %q", errOut)
	}
}

func TestMissingCredentials(t *testing.T) {
	_, _, err := execute(t, "get", "/users", "--config", writeConfig(t, "http://127.0.0.1:1", ""))
	if !errors.HasCode(err, errors.ErrCodeInvalidConfig) {
		t.Fatalf("expected INVALID_CONFIG, got %v", err)
	}
}

func TestInvalidTelemetry(t *testing.T) {
	_, _, err := execute(t, "get", "/users", "--telemetry", "syslog",
		"--config", writeConfig(t, "http://127.0.0.1:1", ""), "--access-token", "x")
	if err == nil || !strings.Contains(err.Error(), "telemetry") {
		t.Fatalf("expected telemetry validation error, got %v", err)
	}
}

func TestMissingConfigFile(t *testing.T) {
	_, _, err := execute(t, "get", "/users", "--config", filepath.Join(t.TempDir(), "nope.yml"))
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected missing file error, got %v", err)
	}
}

func TestEnvCredentials(t *testing.T) {
	t.Setenv("ZOOM_AUTH_API_KEY", "env-key")
	t.Setenv("ZOOM_AUTH_API_SECRET", "env-secret")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ey") {
			t.Errorf("expected a signed token, got %q", auth)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	if _, _, err := execute(t, "delete", "/users/u1", "--config", writeConfig(t, srv.URL, "")); err != nil {
		t.Fatalf("execute: %v", err)
	}
}

func TestAccessTokenOverridesConfiguredCredentials(t *testing.T) {
	t.Setenv("ZOOM_AUTH_API_KEY", "env-key")
	t.Setenv("ZOOM_AUTH_API_SECRET", "env-secret")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer cli-token" {
			t.Errorf("expected the flag token, got %q", got)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	extra := "  auth:\n    account_id: acct\n    client_id: cid\n    client_secret: cs\n    token_url: " + srv.URL + "/oauth/token\n"
	if _, _, err := execute(t, "delete", "/users/u1", "--access-token", "cli-token",
		"--config", writeConfig(t, srv.URL, extra)); err != nil {
		t.Fatalf("execute: %v", err)
	}
}

func TestParseParams(t *testing.T) {
	p, err := parseParams([]string{"a=1", "b=x=y", "a=2", "empty="})
	if err != nil {
		t.Fatalf("parseParams: %v", err)
	}
	if p["a"] != "2" || p["b"] != "x=y" || p["empty"] != "" || len(p) != 3 {
		t.Errorf("unexpected params %v", p)
	}

	for _, bad := range []string{"novalue", "=v", "page_size=0", "page_size=301", "page_size=ten"} {
		if _, err := parseParams([]string{bad}); !errors.HasCode(err, errors.ErrCodeInvalidInput) {
			t.Errorf("parseParams(%q): expected INVALID_INPUT, got %v", bad, err)
		}
	}
}

func TestParseParams_PageSize(t *testing.T) {
	p, err := parseParams([]string{"page_size=300"})
	if err != nil {
		t.Fatalf("parseParams: %v", err)
	}
	if p["page_size"] != "300" {
		t.Errorf("unexpected params %v", p)
	}
}

func TestParseBody(t *testing.T) {
	body, err := parseBody("")
	if err != nil || body != nil {
		t.Errorf("empty flag should send no body, got %v, %v", body, err)
	}

	body, err = parseBody(`{"a":1}`)
	if err != nil {
		t.Fatalf("parseBody: %v", err)
	}
	if raw, ok := body.(json.RawMessage); !ok || string(raw) != `{"a":1}` {
		t.Errorf("unexpected body %#v", body)
	}

	if _, err := parseBody(`{"a":`); !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
	if _, err := parseBody("@" + filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "version")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, `"user_agent": "BasicZoom GoClient/`) {
		t.Errorf("unexpected version output %s", out)
	}
}
