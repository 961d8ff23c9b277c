package credential

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/kbukum/basiczoom/errors"
	"github.com/kbukum/basiczoom/httpclient"
	"github.com/kbukum/basiczoom/logger"
	"github.com/kbukum/basiczoom/version"
)

const (
	// expiryMargin renews exchanged tokens this long before the server says
	// they expire.
	expiryMargin = 300 * time.Second
	tokenIndex   = "0"
)

// ExchangeError reports a token endpoint response that did not yield a token.
type ExchangeError struct {
	StatusCode int
	// Reason is the server's explanation, when it gave one.
	Reason string
	// Code is the OAuth error code, e.g. "invalid_client".
	Code string
}

func (e *ExchangeError) Error() string {
	msg := e.Reason
	if msg == "" {
		msg = e.Code
	}
	if msg == "" {
		msg = "no access_token in response"
	}
	return fmt.Sprintf("credential: token exchange failed (HTTP %d): %s", e.StatusCode, msg)
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	Scope       string `json:"scope"`
	Reason      string `json:"reason"`
	Error       string `json:"error"`
}

// ExchangedToken authenticates with an access token obtained from the OAuth
// token endpoint using the account credentials grant.
type ExchangedToken struct {
	accountID    string
	clientID     string
	clientSecret string
	client       *httpclient.Client
	opts         *options

	mu     sync.Mutex
	token  string
	expiry time.Time
	scope  string
}

// NewExchangedToken creates a provider. No exchange happens until the first
// token is needed.
func NewExchangedToken(accountID, clientID, clientSecret string, opts ...Option) (*ExchangedToken, error) {
	switch {
	case accountID == "":
		return nil, errors.MissingField("account_id")
	case clientID == "":
		return nil, errors.MissingField("client_id")
	case clientSecret == "":
		return nil, errors.MissingField("client_secret")
	}

	o := newOptions(opts)
	client := o.client
	if client == nil {
		var err error
		client, err = httpclient.New(httpclient.Config{
			UserAgent: version.UserAgent(),
			Headers:   map[string]string{"Accept": "application/json"},
			Retry:     httpclient.DefaultRetryConfig(),
		}, httpclient.WithLogger(o.base))
		if err != nil {
			return nil, errors.InvalidConfig(err.Error())
		}
	}

	return &ExchangedToken{
		accountID:    accountID,
		clientID:     clientID,
		clientSecret: clientSecret,
		client:       client,
		opts:         o,
	}, nil
}

// Kind implements Provider.
func (p *ExchangedToken) Kind() Kind { return KindExchangedToken }

// Token returns the held access token, exchanging for a new one when none is
// held or the stored expiry has been reached.
func (p *ExchangedToken) Token(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.token != "" && p.opts.clock.Now().Before(p.expiry) {
		return p.token, nil
	}
	if err := p.exchange(ctx); err != nil {
		return "", err
	}
	return p.token, nil
}

// Authorize implements httpclient.Authorizer.
func (p *ExchangedToken) Authorize(ctx context.Context, req *http.Request) error {
	token, err := p.Token(ctx)
	if err != nil {
		return err
	}
	setBearer(req, token)
	return nil
}

// Expiry returns when the held token will be renewed.
func (p *ExchangedToken) Expiry() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.expiry
}

// Scope returns the scopes granted with the held token.
func (p *ExchangedToken) Scope() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.scope
}

// exchange must be called with mu held.
func (p *ExchangedToken) exchange(ctx context.Context) error {
	resp, err := p.client.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   p.opts.tokenURL,
		Query: map[string]string{
			"grant_type":  "account_credentials",
			"token_index": tokenIndex,
			"account_id":  p.accountID,
		},
		Auth: httpclient.BasicAuth(p.clientID, p.clientSecret),
	})
	if err != nil {
		p.opts.log.Error("token exchange failed", logger.ErrorFields("exchange", err))
		return errors.TokenExchange("token exchange request failed", err)
	}

	var body tokenResponse
	// An unparseable body leaves every field empty and is reported below.
	_ = json.Unmarshal(resp.Body, &body)

	if !resp.IsSuccess() || body.AccessToken == "" {
		return &ExchangeError{StatusCode: resp.StatusCode, Reason: body.Reason, Code: body.Error}
	}

	now := p.opts.clock.Now()
	p.token = body.AccessToken
	p.scope = body.Scope
	p.expiry = now.Add(time.Duration(body.ExpiresIn)*time.Second - expiryMargin)

	p.opts.log.Info("exchanged access token", logger.Fields(
		"expires_in", body.ExpiresIn,
		"renew_at", p.expiry.Format(time.RFC3339),
	))
	p.opts.refreshed(KindExchangedToken)
	return nil
}
