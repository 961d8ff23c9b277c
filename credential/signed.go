package credential

import (
	"context"
	"net/http"
	"sync"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/kbukum/basiczoom/auth/jwt"
	"github.com/kbukum/basiczoom/errors"
	"github.com/kbukum/basiczoom/logger"
)

const signedTokenTTL = 60 * time.Minute

// signedClaims carries only iss and exp, which is all the API checks.
type signedClaims struct {
	gojwt.RegisteredClaims
}

func (c *signedClaims) SetDefaults(now time.Time, ttl time.Duration, issuer string) {
	c.Issuer = issuer
	c.ExpiresAt = gojwt.NewNumericDate(now.Add(ttl))
}

// SignedToken authenticates with a self-signed JWT built from an API key and
// secret. The held token is verified on every use and re-minted once it no
// longer verifies.
type SignedToken struct {
	svc  *jwt.Service[*signedClaims]
	opts *options

	mu    sync.Mutex
	token string
}

// NewSignedToken creates a provider and mints its first token.
func NewSignedToken(apiKey, apiSecret string, opts ...Option) (*SignedToken, error) {
	if apiKey == "" {
		return nil, errors.MissingField("api_key")
	}
	if apiSecret == "" {
		return nil, errors.MissingField("api_secret")
	}

	o := newOptions(opts)
	svc, err := jwt.NewService(&jwt.Config{
		Secret: apiSecret,
		Method: jwt.HS256,
		Issuer: apiKey,
		TTL:    signedTokenTTL,
		Clock:  o.clock,
	}, func() *signedClaims { return &signedClaims{} })
	if err != nil {
		return nil, errors.InvalidConfig(err.Error())
	}

	p := &SignedToken{svc: svc, opts: o}
	if err := p.mint(); err != nil {
		return nil, err
	}
	return p, nil
}

// Kind implements Provider.
func (p *SignedToken) Kind() Kind { return KindSignedToken }

// Token returns the held JWT, minting a new one if it no longer verifies.
func (p *SignedToken) Token(_ context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, err := p.svc.Parse(p.token)
	if err == nil {
		return p.token, nil
	}
	if !jwt.Expired(err) {
		p.opts.log.Warn("signed token failed verification, re-minting", logger.ErrorFields("verify", err))
	}
	if err := p.mint(); err != nil {
		return "", err
	}
	return p.token, nil
}

// Authorize implements httpclient.Authorizer.
func (p *SignedToken) Authorize(ctx context.Context, req *http.Request) error {
	token, err := p.Token(ctx)
	if err != nil {
		return err
	}
	setBearer(req, token)
	return nil
}

// mint must be called with mu held or before p is shared.
func (p *SignedToken) mint() error {
	token, err := p.svc.Issue(&signedClaims{})
	if err != nil {
		return errors.New(errors.ErrCodeTokenSigning, "could not sign token").WithCause(err)
	}
	p.token = token
	p.opts.log.Info("minted signed token", logger.Fields("ttl", signedTokenTTL.String()))
	p.opts.refreshed(KindSignedToken)
	return nil
}
