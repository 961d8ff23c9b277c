package credential

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/kbukum/basiczoom/errors"
)

// Session authenticates with tokens from a caller-managed OAuth session.
// Refreshing is the token source's job; wrap it with oauth2.ReuseTokenSource
// to cache tokens between calls.
type Session struct {
	src oauth2.TokenSource
}

// NewSession wraps src.
func NewSession(src oauth2.TokenSource) (*Session, error) {
	if src == nil {
		return nil, errors.MissingField("token_source")
	}
	return &Session{src: src}, nil
}

// Kind implements Provider.
func (s *Session) Kind() Kind { return KindSession }

// Token returns the session's current access token.
func (s *Session) Token(_ context.Context) (string, error) {
	tok, err := s.token()
	if err != nil {
		return "", err
	}
	return tok.AccessToken, nil
}

// Authorize implements httpclient.Authorizer using the token's own type.
func (s *Session) Authorize(_ context.Context, req *http.Request) error {
	tok, err := s.token()
	if err != nil {
		return err
	}
	tok.SetAuthHeader(req)
	return nil
}

func (s *Session) token() (*oauth2.Token, error) {
	tok, err := s.src.Token()
	if err != nil {
		return nil, errors.New(errors.ErrCodeTokenSource, "oauth2 session could not supply a token").WithCause(err)
	}
	return tok, nil
}
