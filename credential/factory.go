package credential

import (
	"golang.org/x/oauth2"

	"github.com/kbukum/basiczoom/errors"
)

// Config holds the inputs for every scheme. Exactly one complete set is
// needed; see New for precedence.
type Config struct {
	APIKey       string `yaml:"api_key" mapstructure:"api_key"`
	APISecret    string `yaml:"api_secret" mapstructure:"api_secret"`
	AccountID    string `yaml:"account_id" mapstructure:"account_id"`
	ClientID     string `yaml:"client_id" mapstructure:"client_id"`
	ClientSecret string `yaml:"client_secret" mapstructure:"client_secret"`
	TokenURL     string `yaml:"token_url" mapstructure:"token_url" validate:"omitempty,url"`

	// TokenSource backs a Session. It cannot come from a config file.
	TokenSource oauth2.TokenSource `yaml:"-" mapstructure:"-"`
}

// Kind reports which scheme New would select.
func (c Config) Kind() (Kind, bool) {
	switch {
	case c.APIKey != "" && c.APISecret != "":
		return KindSignedToken, true
	case c.AccountID != "" && c.ClientID != "" && c.ClientSecret != "":
		return KindExchangedToken, true
	case c.TokenSource != nil:
		return KindSession, true
	default:
		return "", false
	}
}

// New builds the provider for the first complete scheme in cfg, in the order
// signed token, exchanged token, session.
func New(cfg Config, opts ...Option) (Provider, error) {
	kind, ok := cfg.Kind()
	if !ok {
		return nil, errors.InvalidConfig(
			"must specify either api_key and api_secret, or account_id, client_id and client_secret, or an oauth2 token source")
	}
	switch kind {
	case KindSignedToken:
		return NewSignedToken(cfg.APIKey, cfg.APISecret, opts...)
	case KindExchangedToken:
		if cfg.TokenURL != "" {
			opts = append(opts, WithTokenURL(cfg.TokenURL))
		}
		return NewExchangedToken(cfg.AccountID, cfg.ClientID, cfg.ClientSecret, opts...)
	default:
		return NewSession(cfg.TokenSource)
	}
}
