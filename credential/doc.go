// Package credential supplies the Authorization header for Zoom API calls.
//
// Three providers exist, one per authentication scheme:
//
//   - SignedToken mints an HS256 JWT from an API key and secret and re-mints
//     it once it expires.
//   - ExchangedToken trades account credentials for an access token at the
//     OAuth token endpoint and renews it five minutes before it expires.
//   - Session forwards tokens from a caller-managed oauth2.TokenSource.
//
// New picks the provider from a Config. Providers are safe for concurrent use.
package credential
