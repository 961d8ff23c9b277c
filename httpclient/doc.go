// Package httpclient provides the HTTP transport used by the Zoom client: a
// configurable client with default headers, pluggable authentication,
// status-driven retry and optional client-side rate limiting.
//
// Statuses are returned to the caller as a Response. The only exception is a
// status listed in Config.RetryStatuses (429 by default) that keeps coming back
// after the retry budget is spent, which yields an Error with
// ErrCodeRetryExhausted. Connection failures and timeouts are Errors with
// ErrCodeConnection and ErrCodeTimeout.
//
// # Basic Usage
//
//	client, err := httpclient.New(httpclient.Config{
//	    BaseURL:   "https://api.zoom.us/v2",
//	    UserAgent: "BasicZoom GoClient/1.0.0",
//	    Auth:      httpclient.DynamicAuth(provider),
//	    Retry:     httpclient.DefaultRetryConfig(),
//	})
//
//	resp, err := client.Do(ctx, httpclient.Request{
//	    Method: http.MethodGet,
//	    Path:   "/users/me",
//	})
package httpclient
