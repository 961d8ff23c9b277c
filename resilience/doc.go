// Package resilience provides the retry and pacing primitives used by the
// HTTP transport.
//
//   - Retry: retries failed operations with exponential backoff, honoring
//     server supplied delay hints such as Retry-After
//   - RateLimiter: paces requests with a token bucket
//
// Both take an optional clockwork.Clock so tests can control time:
//
//	rl := resilience.NewRateLimiter(resilience.RateLimiterConfig{Rate: 10, Burst: 20})
//	resp, err := resilience.Retry(ctx, resilience.DefaultRetryConfig(), func() (*http.Response, error) {
//	    if err := rl.Wait(ctx); err != nil {
//	        return nil, err
//	    }
//	    return client.Do(req)
//	})
package resilience
