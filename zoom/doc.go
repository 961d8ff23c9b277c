// Package zoom is a thin client for the Zoom REST API.
//
// A Client authenticates every request with a credential.Provider, sends it
// through a retrying HTTP transport, and normalizes the response into a
// Result. Get follows next_page_token cursors and merges the pages into one
// result; the write verbs return the single normalized response.
//
//	client, err := zoom.New(zoom.Config{
//	    Auth: credential.Config{
//	        AccountID:    os.Getenv("ZOOM_ACCOUNT_ID"),
//	        ClientID:     os.Getenv("ZOOM_CLIENT_ID"),
//	        ClientSecret: os.Getenv("ZOOM_CLIENT_SECRET"),
//	    },
//	})
//	users, err := client.Get(ctx, "/users", zoom.Params{"status": "active"}, true)
//
// Failures are *APIError for non-success responses, *DateRangeError when the
// server narrowed a requested from/to range during auto-pagination, and
// transport errors (*httpclient.Error, context errors) passed through as-is.
package zoom
