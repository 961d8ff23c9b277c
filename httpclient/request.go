package httpclient

import "time"

// Request describes an outbound HTTP request.
type Request struct {
	// Method is the HTTP method (GET, POST, PUT, PATCH, DELETE, etc).
	Method string
	// Path is appended to the client's BaseURL. Can be a full URL if BaseURL is empty.
	Path string
	// Headers are request-specific headers (merged with client defaults).
	Headers map[string]string
	// Query are URL query parameters.
	Query map[string]string
	// Body is the request body. Accepts io.Reader, []byte, string, or any value
	// that will be JSON-encoded. It is buffered once so retries resend it.
	Body any
	// Auth overrides the client-level auth for this request.
	Auth *AuthConfig
}

// Response is the result of an HTTP request.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Headers are the response headers.
	Headers map[string]string
	// Body is the raw response body.
	Body []byte
	// URL is the fully resolved request URL, query included.
	URL string
	// RequestID is the X-Request-ID sent with the request.
	RequestID string
	// Attempts is how many times the request was sent.
	Attempts int
}

// IsSuccess returns true if the status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsError returns true if the status code is 4xx or 5xx.
func (r *Response) IsError() bool {
	return r.StatusCode >= 400
}

// Event describes one attempt, reported to an Observer.
type Event struct {
	Method     string
	Path       string
	StatusCode int
	Attempt    int
	RequestID  string
	Duration   time.Duration
	Err        error
}

// Observer receives an Event after every attempt.
type Observer func(Event)
