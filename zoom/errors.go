package zoom

import (
	"context"
	"errors"
	"fmt"

	"github.com/kbukum/basiczoom/credential"
	apperrors "github.com/kbukum/basiczoom/errors"
	"github.com/kbukum/basiczoom/httpclient"
)

// APIError is a non-success response from the API.
type APIError struct {
	// Message is the server's "message" field, or a synthesized description
	// when the body has none.
	Message    string
	StatusCode int
	// Code is the API's numeric error code, when the body carried one.
	Code int
	// URL is the request URL, query included.
	URL string
	// Body is the raw response body.
	Body []byte
}

func (e *APIError) Error() string {
	return e.Message
}

// DateRangeError reports that the server answered a from/to request with a
// different range, typically because the endpoint limits how far a single
// query may span. Auto-pagination stops rather than return a silently
// truncated result.
type DateRangeError struct {
	RequestFrom  string
	RequestTo    string
	ResponseFrom string
	ResponseTo   string
}

func (e *DateRangeError) Error() string {
	const hint = "This may be due to API date range limitations."
	switch {
	case e.RequestFrom != "" && e.RequestTo != "" && e.ResponseFrom != "" && e.ResponseTo != "":
		return fmt.Sprintf("Request include date from:%s to:%s but response included from:%s to:%s. %s",
			e.RequestFrom, e.RequestTo, e.ResponseFrom, e.ResponseTo, hint)
	case e.RequestFrom != "" && e.ResponseFrom != "":
		return fmt.Sprintf("Request include date from:%s but response included from:%s. %s",
			e.RequestFrom, e.ResponseFrom, hint)
	case e.RequestTo != "" && e.ResponseTo != "":
		return fmt.Sprintf("Request include date to:%s but response included to:%s. %s",
			e.RequestTo, e.ResponseTo, hint)
	default:
		return fmt.Sprintf("Unknown date error from:%s to:%s but response included from:%s to:%s. %s",
			e.RequestFrom, e.RequestTo, e.ResponseFrom, e.ResponseTo, hint)
	}
}

// IsAPIError reports whether err is an *APIError.
func IsAPIError(err error) bool {
	var e *APIError
	return errors.As(err, &e)
}

// IsDateRange reports whether err is a *DateRangeError.
func IsDateRange(err error) bool {
	var e *DateRangeError
	return errors.As(err, &e)
}

// errorType classifies err for metrics and spans.
func errorType(err error) string {
	var (
		apiErr  *APIError
		dateErr *DateRangeError
		httpErr *httpclient.Error
		exErr   *credential.ExchangeError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &apiErr):
		return "api"
	case errors.As(err, &dateErr):
		return "date_range"
	case errors.As(err, &exErr), apperrors.HasCode(err, apperrors.ErrCodeTokenExchange),
		apperrors.HasCode(err, apperrors.ErrCodeTokenSigning), apperrors.HasCode(err, apperrors.ErrCodeTokenSource):
		return "credential"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	case errors.As(err, &httpErr):
		return "transport"
	default:
		return "other"
	}
}
