package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Configuration errors
const (
	// ErrCodeInvalidConfig indicates the client configuration cannot be used.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
	// ErrCodeInvalidInput indicates a caller supplied argument is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// Credential errors
const (
	// ErrCodeTokenExchange indicates the identity provider refused or failed a token exchange.
	ErrCodeTokenExchange ErrorCode = "TOKEN_EXCHANGE_FAILED"
	// ErrCodeTokenSigning indicates a signed token could not be produced.
	ErrCodeTokenSigning ErrorCode = "TOKEN_SIGNING_FAILED"
	// ErrCodeTokenSource indicates an external session could not supply a token.
	ErrCodeTokenSource ErrorCode = "TOKEN_SOURCE_FAILED"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeTokenExchange: true,
	ErrCodeTokenSource:   true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
