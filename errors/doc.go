// Package errors provides the structured error type used for client-side
// failures: invalid configuration, missing credentials and failed token
// exchanges. Failures reported by the Zoom API itself are represented by
// the concrete types in package zoom.
package errors
