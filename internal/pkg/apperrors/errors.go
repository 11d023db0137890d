// internal/pkg/apperrors/errors.go
package apperrors

import "errors"

// Sentinel errors for the storefront error taxonomy. Upstream call sites wrap
// these with request context; handlers translate them back to HTTP statuses.
var (
	// ErrValidation marks client-side form validation failures. Requests
	// failing this check must never reach the network.
	ErrValidation = errors.New("validation failed")

	// ErrAuthRejected marks an upstream 401. The session is cleared by the
	// upstream adapter; nothing else may clear it.
	ErrAuthRejected = errors.New("authentication rejected")

	// ErrForbidden marks an upstream 403. Surfaced, no state change.
	ErrForbidden = errors.New("access denied")

	// ErrNotFound marks an upstream 404.
	ErrNotFound = errors.New("resource not found")

	// ErrValidationRejected marks an upstream 422 with server-side detail.
	ErrValidationRejected = errors.New("request rejected by validation")

	// ErrRateLimited marks an upstream 429. Not retried automatically.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrServerError marks an upstream 5xx.
	ErrServerError = errors.New("upstream server error")

	// ErrNetworkUnavailable marks a transport-level failure where no
	// response was received at all.
	ErrNetworkUnavailable = errors.New("no response from server")
)

// HTTPStatus maps a taxonomy error to the status the storefront itself
// responds with. Unknown errors map to 500.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return 400
	case errors.Is(err, ErrAuthRejected):
		return 401
	case errors.Is(err, ErrForbidden):
		return 403
	case errors.Is(err, ErrNotFound):
		return 404
	case errors.Is(err, ErrValidationRejected):
		return 422
	case errors.Is(err, ErrRateLimited):
		return 429
	case errors.Is(err, ErrNetworkUnavailable):
		return 502
	default:
		return 500
	}
}
