// internal/pkg/upstream/errors.go
package upstream

import (
	"encoding/json"
	"fmt"

	"github.com/your-org/ticketing-storefront/internal/pkg/apperrors"
)

// Error is an upstream API failure carrying the status code, the message the
// API returned and, for 422 responses, the per-field validation details.
type Error struct {
	StatusCode int
	Message    string
	Details    map[string]string

	kind error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("upstream returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("upstream returned %d", e.StatusCode)
}

// Unwrap exposes the taxonomy sentinel so callers can use errors.Is
func (e *Error) Unwrap() error {
	return e.kind
}

// errorEnvelope matches the two error body shapes the API is known to emit:
// {"error": {"message": "...", "details": {...}}} and {"error": "..."}.
type errorEnvelope struct {
	Error   json.RawMessage `json:"error"`
	Message string          `json:"message"`
}

type errorDetail struct {
	Message string            `json:"message"`
	Details map[string]string `json:"details"`
}

func newStatusError(status int, body []byte) *Error {
	e := &Error{
		StatusCode: status,
		kind:       classify(status),
	}

	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil {
		switch {
		case len(envelope.Error) > 0:
			var detail errorDetail
			if err := json.Unmarshal(envelope.Error, &detail); err == nil && detail.Message != "" {
				e.Message = detail.Message
				e.Details = detail.Details
			} else {
				// error field is a bare string
				var msg string
				if json.Unmarshal(envelope.Error, &msg) == nil {
					e.Message = msg
				}
			}
		case envelope.Message != "":
			e.Message = envelope.Message
		}
	}

	return e
}

func newTransportError(cause error) *Error {
	return &Error{
		StatusCode: 0,
		Message:    cause.Error(),
		kind:       apperrors.ErrNetworkUnavailable,
	}
}

func classify(status int) error {
	switch {
	case status == 401:
		return apperrors.ErrAuthRejected
	case status == 403:
		return apperrors.ErrForbidden
	case status == 404:
		return apperrors.ErrNotFound
	case status == 422:
		return apperrors.ErrValidationRejected
	case status == 429:
		return apperrors.ErrRateLimited
	case status >= 500:
		return apperrors.ErrServerError
	default:
		return apperrors.ErrValidationRejected
	}
}
