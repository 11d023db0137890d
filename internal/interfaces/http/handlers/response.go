// internal/interfaces/http/handlers/response.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/your-org/ticketing-storefront/internal/pkg/apperrors"
	"github.com/your-org/ticketing-storefront/internal/pkg/upstream"
)

// respondError translates a service error into a JSON error response. The
// status code comes from the error taxonomy; upstream errors contribute
// their message and field details verbatim so the frontend can show them.
func respondError(c *gin.Context, err error) {
	payload := gin.H{"error": err.Error()}

	var ue *upstream.Error
	if errors.As(err, &ue) {
		if ue.Message != "" {
			payload["error"] = ue.Message
		}
		if len(ue.Details) > 0 {
			payload["details"] = ue.Details
		}
	}

	c.JSON(apperrors.HTTPStatus(err), payload)
}
