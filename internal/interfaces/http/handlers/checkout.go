// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/ticketing-storefront/internal/domain/checkout"
	"github.com/your-org/ticketing-storefront/internal/domain/session"
	"github.com/your-org/ticketing-storefront/internal/interfaces/http/middleware"
)

// CheckoutHandler handles the checkout flow endpoints
type CheckoutHandler struct {
	checkout *checkout.Service
	sessions *session.Store
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(svc *checkout.Service, sessions *session.Store) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: svc,
		sessions: sessions,
	}
}

// Submit handles POST /checkout
func (h *CheckoutHandler) Submit(c *gin.Context) {
	var req checkout.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	clientID := middleware.GetClientID(c)
	sess := middleware.GetSession(c)

	cred := h.sessions.Credential(c.Request.Context(), clientID)
	result, err := h.checkout.Submit(c.Request.Context(), cred, sess.User.ID, &req)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
		case errors.Is(err, checkout.ErrAlreadySubmitting):
			c.JSON(http.StatusConflict, gin.H{"error": "Checkout already in progress"})
		default:
			respondError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout completed",
		"data":    result,
	})
}

// State handles GET /checkout/state
func (h *CheckoutHandler) State(c *gin.Context) {
	clientID := middleware.GetClientID(c)

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"state": h.checkout.State(clientID),
		},
	})
}
