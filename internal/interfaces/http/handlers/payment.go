// internal/interfaces/http/handlers/payment.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/ticketing-storefront/internal/domain/payment"
	"github.com/your-org/ticketing-storefront/internal/domain/session"
	"github.com/your-org/ticketing-storefront/internal/interfaces/http/middleware"
)

// PaymentHandler handles the standalone payment endpoints
type PaymentHandler struct {
	payments *payment.Service
	sessions *session.Store
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(payments *payment.Service, sessions *session.Store) *PaymentHandler {
	return &PaymentHandler{
		payments: payments,
		sessions: sessions,
	}
}

// Initiate handles POST /payments/initiate
func (h *PaymentHandler) Initiate(c *gin.Context) {
	var req payment.InitiateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	cred := h.sessions.Credential(c.Request.Context(), middleware.GetClientID(c))
	p, err := h.payments.Initiate(c.Request.Context(), cred, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment initiated",
		"data":    p,
	})
}

// Status handles GET /payments/:id/status
func (h *PaymentHandler) Status(c *gin.Context) {
	cred := h.sessions.Credential(c.Request.Context(), middleware.GetClientID(c))

	p, err := h.payments.Status(c.Request.Context(), cred, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": p,
	})
}

// History handles GET /payments/history
func (h *PaymentHandler) History(c *gin.Context) {
	cred := h.sessions.Credential(c.Request.Context(), middleware.GetClientID(c))

	payments, err := h.payments.History(c.Request.Context(), cred)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": payments,
	})
}
