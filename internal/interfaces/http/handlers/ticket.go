// internal/interfaces/http/handlers/ticket.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/ticketing-storefront/internal/domain/session"
	"github.com/your-org/ticketing-storefront/internal/domain/ticket"
	"github.com/your-org/ticketing-storefront/internal/interfaces/http/middleware"
)

// TicketHandler handles the ticket wallet endpoints
type TicketHandler struct {
	tickets  *ticket.Service
	sessions *session.Store
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(tickets *ticket.Service, sessions *session.Store) *TicketHandler {
	return &TicketHandler{
		tickets:  tickets,
		sessions: sessions,
	}
}

// TransferRequest carries a ticket transfer
type TransferRequest struct {
	RecipientEmail string `json:"recipient_email" binding:"required,email"`
}

// MyTickets handles GET /tickets
func (h *TicketHandler) MyTickets(c *gin.Context) {
	cred := h.sessions.Credential(c.Request.Context(), middleware.GetClientID(c))

	tickets, err := h.tickets.MyTickets(c.Request.Context(), cred, c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": tickets,
	})
}

// Get handles GET /tickets/:id
func (h *TicketHandler) Get(c *gin.Context) {
	cred := h.sessions.Credential(c.Request.Context(), middleware.GetClientID(c))

	t, err := h.tickets.Get(c.Request.Context(), cred, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": t,
	})
}

// QRCode handles GET /tickets/:id/qr
func (h *TicketHandler) QRCode(c *gin.Context) {
	cred := h.sessions.Credential(c.Request.Context(), middleware.GetClientID(c))

	qr, err := h.tickets.QRCode(c.Request.Context(), cred, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"qr_code": qr,
		},
	})
}

// Transfer handles POST /tickets/:id/transfer
func (h *TicketHandler) Transfer(c *gin.Context) {
	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	cred := h.sessions.Credential(c.Request.Context(), middleware.GetClientID(c))
	if err := h.tickets.Transfer(c.Request.Context(), cred, c.Param("id"), req.RecipientEmail); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Ticket transferred",
	})
}

// Validate handles POST /tickets/:id/validate
func (h *TicketHandler) Validate(c *gin.Context) {
	cred := h.sessions.Credential(c.Request.Context(), middleware.GetClientID(c))

	result, err := h.tickets.Validate(c.Request.Context(), cred, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": result,
	})
}

// Cancel handles POST /tickets/:id/cancel
func (h *TicketHandler) Cancel(c *gin.Context) {
	cred := h.sessions.Credential(c.Request.Context(), middleware.GetClientID(c))
	if err := h.tickets.Cancel(c.Request.Context(), cred, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Ticket cancelled",
	})
}
