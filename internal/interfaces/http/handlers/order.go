// internal/interfaces/http/handlers/order.go
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/ticketing-storefront/internal/domain/order"
	"github.com/your-org/ticketing-storefront/internal/interfaces/http/middleware"
	"github.com/your-org/ticketing-storefront/internal/pkg/pdf"
)

// OrderHandler handles purchase-history endpoints
type OrderHandler struct {
	orders *order.Store
	pdf    *pdf.Service
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orders *order.Store, pdfService *pdf.Service) *OrderHandler {
	return &OrderHandler{
		orders: orders,
		pdf:    pdfService,
	}
}

// List handles GET /orders
func (h *OrderHandler) List(c *gin.Context) {
	clientID := middleware.GetClientID(c)

	c.JSON(http.StatusOK, gin.H{
		"data": h.orders.List(clientID),
	})
}

// Get handles GET /orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	clientID := middleware.GetClientID(c)

	o, ok := h.orders.Get(clientID, c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Order not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": o,
	})
}

// Invoice handles GET /orders/:id/invoice, streaming a PDF invoice
func (h *OrderHandler) Invoice(c *gin.Context) {
	clientID := middleware.GetClientID(c)

	o, ok := h.orders.Get(clientID, c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Order not found",
		})
		return
	}

	sess := middleware.GetSession(c)
	buf, err := h.pdf.GenerateInvoice(&o, sess.User.Name, sess.User.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate invoice",
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="invoice-%s.pdf"`, o.ID))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
