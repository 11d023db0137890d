// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/ticketing-storefront/internal/domain/cart"
	"github.com/your-org/ticketing-storefront/internal/domain/event"
	"github.com/your-org/ticketing-storefront/internal/domain/session"
	"github.com/your-org/ticketing-storefront/internal/interfaces/http/middleware"
)

// CartHandler handles cart endpoints. The cart lives in memory per client
// session; event details are snapshotted into the line at add time so the
// cart renders without further catalog round-trips.
type CartHandler struct {
	carts    *cart.Store
	events   *event.Service
	sessions *session.Store
}

// NewCartHandler creates a new cart handler
func NewCartHandler(carts *cart.Store, events *event.Service, sessions *session.Store) *CartHandler {
	return &CartHandler{
		carts:    carts,
		events:   events,
		sessions: sessions,
	}
}

// AddItemRequest carries a cart addition
type AddItemRequest struct {
	EventID          string `json:"event_id" binding:"required"`
	StandardQuantity int    `json:"standard_quantity" binding:"min=0"`
	VIPQuantity      int    `json:"vip_quantity" binding:"min=0"`
}

// UpdateItemRequest sets one tier's quantity to an exact value
type UpdateItemRequest struct {
	TicketType cart.TicketType `json:"ticket_type" binding:"required"`
	Quantity   int             `json:"quantity" binding:"min=0"`
}

// Get handles GET /cart
func (h *CartHandler) Get(c *gin.Context) {
	clientID := middleware.GetClientID(c)

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"items": h.carts.Lines(clientID),
			"total": h.carts.Total(clientID),
		},
	})
}

// AddItem handles POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if req.StandardQuantity == 0 && req.VIPQuantity == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "At least one ticket is required",
		})
		return
	}

	clientID := middleware.GetClientID(c)
	cred := h.sessions.Credential(c.Request.Context(), clientID)

	evt, err := h.events.Get(c.Request.Context(), cred, req.EventID)
	if err != nil {
		respondError(c, err)
		return
	}

	h.carts.Add(clientID, cart.Line{
		EventID:          evt.ID,
		EventTitle:       evt.Title,
		EventDate:        evt.Date,
		EventLocation:    evt.Location,
		EventImage:       evt.Image,
		StandardQuantity: req.StandardQuantity,
		VIPQuantity:      req.VIPQuantity,
		StandardPrice:    evt.Price,
		VIPPrice:         evt.VIPPrice,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart",
		"data": gin.H{
			"items": h.carts.Lines(clientID),
			"total": h.carts.Total(clientID),
		},
	})
}

// UpdateItem handles PUT /cart/items/:eventId
func (h *CartHandler) UpdateItem(c *gin.Context) {
	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if !req.TicketType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Unknown ticket type",
		})
		return
	}

	clientID := middleware.GetClientID(c)
	h.carts.UpdateQuantity(clientID, c.Param("eventId"), req.TicketType, req.Quantity)

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart updated",
		"data": gin.H{
			"items": h.carts.Lines(clientID),
			"total": h.carts.Total(clientID),
		},
	})
}

// RemoveItem handles DELETE /cart/items/:eventId
func (h *CartHandler) RemoveItem(c *gin.Context) {
	clientID := middleware.GetClientID(c)
	h.carts.Remove(clientID, c.Param("eventId"))

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart",
		"data": gin.H{
			"items": h.carts.Lines(clientID),
			"total": h.carts.Total(clientID),
		},
	})
}

// Clear handles DELETE /cart
func (h *CartHandler) Clear(c *gin.Context) {
	clientID := middleware.GetClientID(c)
	h.carts.Clear(clientID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared",
	})
}
