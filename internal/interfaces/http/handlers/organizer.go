// internal/interfaces/http/handlers/organizer.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/ticketing-storefront/internal/domain/event"
	"github.com/your-org/ticketing-storefront/internal/domain/organizer"
	"github.com/your-org/ticketing-storefront/internal/domain/session"
	"github.com/your-org/ticketing-storefront/internal/interfaces/http/middleware"
)

// OrganizerHandler handles the organizer console endpoints
type OrganizerHandler struct {
	organizers *organizer.Service
	sessions   *session.Store
}

// NewOrganizerHandler creates a new organizer handler
func NewOrganizerHandler(organizers *organizer.Service, sessions *session.Store) *OrganizerHandler {
	return &OrganizerHandler{
		organizers: organizers,
		sessions:   sessions,
	}
}

// ScanRequest carries a door scan
type ScanRequest struct {
	QRCode string `json:"qr_code" binding:"required"`
}

// DashboardStats handles GET /organizer/dashboard
func (h *OrganizerHandler) DashboardStats(c *gin.Context) {
	cred := h.sessions.Credential(c.Request.Context(), middleware.GetClientID(c))

	stats, err := h.organizers.DashboardStats(c.Request.Context(), cred)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": stats,
	})
}

// MyEvents handles GET /organizer/events
func (h *OrganizerHandler) MyEvents(c *gin.Context) {
	cred := h.sessions.Credential(c.Request.Context(), middleware.GetClientID(c))

	events, err := h.organizers.MyEvents(c.Request.Context(), cred)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": events,
	})
}

// GetEvent handles GET /organizer/events/:id
func (h *OrganizerHandler) GetEvent(c *gin.Context) {
	cred := h.sessions.Credential(c.Request.Context(), middleware.GetClientID(c))

	evt, err := h.organizers.GetEvent(c.Request.Context(), cred, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": evt,
	})
}

// CreateEvent handles POST /organizer/events
func (h *OrganizerHandler) CreateEvent(c *gin.Context) {
	var req event.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	cred := h.sessions.Credential(c.Request.Context(), middleware.GetClientID(c))
	evt, err := h.organizers.CreateEvent(c.Request.Context(), cred, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Event created",
		"data":    evt,
	})
}

// UpdateEvent handles PUT /organizer/events/:id
func (h *OrganizerHandler) UpdateEvent(c *gin.Context) {
	var req event.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	cred := h.sessions.Credential(c.Request.Context(), middleware.GetClientID(c))
	evt, err := h.organizers.UpdateEvent(c.Request.Context(), cred, c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event updated",
		"data":    evt,
	})
}

// DeleteEvent handles DELETE /organizer/events/:id
func (h *OrganizerHandler) DeleteEvent(c *gin.Context) {
	cred := h.sessions.Credential(c.Request.Context(), middleware.GetClientID(c))
	if err := h.organizers.DeleteEvent(c.Request.Context(), cred, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event deleted",
	})
}

// PublishEvent handles POST /organizer/events/:id/publish
func (h *OrganizerHandler) PublishEvent(c *gin.Context) {
	cred := h.sessions.Credential(c.Request.Context(), middleware.GetClientID(c))
	if err := h.organizers.PublishEvent(c.Request.Context(), cred, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event published",
	})
}

// UnpublishEvent handles POST /organizer/events/:id/unpublish
func (h *OrganizerHandler) UnpublishEvent(c *gin.Context) {
	cred := h.sessions.Credential(c.Request.Context(), middleware.GetClientID(c))
	if err := h.organizers.UnpublishEvent(c.Request.Context(), cred, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event unpublished",
	})
}

// UploadEventImage handles POST /organizer/events/upload-image
func (h *OrganizerHandler) UploadEventImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Image file is required",
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Could not read image file",
		})
		return
	}
	defer file.Close()

	cred := h.sessions.Credential(c.Request.Context(), middleware.GetClientID(c))
	imageURL, err := h.organizers.UploadEventImage(c.Request.Context(), cred, fileHeader.Filename, file)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Image uploaded",
		"data": gin.H{
			"image_url": imageURL,
		},
	})
}

// Tickets handles GET /organizer/tickets
func (h *OrganizerHandler) Tickets(c *gin.Context) {
	filters := &organizer.TicketFilters{
		EventID: c.Query("event_id"),
		Status:  c.Query("status"),
	}

	cred := h.sessions.Credential(c.Request.Context(), middleware.GetClientID(c))
	tickets, err := h.organizers.Tickets(c.Request.Context(), cred, filters)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": tickets,
	})
}

// EventTickets handles GET /organizer/events/:id/tickets
func (h *OrganizerHandler) EventTickets(c *gin.Context) {
	cred := h.sessions.Credential(c.Request.Context(), middleware.GetClientID(c))

	tickets, err := h.organizers.EventTickets(c.Request.Context(), cred, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": tickets,
	})
}

// ScanTicket handles POST /organizer/tickets/scan. The scanner page posts
// each decoded QR code here; the upstream decides validity.
func (h *OrganizerHandler) ScanTicket(c *gin.Context) {
	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	cred := h.sessions.Credential(c.Request.Context(), middleware.GetClientID(c))
	result, err := h.organizers.ScanTicket(c.Request.Context(), cred, req.QRCode)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": result,
	})
}

// CancelTicket handles PUT /organizer/tickets/:id/cancel
func (h *OrganizerHandler) CancelTicket(c *gin.Context) {
	cred := h.sessions.Credential(c.Request.Context(), middleware.GetClientID(c))
	if err := h.organizers.CancelTicket(c.Request.Context(), cred, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Ticket cancelled",
	})
}

// SalesData handles GET /organizer/analytics/sales
func (h *OrganizerHandler) SalesData(c *gin.Context) {
	period := c.DefaultQuery("period", "month")

	cred := h.sessions.Credential(c.Request.Context(), middleware.GetClientID(c))
	data, err := h.organizers.SalesData(c.Request.Context(), cred, period)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": data,
	})
}

// EventAnalytics handles GET /organizer/analytics/events/:id
func (h *OrganizerHandler) EventAnalytics(c *gin.Context) {
	cred := h.sessions.Credential(c.Request.Context(), middleware.GetClientID(c))

	data, err := h.organizers.EventAnalytics(c.Request.Context(), cred, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": data,
	})
}

// RevenueAnalytics handles GET /organizer/analytics/revenue
func (h *OrganizerHandler) RevenueAnalytics(c *gin.Context) {
	period := c.DefaultQuery("period", "month")

	cred := h.sessions.Credential(c.Request.Context(), middleware.GetClientID(c))
	data, err := h.organizers.RevenueAnalytics(c.Request.Context(), cred, period)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": data,
	})
}

// EventAttendees handles GET /organizer/events/:id/attendees
func (h *OrganizerHandler) EventAttendees(c *gin.Context) {
	cred := h.sessions.Credential(c.Request.Context(), middleware.GetClientID(c))

	attendees, err := h.organizers.EventAttendees(c.Request.Context(), cred, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": attendees,
	})
}
