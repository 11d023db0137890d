// internal/interfaces/http/handlers/event.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/ticketing-storefront/internal/domain/event"
	"github.com/your-org/ticketing-storefront/internal/domain/session"
	"github.com/your-org/ticketing-storefront/internal/interfaces/http/middleware"
)

// EventHandler handles the public event catalog endpoints
type EventHandler struct {
	events   *event.Service
	sessions *session.Store
}

// NewEventHandler creates a new event handler
func NewEventHandler(events *event.Service, sessions *session.Store) *EventHandler {
	return &EventHandler{
		events:   events,
		sessions: sessions,
	}
}

// List handles GET /events
func (h *EventHandler) List(c *gin.Context) {
	filters := &event.Filters{
		Category:  c.Query("category"),
		Search:    c.Query("search"),
		Location:  c.Query("location"),
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
		Sort:      c.Query("sort"),
	}
	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		filters.Page = page
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
		filters.Limit = limit
	}
	if minPrice, err := strconv.ParseInt(c.Query("min_price"), 10, 64); err == nil {
		filters.MinPrice = minPrice
	}
	if maxPrice, err := strconv.ParseInt(c.Query("max_price"), 10, 64); err == nil {
		filters.MaxPrice = maxPrice
	}
	if c.Query("featured") == "true" {
		filters.Featured = true
	}

	cred := h.sessions.Credential(c.Request.Context(), middleware.GetClientID(c))
	result, err := h.events.List(c.Request.Context(), cred, filters)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       result.Events,
		"pagination": result.Pagination,
	})
}

// Get handles GET /events/:id
func (h *EventHandler) Get(c *gin.Context) {
	cred := h.sessions.Credential(c.Request.Context(), middleware.GetClientID(c))
	evt, err := h.events.Get(c.Request.Context(), cred, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": evt,
	})
}

// Featured handles GET /events/featured
func (h *EventHandler) Featured(c *gin.Context) {
	cred := h.sessions.Credential(c.Request.Context(), middleware.GetClientID(c))
	events, err := h.events.Featured(c.Request.Context(), cred)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": events,
	})
}

// Categories handles GET /events/categories
func (h *EventHandler) Categories(c *gin.Context) {
	cred := h.sessions.Credential(c.Request.Context(), middleware.GetClientID(c))
	categories, err := h.events.Categories(c.Request.Context(), cred)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": categories,
	})
}

// SearchSuggestions handles GET /events/search/suggestions
func (h *EventHandler) SearchSuggestions(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusOK, gin.H{
			"data": []string{},
		})
		return
	}

	cred := h.sessions.Credential(c.Request.Context(), middleware.GetClientID(c))
	suggestions, err := h.events.SearchSuggestions(c.Request.Context(), cred, query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": suggestions,
	})
}

// Create handles POST /events
func (h *EventHandler) Create(c *gin.Context) {
	var req event.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	cred := h.sessions.Credential(c.Request.Context(), middleware.GetClientID(c))
	evt, err := h.events.Create(c.Request.Context(), cred, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Event created",
		"data":    evt,
	})
}

// UploadImage handles POST /events/upload-image
func (h *EventHandler) UploadImage(c *gin.Context) {
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
	image, err := h.events.UploadImage(c.Request.Context(), cred, fileHeader.Filename, file)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Image uploaded",
		"data": gin.H{
			"image": image,
		},
	})
}

// Home handles GET /home, the aggregate payload behind the landing page:
// featured events plus the category list in one round-trip.
func (h *EventHandler) Home(c *gin.Context) {
	ctx := c.Request.Context()
	cred := h.sessions.Credential(ctx, middleware.GetClientID(c))

	featured, err := h.events.Featured(ctx, cred)
	if err != nil {
		respondError(c, err)
		return
	}

	categories, err := h.events.Categories(ctx, cred)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"featured":   featured,
			"categories": categories,
		},
	})
}
