// internal/interfaces/http/handlers/profile.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/ticketing-storefront/internal/domain/session"
	"github.com/your-org/ticketing-storefront/internal/domain/user"
	"github.com/your-org/ticketing-storefront/internal/interfaces/http/middleware"
)

// ProfileHandler handles the account settings endpoints
type ProfileHandler struct {
	users    *user.Service
	sessions *session.Store
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(users *user.Service, sessions *session.Store) *ProfileHandler {
	return &ProfileHandler{
		users:    users,
		sessions: sessions,
	}
}

// Get handles GET /profile
func (h *ProfileHandler) Get(c *gin.Context) {
	cred := h.sessions.Credential(c.Request.Context(), middleware.GetClientID(c))

	u, err := h.users.Profile(c.Request.Context(), cred)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": u,
	})
}

// Update handles PUT /profile
func (h *ProfileHandler) Update(c *gin.Context) {
	var req user.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	cred := h.sessions.Credential(c.Request.Context(), middleware.GetClientID(c))
	u, err := h.users.UpdateProfile(c.Request.Context(), cred, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated",
		"data":    u,
	})
}

// UploadAvatar handles POST /profile/avatar
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Avatar file is required",
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Could not read avatar file",
		})
		return
	}
	defer file.Close()

	cred := h.sessions.Credential(c.Request.Context(), middleware.GetClientID(c))
	u, err := h.users.UploadAvatar(c.Request.Context(), cred, fileHeader.Filename, file)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Avatar updated",
		"data":    u,
	})
}

// ChangePassword handles PUT /profile/password
func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	var req user.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	cred := h.sessions.Credential(c.Request.Context(), middleware.GetClientID(c))
	if err := h.users.ChangePassword(c.Request.Context(), cred, &req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Password changed",
	})
}

// Favorites handles GET /profile/favorites
func (h *ProfileHandler) Favorites(c *gin.Context) {
	cred := h.sessions.Credential(c.Request.Context(), middleware.GetClientID(c))

	favorites, err := h.users.Favorites(c.Request.Context(), cred)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": favorites,
	})
}

// AddFavorite handles POST /profile/favorites/:eventId
func (h *ProfileHandler) AddFavorite(c *gin.Context) {
	cred := h.sessions.Credential(c.Request.Context(), middleware.GetClientID(c))
	if err := h.users.AddFavorite(c.Request.Context(), cred, c.Param("eventId")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Added to favorites",
	})
}

// RemoveFavorite handles DELETE /profile/favorites/:eventId
func (h *ProfileHandler) RemoveFavorite(c *gin.Context) {
	cred := h.sessions.Credential(c.Request.Context(), middleware.GetClientID(c))
	if err := h.users.RemoveFavorite(c.Request.Context(), cred, c.Param("eventId")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Removed from favorites",
	})
}
