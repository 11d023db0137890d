// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/ticketing-storefront/internal/config"
	"github.com/your-org/ticketing-storefront/internal/domain/session"
	"github.com/your-org/ticketing-storefront/internal/interfaces/http/middleware"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	sessions *session.Store
	config   *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(sessions *session.Store, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
		config:   cfg,
	}
}

// LoginRequest carries the login form
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest carries the registration form
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone" binding:"required"`
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	clientID := middleware.GetClientID(c)
	sess, err := h.sessions.Login(c.Request.Context(), clientID, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"data": gin.H{
			"user": sess.User,
		},
	})
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	clientID := middleware.GetClientID(c)
	sess, err := h.sessions.Register(c.Request.Context(), clientID, req.Name, req.Email, req.Password, req.Phone)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"data": gin.H{
			"user": sess.User,
		},
	})
}

// Logout handles POST /auth/logout. Logout always succeeds locally even when
// the upstream notification fails.
func (h *AuthHandler) Logout(c *gin.Context) {
	clientID := middleware.GetClientID(c)
	h.sessions.Logout(c.Request.Context(), clientID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Logout successful",
	})
}

// Session handles GET /auth/session. The frontend calls this on boot to
// learn whether the client is already logged in.
func (h *AuthHandler) Session(c *gin.Context) {
	sess := middleware.GetSession(c)
	if sess == nil {
		c.JSON(http.StatusOK, gin.H{
			"data": gin.H{
				"authenticated": false,
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"authenticated": true,
			"user":          sess.User,
		},
	})
}
