package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tavvy/tavvy-pros-api/internal/middleware"
	"github.com/tavvy/tavvy-pros-api/internal/models"
	"github.com/tavvy/tavvy-pros-api/internal/services"
)

// ProAuthHandler handles pro authentication endpoints
type ProAuthHandler struct {
	service services.ProAuthServiceInterface
}

// NewProAuthHandler creates a new ProAuthHandler
func NewProAuthHandler(service services.ProAuthServiceInterface) *ProAuthHandler {
	return &ProAuthHandler{
		service: service,
	}
}

// RequestLogin handles POST /api/v1/auth/pro/request-login
// Generates a one-time login token and sends it via email
func (h *ProAuthHandler) RequestLogin(c *gin.Context) {
	var req models.RequestLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed",
			[]gin.H{{"field": "email", "message": "Invalid email format"}}, err)
		return
	}

	resp, err := h.service.RequestLogin(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, services.ErrProNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "No account found for this email",
			})
			return
		}
		attachError(c, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Could not send the login link",
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// VerifyLogin handles POST /api/v1/auth/pro/verify
// Verifies the login token and creates a session
func (h *ProAuthHandler) VerifyLogin(c *gin.Context) {
	var req models.VerifyLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		attachError(c, err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid token format",
		})
		return
	}

	session, jwtToken, err := h.service.VerifyLogin(c.Request.Context(), req.Token)
	if err != nil {
		if errors.Is(err, services.ErrInvalidLoginToken) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Invalid or expired login token",
			})
			return
		}
		attachError(c, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Could not verify the login token",
		})
		return
	}

	middleware.SetSessionCookie(
		c,
		jwtToken,
		h.service.GetSessionTTL(),
		h.service.GetCookieDomain(),
		h.service.GetCookieSecure(),
	)

	c.JSON(http.StatusOK, models.VerifyLoginResponse{
		Success: true,
		Session: session,
	})
}

// Logout handles POST /api/v1/auth/pro/logout
// Clears the session cookie
func (h *ProAuthHandler) Logout(c *gin.Context) {
	middleware.ClearSessionCookie(
		c,
		h.service.GetCookieDomain(),
		h.service.GetCookieSecure(),
	)

	c.JSON(http.StatusOK, models.LogoutResponse{
		Success: true,
	})
}

// GetSession handles GET /api/v1/auth/pro/session
// Returns the current session info
func (h *ProAuthHandler) GetSession(c *gin.Context) {
	session, err := middleware.GetProSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Not authenticated", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"session": session,
	})
}
