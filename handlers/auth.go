package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"boomiis-api/middleware"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login checks the administrator credential and issues the session cookie
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	if !h.auth.CheckCredentials(req.Email, req.Password) {
		log.Warn().Str("ip", c.ClientIP()).Msg("admin login failed")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	h.auth.SetSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Logout clears the session cookie
func (h *Handler) Logout(c *gin.Context) {
	h.auth.ClearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GetSession returns the authenticated administrator
func (h *Handler) GetSession(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"email": middleware.GetAdminEmail(c)})
}
