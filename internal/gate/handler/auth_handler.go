package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/razan-ali/petrolube-guardpass/internal/gate/service"
)

// AuthHandler handles login and profile endpoints.
type AuthHandler struct {
	svc *service.AuthService
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and returns an access token.
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "email and password are required")
		return
	}

	result, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, result)
}

// Me returns the authenticated user's profile.
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	profile, err := h.svc.Me(c.Request.Context(), GetUserID(c))
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, profile)
}
