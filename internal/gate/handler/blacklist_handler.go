package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/razan-ali/petrolube-guardpass/internal/gate/service"
)

// BlacklistHandler handles blacklist management endpoints.
type BlacklistHandler struct {
	svc *service.BlacklistService
}

// NewBlacklistHandler creates a blacklist handler.
func NewBlacklistHandler(svc *service.BlacklistService) *BlacklistHandler {
	return &BlacklistHandler{svc: svc}
}

// Add bars an identifier from the facility.
// POST /api/v1/blacklist
func (h *BlacklistHandler) Add(c *gin.Context) {
	var req service.AddEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	entry, err := h.svc.Add(c.Request.Context(), GetActor(c), &req)
	if err != nil {
		FromError(c, err)
		return
	}
	Created(c, entry)
}

// Remove lifts a blacklist entry. The row is kept with removed_at set.
// DELETE /api/v1/blacklist/:id
func (h *BlacklistHandler) Remove(c *gin.Context) {
	entry, err := h.svc.Remove(c.Request.Context(), GetActor(c), c.Param("id"))
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, entry)
}

// List returns blacklist entries. ?all=true includes removed ones.
// GET /api/v1/blacklist
func (h *BlacklistHandler) List(c *gin.Context) {
	activeOnly := c.Query("all") != "true"
	entries, err := h.svc.List(c.Request.Context(), GetActor(c), activeOnly)
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, gin.H{"items": entries})
}
