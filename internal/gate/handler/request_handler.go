package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/razan-ali/petrolube-guardpass/internal/gate/service"
)

// RequestHandler handles visitor request submission and lifecycle endpoints.
type RequestHandler struct {
	svc *service.RequestService
}

// NewRequestHandler creates a request handler.
func NewRequestHandler(svc *service.RequestService) *RequestHandler {
	return &RequestHandler{svc: svc}
}

// Submit handles the public submission endpoint.
// POST /api/v1/requests
func (h *RequestHandler) Submit(c *gin.Context) {
	var req service.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	result, err := h.svc.Submit(c.Request.Context(), &req)
	if err != nil {
		FromError(c, err)
		return
	}
	Created(c, result)
}

// ListPending returns requests awaiting the caller's approval.
// GET /api/v1/requests/pending
func (h *RequestHandler) ListPending(c *gin.Context) {
	requests, err := h.svc.ListPending(c.Request.Context(), GetActor(c))
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, gin.H{"items": requests})
}

// ListPendingSecurity returns department-cleared requests awaiting security.
// GET /api/v1/requests/pending-security
func (h *RequestHandler) ListPendingSecurity(c *gin.Context) {
	requests, err := h.svc.ListPendingSecurity(c.Request.Context(), GetActor(c))
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, gin.H{"items": requests})
}

// ListApproved returns fully cleared requests with their logs and notes.
// GET /api/v1/requests/approved
func (h *RequestHandler) ListApproved(c *gin.Context) {
	requests, err := h.svc.ListApproved(c.Request.Context(), GetActor(c))
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, gin.H{"items": requests})
}

// ListRejected returns rejected requests in the caller's scope.
// GET /api/v1/requests/rejected
func (h *RequestHandler) ListRejected(c *gin.Context) {
	requests, err := h.svc.ListRejected(c.Request.Context(), GetActor(c))
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, gin.H{"items": requests})
}

// Get returns a single request with children, scope-checked.
// GET /api/v1/requests/:id
func (h *RequestHandler) Get(c *gin.Context) {
	request, err := h.svc.Get(c.Request.Context(), GetActor(c), c.Param("id"))
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, request)
}

type approveRequest struct {
	Remarks string `json:"remarks"`
}

// Approve advances a request one stage. The stage is picked by the caller's
// role: department admins clear to pending_security, security admins to
// approved.
// POST /api/v1/requests/:id/approve
func (h *RequestHandler) Approve(c *gin.Context) {
	var req approveRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	actor := GetActor(c)
	var (
		result interface{}
		err    error
	)
	if actor.IsSecurityAdmin() {
		result, err = h.svc.SecurityApprove(c.Request.Context(), actor, c.Param("id"), req.Remarks)
	} else {
		result, err = h.svc.DepartmentApprove(c.Request.Context(), actor, c.Param("id"), req.Remarks)
	}
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, result)
}

type rejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// Reject moves a request to the terminal rejected state.
// POST /api/v1/requests/:id/reject
func (h *RequestHandler) Reject(c *gin.Context) {
	var req rejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "a rejection reason is required")
		return
	}

	result, err := h.svc.Reject(c.Request.Context(), GetActor(c), c.Param("id"), req.Reason)
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, result)
}
