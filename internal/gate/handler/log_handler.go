package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/razan-ali/petrolube-guardpass/internal/gate/service"
)

// LogHandler handles gate entry/exit logging and file attachments.
type LogHandler struct {
	svc *service.LogService
}

// NewLogHandler creates a log handler.
func NewLogHandler(svc *service.LogService) *LogHandler {
	return &LogHandler{svc: svc}
}

type openEntryRequest struct {
	Notes string `json:"notes"`
}

// OpenEntry records a visitor entering the facility.
// POST /api/v1/requests/:id/entry
func (h *LogHandler) OpenEntry(c *gin.Context) {
	var req openEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	log, err := h.svc.OpenEntry(c.Request.Context(), GetActor(c), c.Param("id"), req.Notes)
	if err != nil {
		FromError(c, err)
		return
	}
	Created(c, log)
}

// CloseExit records a visitor leaving the facility.
// POST /api/v1/logs/:id/exit
func (h *LogHandler) CloseExit(c *gin.Context) {
	log, err := h.svc.CloseExit(c.Request.Context(), GetActor(c), c.Param("id"))
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, log)
}

// ListLogs returns all entry/exit logs for one request.
// GET /api/v1/requests/:id/logs
func (h *LogHandler) ListLogs(c *gin.Context) {
	logs, err := h.svc.ListLogs(c.Request.Context(), GetActor(c), c.Param("id"))
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, gin.H{"items": logs})
}

// UploadDeliveryNote attaches a delivery note file to a truck request.
// POST /api/v1/requests/:id/delivery-notes  (multipart: file, exit_log_id)
func (h *LogHandler) UploadDeliveryNote(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		InternalError(c, "open upload: "+err.Error())
		return
	}
	defer file.Close()

	note, err := h.svc.UploadDeliveryNote(
		c.Request.Context(),
		GetActor(c),
		c.Param("id"),
		c.PostForm("exit_log_id"),
		fileHeader.Filename,
		file,
		fileHeader.Size,
		fileHeader.Header.Get("Content-Type"),
	)
	if err != nil {
		FromError(c, err)
		return
	}
	Created(c, note)
}

// AttachDocument attaches a supporting document to a pending request. This is
// part of the public submission flow, so no actor is involved.
// POST /api/v1/requests/:id/documents  (multipart: file, document_type)
func (h *LogHandler) AttachDocument(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		InternalError(c, "open upload: "+err.Error())
		return
	}
	defer file.Close()

	doc, err := h.svc.AttachDocument(
		c.Request.Context(),
		c.Param("id"),
		c.PostForm("document_type"),
		fileHeader.Filename,
		file,
		fileHeader.Size,
		fileHeader.Header.Get("Content-Type"),
	)
	if err != nil {
		FromError(c, err)
		return
	}
	Created(c, doc)
}
