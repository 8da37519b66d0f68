package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/razan-ali/petrolube-guardpass/internal/config"
	"github.com/razan-ali/petrolube-guardpass/internal/gate/service"
)

// Handlers is the handler collection.
type Handlers struct {
	Auth      *AuthHandler
	Request   *RequestHandler
	Log       *LogHandler
	Blacklist *BlacklistHandler
	Stats     *StatsHandler
	SSE       *SSEHandler
}

// NewHandlers creates the handler collection.
func NewHandlers(svc *service.Services, cfg *config.Config) *Handlers {
	return &Handlers{
		Auth:      NewAuthHandler(svc.Auth),
		Request:   NewRequestHandler(svc.Request),
		Log:       NewLogHandler(svc.Log),
		Blacklist: NewBlacklistHandler(svc.Blacklist),
		Stats:     NewStatsHandler(svc.Stats, svc.Report),
		SSE:       NewSSEHandler(),
	}
}

// Response is the common response envelope.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success writes a 200 envelope.
func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created writes a 201 envelope.
func Created(c *gin.Context, data interface{}) {
	c.JSON(201, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error writes an error envelope. The HTTP status is the leading three
// digits of the five-digit business code.
func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, 40100, message)
}

func Forbidden(c *gin.Context, message string) {
	Error(c, 40300, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

func Conflict(c *gin.Context, message string) {
	Error(c, 40900, message)
}

func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}

// FromError maps service errors onto business codes.
func FromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		Error(c, 40000, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		Error(c, 40101, "invalid email or password")
	case errors.Is(err, service.ErrBlacklisted):
		Error(c, 40320, err.Error())
	case errors.Is(err, service.ErrForbidden):
		Error(c, 40300, err.Error())
	case errors.Is(err, service.ErrNotFound):
		Error(c, 40400, err.Error())
	case errors.Is(err, service.ErrInvalidState):
		Error(c, 40900, err.Error())
	default:
		Error(c, 50000, err.Error())
	}
}

// GetUserID returns the authenticated user id from the gin context.
func GetUserID(c *gin.Context) string {
	userID, _ := c.Get("user_id")
	if id, ok := userID.(string); ok {
		return id
	}
	return ""
}

func contextString(c *gin.Context, key string) string {
	v, _ := c.Get(key)
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// GetActor resolves the acting identity from the validated token claims.
func GetActor(c *gin.Context) service.Actor {
	return service.Actor{
		ID:         GetUserID(c),
		Role:       contextString(c, "role"),
		Department: contextString(c, "department"),
	}
}
