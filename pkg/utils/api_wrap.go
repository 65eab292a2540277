package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceID(c *gin.Context) string {
	if v, ok := c.Get("trace_id"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondCreated(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, APIResponse{
		Status:  "success",
		Code:    http.StatusCreated,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
	})
}

// HandleServiceError maps service-layer sentinel errors to HTTP responses.
// Expired links respond 404 with a distinct message; 410 is reserved for
// already-used links so the frontend can render different messaging.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrLinkNotFound):
		RespondError(c, http.StatusNotFound, "Review link not found")
	case errors.Is(err, ErrLinkExpired):
		RespondError(c, http.StatusNotFound, "This review link has expired")
	case errors.Is(err, ErrLinkAlreadyUsed):
		RespondError(c, http.StatusGone, "This review link has already been used")
	case errors.Is(err, ErrNoReviews):
		RespondError(c, http.StatusNotFound, "No reviews found")
	case errors.Is(err, ErrUnauthorized):
		RespondError(c, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, ErrForbidden):
		RespondError(c, http.StatusForbidden, "Forbidden: insufficient permissions")
	default:
		log.Printf("Unknown error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
