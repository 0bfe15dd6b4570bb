package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status    string      `json:"status"`
	Code      int         `json:"code"`
	ErrorCode string      `json:"error_code,omitempty"`
	Message   string      `json:"message,omitempty"`
	TraceID   string      `json:"trace_id,omitempty"`
	Data      interface{} `json:"data,omitempty"`
}

func traceID(c *gin.Context) string {
	return c.GetString("trace_id")
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	RespondWithStatus(c, http.StatusOK, data, message)
}

func RespondWithStatus(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, APIResponse{
		Status:  "success",
		Code:    status,
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

// HandleServiceError maps a service error to its HTTP status and stable code.
// 5xx errors are attached to the gin context so the request logger reports them.
func HandleServiceError(c *gin.Context, err error) {
	entry, ok := lookupError(err)
	if !ok {
		entry = errorEntry{code: "INTERNAL", status: http.StatusInternalServerError, message: "Internal server error"}
	}
	if entry.status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(entry.status, APIResponse{
		Status:    "error",
		Code:      entry.status,
		ErrorCode: entry.code,
		Message:   entry.message,
		TraceID:   traceID(c),
	})
}
