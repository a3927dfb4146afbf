package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Body is the standard API response envelope. The Message key is the
// shape the original clients were built against, so it stays top-level:
// it carries the payload on success and the human-readable reason on error.
type Body struct {
	Message interface{} `json:"Message"`
	Code    string      `json:"code,omitempty"`
}

// OK sends a 200 response with the payload under Message.
func OK(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, Body{Message: payload})
}

// Created sends a 201 response.
func Created(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusCreated, Body{Message: payload})
}

// Error sends an error response with a machine-readable code.
func Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, Body{Message: message, Code: code})
}

// BadRequest sends a 400 error response.
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, "BAD_REQUEST", message)
}

// Unauthorized sends a 401 error response.
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, "UNAUTHORIZED", message)
}

// Forbidden sends a 403 error response.
func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, "FORBIDDEN", message)
}

// NotFound sends a 404 error response.
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, "NOT_FOUND", message)
}

// Conflict sends a 409 error response.
func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, "CONFLICT", message)
}

// InternalError sends a 500 error response.
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", message)
}
