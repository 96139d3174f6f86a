package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jkco/site-core/internal/pkg/apperr"
)

// Envelope is the uniform response body.
type Envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Data    interface{}       `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// Pagination metadata returned with paginated responses.
type Pagination struct {
	Count int   `json:"count"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Pages int   `json:"pages"`
}

// pagedResponse is the envelope for paginated list responses.
type pagedResponse struct {
	Success bool `json:"success"`
	Pagination
	Data interface{} `json:"data"`
}

// OK sends a 200 response wrapping data.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

// OKMsg sends a 200 response with a message and optional data.
func OKMsg(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// Paged sends a paginated list response.
func Paged(c *gin.Context, data interface{}, pagination Pagination) {
	c.JSON(http.StatusOK, pagedResponse{
		Success:    true,
		Pagination: pagination,
		Data:       data,
	})
}

// Created sends a 201 response.
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

// BadRequest sends a 400 error response.
func BadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, Envelope{Message: message})
}

// Unauthorized sends a 401 error response.
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Not authorized"
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, Envelope{Message: message})
}

// NotFound sends a 404 error response.
func NotFound(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusNotFound, Envelope{Message: "Route not found"})
}

// NotFoundMsg sends a 404 error with a custom message.
func NotFoundMsg(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusNotFound, Envelope{Message: message})
}

// MethodNotAllowed sends a 405 error response.
func MethodNotAllowed(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusMethodNotAllowed, Envelope{Message: "Method not allowed"})
}

// TooManyRequests sends a 429 error response.
func TooManyRequests(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, Envelope{Message: "Too many requests, slow down"})
}

// InternalError sends a 500 error response.
func InternalError(c *gin.Context, message string, err error) {
	body := Envelope{Message: message}
	if err != nil {
		body.Error = err.Error()
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, body)
}

// Error maps err through the apperr taxonomy. message is used as the
// human-readable summary for server-side failures and not-found responses.
func Error(c *gin.Context, message string, err error) {
	status := apperr.HTTPStatus(err)
	body := Envelope{Message: message}

	var verr *apperr.ValidationError
	switch {
	case errors.As(err, &verr):
		body.Message = "Validation failed"
		body.Errors = verr.Fields
	case errors.Is(err, apperr.ErrUnsupportedMedia):
		body.Message = "Only image files are allowed"
		body.Error = err.Error()
	case errors.Is(err, apperr.ErrPayloadTooLarge):
		body.Message = "Image exceeds the maximum upload size"
		body.Error = err.Error()
	case errors.Is(err, apperr.ErrAuth):
		body.Message = "Not authorized"
	case status == http.StatusInternalServerError:
		body.Error = err.Error()
	}
	c.AbortWithStatusJSON(status, body)
}
