package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the success counterpart of httperr.HTTPError.
type Envelope struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type ListResponse[T any] struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Data    []T    `json:"data"`
	Total   int    `json:"total"`
}

func Write(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Envelope{
		Type:    "success",
		Message: message,
		Data:    data,
	})
}

func OK(c *gin.Context, message string, data any) {
	Write(c, http.StatusOK, message, data)
}

func Created(c *gin.Context, message string, data any) {
	Write(c, http.StatusCreated, message, data)
}

func List[T any](c *gin.Context, message string, data []T) {
	c.JSON(http.StatusOK, ListResponse[T]{
		Type:    "success",
		Message: message,
		Data:    data,
		Total:   len(data),
	})
}
