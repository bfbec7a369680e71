package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Type    string   `json:"type"`
	Code    string   `json:"error_code"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

func Write(c *gin.Context, status int, code, message string, details ...string) {
	c.JSON(status, HTTPError{
		Type:    "error",
		Code:    code,
		Message: message,
		Errors:  details,
	})
}

func BadRequest(c *gin.Context, code, message string, details ...string) {
	Write(c, http.StatusBadRequest, code, message, details...)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// Respond writes a business error with the status of its kind and
// reports true. Any other error is answered with a generic 500 and
// reported as false so the caller can log it.
func Respond(c *gin.Context, err error) bool {
	if be, ok := AsBusiness(err); ok {
		Write(c, be.Kind.Status(), be.Code, be.Message, be.Details...)
		return true
	}

	Internal(c, "internal_error", "Erro interno do servidor.")
	return false
}
