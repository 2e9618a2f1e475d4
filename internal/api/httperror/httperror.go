// Package httperror maps domain errors to HTTP responses.
package httperror

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/liliang-cn/conversa/internal/domain"
)

// Status returns the HTTP status code for err
func Status(err error) int {
	var (
		pathErr     *domain.InvalidPathError
		valueErr    *domain.InvalidValueError
		idErr       *domain.InvalidIdentifierError
		unserialErr *domain.UnserializableConfigError
	)

	switch {
	case errors.As(err, &pathErr), errors.As(err, &valueErr), errors.As(err, &idErr),
		errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &unserialErr), errors.Is(err, domain.ErrCorruptConfig):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Write aborts the request with a JSON error body. Internal errors are
// recorded on the context for the logging middleware and not echoed back.
func Write(c *gin.Context, err error) {
	status := Status(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		c.AbortWithStatusJSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
