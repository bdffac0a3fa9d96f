package middleware

import (
	"errors"
	"net/http"

	custom_error "central360/pkg/errors"

	"github.com/gin-gonic/gin"
)

const exposeErrorDetailsKey = "expose_error_details"

// ErrorDetails controls whether 500 responses carry the underlying error. Production keeps it off.
func ErrorDetails(expose bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(exposeErrorDetailsKey, expose)
		c.Next()
	}
}

// AbortWithError maps typed errors to their status code. Anything untyped is a store failure
// and answers 500 with message.
func AbortWithError(c *gin.Context, err error, message string) {
	_ = c.Error(err)

	var (
		validationErr *custom_error.ValidationError
		notFoundErr   *custom_error.NotFoundError
		uniqueErr     *custom_error.UniqueViolationError
		foreignKeyErr *custom_error.ForeignKeyViolationError
	)

	switch {
	case errors.As(err, &validationErr):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.As(err, &notFoundErr):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": notFoundErr.Error()})
	case errors.As(err, &uniqueErr):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": message, "details": uniqueErr.Error()})
	case errors.As(err, &foreignKeyErr):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": message, "details": foreignKeyErr.Error()})
	default:
		body := gin.H{"error": message}
		if c.GetBool(exposeErrorDetailsKey) {
			body["details"] = err.Error()
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, body)
	}
}

// AbortWithBadRequest answers 400 for a request that failed binding. The binding error is
// attached as details only when ErrorDetails allows it.
func AbortWithBadRequest(c *gin.Context, err error, message string) {
	_ = c.Error(err)

	body := gin.H{"error": message}
	if c.GetBool(exposeErrorDetailsKey) {
		body["details"] = err.Error()
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, body)
}
