package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/freela-market/freela-backend/internal/dispatch"
	"github.com/freela-market/freela-backend/internal/projects/domain"
)

// writeError translates the error taxonomy to fixed status codes. Nothing
// is retried here; persistence and lifecycle failures arrive unchanged
// from the handlers.
func writeError(c *gin.Context, err error) {
	var vErr *dispatch.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "violations": vErr.Violations})
		return
	}

	switch {
	case errors.Is(err, dispatch.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
	case errors.Is(err, dispatch.ErrForbidden), errors.Is(err, domain.ErrCommentForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
	case errors.Is(err, domain.ErrInvalidTransition):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrTitleTooLong), errors.Is(err, domain.ErrDescriptionTooLong):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "project was modified concurrently"})
	case errors.Is(err, dispatch.ErrNoHandler):
		// Configuration defect: should have been caught at startup.
		log.Printf("dispatch error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	default:
		log.Printf("unhandled error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
