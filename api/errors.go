package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/Domenick1991/courtbooking/internal/domain"
	"github.com/gin-gonic/gin"
)

// respondError maps domain errors onto HTTP statuses. Anything outside the
// domain taxonomy is a 500 and is logged instead of leaked to the client.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrInvalidToken):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrSlotTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidInterval),
		errors.Is(err, domain.ErrInactiveCourt),
		errors.Is(err, domain.ErrInvalidState),
		errors.Is(err, domain.ErrAlreadyClosed),
		errors.Is(err, domain.ErrTooLateToCancel),
		errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("ERROR: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
