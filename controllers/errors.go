package controllers

import (
	"errors"
	"legal-aid-api/services"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors to the uniform envelope
// {"error": {"code", "message", "details?"}}.
func respondError(c *gin.Context, err error) {
	var vErr *services.ValidationError
	var tErr *services.InvalidTransitionError

	switch {
	case errors.As(err, &vErr):
		body := gin.H{"code": "VALIDATION_ERROR", "message": vErr.Message}
		if len(vErr.Details) > 0 {
			body["details"] = vErr.Details
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": body})
	case errors.As(err, &tErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"code":    "INVALID_TRANSITION",
			"message": tErr.Error(),
		}})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{
			"code":    "NOT_FOUND",
			"message": "Record not found",
		}})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": "Unauthorized",
		}})
	default:
		log.Printf("Internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{
			"code":    "INTERNAL_ERROR",
			"message": "Internal server error",
		}})
	}
}

// respondBindingError wraps gin binding failures in the validation envelope.
func respondBindingError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
		"code":    "VALIDATION_ERROR",
		"message": err.Error(),
	}})
}

func respondNotFound(c *gin.Context) {
	respondError(c, services.ErrNotFound)
}
