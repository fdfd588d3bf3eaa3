package handlers

import (
	"errors"
	"net/http"

	"github.com/waste3d/training-portal/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// respondError маппит типизированные ошибки движка на HTTP коды.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotEnrolled):
		c.JSON(http.StatusNotFound, gin.H{"error": "not enrolled"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logrus.Errorf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
