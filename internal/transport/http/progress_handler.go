package handlers

import (
	"net/http"

	"github.com/waste3d/training-portal/internal/application/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProgressHandler struct {
	progress *usecase.ProgressUseCase
}

func NewProgressHandler(progress *usecase.ProgressUseCase) *ProgressHandler {
	return &ProgressHandler{progress: progress}
}

// PUT /api/v1/trainings/:id/progress
func (h *ProgressHandler) UpdateProgress(c *gin.Context) {
	userID, err := uuid.Parse(c.GetString("userId"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user id"})
		return
	}
	trainingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid training id"})
		return
	}

	var delta usecase.ProgressDelta
	if err := c.ShouldBindJSON(&delta); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.progress.UpdateProgress(c, userID, trainingID, delta)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// GET /api/v1/trainings/:id/progress
func (h *ProgressHandler) GetProgress(c *gin.Context) {
	userID, err := uuid.Parse(c.GetString("userId"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user id"})
		return
	}
	trainingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid training id"})
		return
	}

	record, err := h.progress.GetProgress(c, userID, trainingID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}
