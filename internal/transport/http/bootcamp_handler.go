package handlers

import (
	"net/http"

	"github.com/waste3d/training-portal/internal/application/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BootcampHandler struct {
	bootcamps *usecase.BootcampUseCase
}

func NewBootcampHandler(bootcamps *usecase.BootcampUseCase) *BootcampHandler {
	return &BootcampHandler{bootcamps: bootcamps}
}

type assignRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// POST /api/v1/bootcamps/:id/assignments
func (h *BootcampHandler) Assign(c *gin.Context) {
	bootcampID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bootcamp id"})
		return
	}

	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := h.bootcamps.Assign(c, bootcampID, userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true})
}

// DELETE /api/v1/bootcamps/:id/assignments/:userId
func (h *BootcampHandler) Unassign(c *gin.Context) {
	bootcampID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bootcamp id"})
		return
	}
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := h.bootcamps.Unassign(c, bootcampID, userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DELETE /api/v1/bootcamps/:id/trainings/:trainingId
func (h *BootcampHandler) RemoveTraining(c *gin.Context) {
	bootcampID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bootcamp id"})
		return
	}
	trainingID, err := uuid.Parse(c.Param("trainingId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid training id"})
		return
	}

	if err := h.bootcamps.RemoveTraining(c, bootcampID, trainingID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
