package handlers

import (
	"net/http"

	"github.com/waste3d/training-portal/internal/application/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type QuizHandler struct {
	grading *usecase.GradingUseCase
}

func NewQuizHandler(grading *usecase.GradingUseCase) *QuizHandler {
	return &QuizHandler{grading: grading}
}

type submitRequest struct {
	Answers map[string]any `json:"answers"`
}

// POST /api/v1/trainings/:id/quizzes/:quizId/attempts
func (h *QuizHandler) SubmitAttempt(c *gin.Context) {
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
	quizID, err := uuid.Parse(c.Param("quizId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quiz id"})
		return
	}

	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.grading.Submit(c, userID, quizID, trainingID, req.Answers)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// GET /api/v1/trainings/:id/quiz-status
func (h *QuizHandler) QuizStatus(c *gin.Context) {
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

	status, err := h.grading.GetQuizStatus(c, userID, trainingID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}
