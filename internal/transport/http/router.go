package handlers

import (
	"strings"
	"time"

	"github.com/waste3d/training-portal/internal/infrastructure/security"
	"github.com/waste3d/training-portal/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(
	quizHandler *QuizHandler,
	progressHandler *ProgressHandler,
	bootcampHandler *BootcampHandler,
	limiter *middleware.RateLimiter,
	tokens *security.TokenManager,
	allowedOrigins string,
) *gin.Engine {
	r := gin.Default()

	config := cors.DefaultConfig()
	if allowedOrigins != "" {
		config.AllowOrigins = strings.Split(allowedOrigins, ",")
	} else {
		config.AllowAllOrigins = true
	}
	config.AllowCredentials = !config.AllowAllOrigins
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"}
	r.Use(cors.New(config))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(tokens))
	{
		trainings := api.Group("/trainings")
		{
			trainings.POST("/:id/quizzes/:quizId/attempts", limiter.Limit("quiz_submit", 10, 1*time.Minute), quizHandler.SubmitAttempt)
			trainings.GET("/:id/quiz-status", quizHandler.QuizStatus)
			trainings.PUT("/:id/progress", progressHandler.UpdateProgress)
			trainings.GET("/:id/progress", progressHandler.GetProgress)
		}
		bootcamps := api.Group("/bootcamps")
		{
			bootcamps.POST("/:id/assignments", bootcampHandler.Assign)
			bootcamps.DELETE("/:id/assignments/:userId", bootcampHandler.Unassign)
			bootcamps.DELETE("/:id/trainings/:trainingId", bootcampHandler.RemoveTraining)
		}
	}

	return r
}
