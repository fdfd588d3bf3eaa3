package main

import (
	"context"
	"fmt"

	"github.com/waste3d/training-portal/config"
	"github.com/waste3d/training-portal/internal/application/usecase"
	"github.com/waste3d/training-portal/internal/domain"
	"github.com/waste3d/training-portal/internal/infrastructure/repository"
	"github.com/waste3d/training-portal/internal/infrastructure/security"
	"github.com/waste3d/training-portal/internal/middleware"
	handlers "github.com/waste3d/training-portal/internal/transport/http"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// 1. Загрузка конфига
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// 2. Подключение к БД. TranslateError нужен, чтобы duplicate key
	// превращался в gorm.ErrDuplicatedKey.
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		logrus.Fatalf("Failed to connect to DB: %v", err)
	}

	// 3. Миграции
	logrus.Println("Running migrations...")
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Training{},
		&domain.ContentItem{},
		&domain.Quiz{},
		&domain.Question{},
		&domain.QuizAttempt{},
		&domain.AuditLog{},
		&domain.TrainingProgress{},
		&domain.Enrollment{},
		&domain.Bootcamp{},
		&domain.BootcampTraining{},
		&domain.BootcampAssignment{},
		&domain.TrainingAssignment{},
	); err != nil {
		logrus.Fatalf("Failed to migrate DB: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logrus.Fatalf("Failed to connect to Redis: %v", err)
	}

	// 4. Инициализация слоев
	quizRepo := repository.NewQuizRepository(db, rdb)
	attemptRepo := repository.NewAttemptRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	trainingRepo := repository.NewTrainingRepository(db)
	userRepo := repository.NewUserRepository(db)
	bootcampRepo := repository.NewBootcampRepository(db)

	progressUC := usecase.NewProgressUseCase(db, progressRepo, enrollmentRepo, trainingRepo, quizRepo, attemptRepo)
	gradingUC := usecase.NewGradingUseCase(db, quizRepo, attemptRepo, auditRepo, userRepo, progressUC)
	bootcampUC := usecase.NewBootcampUseCase(db, bootcampRepo, userRepo, progressUC)

	tokens := security.NewTokenManager(cfg.JWTSecret)
	limiter := middleware.NewRateLimiter(rdb)

	router := handlers.NewRouter(
		handlers.NewQuizHandler(gradingUC),
		handlers.NewProgressHandler(progressUC),
		handlers.NewBootcampHandler(bootcampUC),
		limiter,
		tokens,
		cfg.AllowedOrigins,
	)

	// 5. Запуск HTTP сервера
	port := cfg.Port
	if port == "" {
		port = "8080"
	}
	logrus.Printf("Starting server on :%s", port)
	if err := router.Run(":" + port); err != nil {
		logrus.Fatalf("Failed to start server: %v", err)
	}
}
