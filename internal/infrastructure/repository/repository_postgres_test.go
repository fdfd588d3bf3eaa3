package repository

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/waste3d/training-portal/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	assert.NoError(t, err)

	err = db.AutoMigrate(
		&domain.QuizAttempt{},
		&domain.TrainingProgress{},
		&domain.Enrollment{},
		&domain.BootcampTraining{},
	)
	assert.NoError(t, err)

	// Очистка таблиц перед тестом
	db.Exec("DELETE FROM quiz_attempts")
	db.Exec("DELETE FROM training_progresses")
	db.Exec("DELETE FROM enrollments")
	db.Exec("DELETE FROM bootcamp_trainings")

	return db
}

func TestProgressUpsertIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProgressRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	trainingID := uuid.New()

	rec := &domain.TrainingProgress{
		UserID:             userID,
		TrainingID:         trainingID,
		Status:             domain.StatusInProgress,
		ProgressPercentage: 40,
	}
	rec.SetCompletedItemIDs([]string{"c1"})

	assert.NoError(t, repo.Upsert(ctx, rec))

	// Повторный upsert по тому же ключу перезаписывает поля, не дублирует
	rec.Status = domain.StatusContentCompleted
	rec.ProgressPercentage = 100
	rec.SetCompletedItemIDs([]string{"c1", "c2"})
	assert.NoError(t, repo.Upsert(ctx, rec))

	got, err := repo.Get(ctx, userID, trainingID)
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusContentCompleted, got.Status)
	assert.Equal(t, 100, got.ProgressPercentage)
	assert.Equal(t, []string{"c1", "c2"}, got.CompletedItemIDs())

	var count int64
	db.Model(&domain.TrainingProgress{}).Where("user_id = ?", userID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestProgressUpsertStartedAtSetOnce(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProgressRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	trainingID := uuid.New()

	first := time.Now().Add(-time.Hour)
	rec := &domain.TrainingProgress{
		UserID:             userID,
		TrainingID:         trainingID,
		Status:             domain.StatusInProgress,
		ProgressPercentage: 20,
		StartedAt:          &first,
	}
	assert.NoError(t, repo.Upsert(ctx, rec))

	// Конкурирующий писатель, не видевший первую запись, несет свой
	// started_at — существующий должен пережить перезапись
	later := time.Now()
	rival := &domain.TrainingProgress{
		UserID:             userID,
		TrainingID:         trainingID,
		Status:             domain.StatusInProgress,
		ProgressPercentage: 40,
		StartedAt:          &later,
	}
	assert.NoError(t, repo.Upsert(ctx, rival))

	got, err := repo.Get(ctx, userID, trainingID)
	assert.NoError(t, err)
	assert.Equal(t, 40, got.ProgressPercentage)
	assert.NotNil(t, got.StartedAt)
	assert.WithinDuration(t, first, *got.StartedAt, time.Millisecond)
}

func TestProgressUpsertCompletionMerge(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProgressRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	trainingID := uuid.New()

	started := time.Now().Add(-2 * time.Hour)
	firstDone := time.Now().Add(-time.Hour)
	firstDuration := int64(3600)
	rec := &domain.TrainingProgress{
		UserID:                    userID,
		TrainingID:                trainingID,
		Status:                    domain.StatusCompleted,
		ProgressPercentage:        100,
		StartedAt:                 &started,
		CompletedAt:               &firstDone,
		CompletionDurationSeconds: &firstDuration,
	}
	assert.NoError(t, repo.Upsert(ctx, rec))

	// Повторное завершение не сдвигает момент первого
	laterDone := time.Now()
	laterDuration := int64(7200)
	again := &domain.TrainingProgress{
		UserID:                    userID,
		TrainingID:                trainingID,
		Status:                    domain.StatusCompleted,
		ProgressPercentage:        100,
		StartedAt:                 &started,
		CompletedAt:               &laterDone,
		CompletionDurationSeconds: &laterDuration,
	}
	assert.NoError(t, repo.Upsert(ctx, again))

	got, err := repo.Get(ctx, userID, trainingID)
	assert.NoError(t, err)
	assert.NotNil(t, got.CompletedAt)
	assert.WithinDuration(t, firstDone, *got.CompletedAt, time.Millisecond)
	assert.Equal(t, firstDuration, *got.CompletionDurationSeconds)

	// Регресс из COMPLETED очищает completed_at и длительность
	regressed := &domain.TrainingProgress{
		UserID:             userID,
		TrainingID:         trainingID,
		Status:             domain.StatusQuizzesPending,
		ProgressPercentage: 100,
		StartedAt:          &started,
	}
	assert.NoError(t, repo.Upsert(ctx, regressed))

	got, err = repo.Get(ctx, userID, trainingID)
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusQuizzesPending, got.Status)
	assert.Nil(t, got.CompletedAt)
	assert.Nil(t, got.CompletionDurationSeconds)
}

func TestAttemptNumberUniqueIndex(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAttemptRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	quizID := uuid.New()
	trainingID := uuid.New()

	first := &domain.QuizAttempt{
		ID:            uuid.New(),
		UserID:        userID,
		QuizID:        quizID,
		TrainingID:    trainingID,
		AttemptNumber: 1,
		Score:         80,
		Passed:        true,
		SubmittedAt:   time.Now(),
	}
	assert.NoError(t, repo.Create(ctx, first))

	// Та же пара (user, quiz) и тот же номер — duplicate key
	dup := &domain.QuizAttempt{
		ID:            uuid.New(),
		UserID:        userID,
		QuizID:        quizID,
		TrainingID:    trainingID,
		AttemptNumber: 1,
		Score:         50,
		SubmittedAt:   time.Now(),
	}
	err := repo.Create(ctx, dup)
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))

	count, err := repo.CountByUserAndQuiz(ctx, userID, quizID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRenumberLinks(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBootcampRepository(db)
	ctx := context.Background()

	bootcampID := uuid.New()
	t1, t2, t3 := uuid.New(), uuid.New(), uuid.New()

	for i, trainingID := range []uuid.UUID{t1, t2, t3} {
		assert.NoError(t, db.Create(&domain.BootcampTraining{
			BootcampID: bootcampID,
			TrainingID: trainingID,
			OrderIndex: i,
		}).Error)
	}

	rows, err := repo.DeleteLink(ctx, bootcampID, t2)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	assert.NoError(t, repo.RenumberLinks(ctx, bootcampID))

	links, err := repo.ListLinks(ctx, bootcampID)
	assert.NoError(t, err)
	assert.Len(t, links, 2)
	assert.Equal(t, 0, links[0].OrderIndex)
	assert.Equal(t, t1, links[0].TrainingID)
	assert.Equal(t, 1, links[1].OrderIndex)
	assert.Equal(t, t3, links[1].TrainingID)
}
