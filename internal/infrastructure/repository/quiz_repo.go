package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/waste3d/training-portal/internal/domain"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type QuizRepository struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewQuizRepository(db *gorm.DB, rdb *redis.Client) *QuizRepository {
	return &QuizRepository{db: db, rdb: rdb}
}

// WithTx возвращает копию репозитория, привязанную к транзакции.
func (r *QuizRepository) WithTx(tx *gorm.DB) *QuizRepository {
	return &QuizRepository{db: tx, rdb: r.rdb}
}

// GetWithQuestions загружает квиз с вопросами в исходном порядке.
// Квизы неизменяемы после создания, поэтому кешируем на час.
func (r *QuizRepository) GetWithQuestions(ctx context.Context, id uuid.UUID) (*domain.Quiz, error) {
	key := "quiz:detail:" + id.String()

	if r.rdb != nil {
		val, err := r.rdb.Get(ctx, key).Result()
		if err == nil {
			var q domain.Quiz
			if json.Unmarshal([]byte(val), &q) == nil {
				return &q, nil
			}
		}
	}

	var quiz domain.Quiz
	err := r.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("\"order\" asc")
		}).
		First(&quiz, "id = ?", id).Error
	if err != nil {
		return nil, err
	}

	if r.rdb != nil {
		if data, err := json.Marshal(quiz); err == nil {
			r.rdb.Set(ctx, key, data, 1*time.Hour)
		}
	}

	return &quiz, nil
}

func (r *QuizRepository) ListByTraining(ctx context.Context, trainingID uuid.UUID) ([]domain.Quiz, error) {
	var quizzes []domain.Quiz
	err := r.db.WithContext(ctx).
		Where("training_id = ?", trainingID).
		Order("created_at asc").
		Find(&quizzes).Error
	return quizzes, err
}

func (r *QuizRepository) CountByTraining(ctx context.Context, trainingID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Quiz{}).
		Where("training_id = ?", trainingID).
		Count(&count).Error
	return count, err
}
