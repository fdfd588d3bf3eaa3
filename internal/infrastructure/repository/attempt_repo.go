package repository

import (
	"context"
	"database/sql"

	"github.com/waste3d/training-portal/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AttemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{db: db}
}

func (r *AttemptRepository) WithTx(tx *gorm.DB) *AttemptRepository {
	return &AttemptRepository{db: tx}
}

func (r *AttemptRepository) Create(ctx context.Context, attempt *domain.QuizAttempt) error {
	return r.db.WithContext(ctx).Create(attempt).Error
}

func (r *AttemptRepository) CountByUserAndQuiz(ctx context.Context, userID, quizID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.QuizAttempt{}).
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Count(&count).Error
	return count, err
}

// HasPassed — есть ли хоть одна успешная попытка по квизу.
func (r *AttemptRepository) HasPassed(ctx context.Context, userID, quizID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.QuizAttempt{}).
		Where("user_id = ? AND quiz_id = ? AND passed = ?", userID, quizID, true).
		Count(&count).Error
	return count > 0, err
}

func (r *AttemptRepository) BestScore(ctx context.Context, userID, quizID uuid.UUID) (int, error) {
	var best sql.NullInt64
	err := r.db.WithContext(ctx).Model(&domain.QuizAttempt{}).
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Select("max(score)").
		Scan(&best).Error
	if err != nil || !best.Valid {
		return 0, err
	}
	return int(best.Int64), nil
}
