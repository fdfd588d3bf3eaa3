package repository

import (
	"context"

	"github.com/waste3d/training-portal/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TrainingRepository struct {
	db *gorm.DB
}

func NewTrainingRepository(db *gorm.DB) *TrainingRepository {
	return &TrainingRepository{db: db}
}

func (r *TrainingRepository) WithTx(tx *gorm.DB) *TrainingRepository {
	return &TrainingRepository{db: tx}
}

func (r *TrainingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Training, error) {
	var training domain.Training
	err := r.db.WithContext(ctx).First(&training, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &training, nil
}

func (r *TrainingRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Training{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *TrainingRepository) CountContentItems(ctx context.Context, trainingID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.ContentItem{}).
		Where("training_id = ?", trainingID).
		Count(&count).Error
	return count, err
}

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) WithTx(tx *gorm.DB) *UserRepository {
	return &UserRepository{db: tx}
}

func (r *UserRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}
