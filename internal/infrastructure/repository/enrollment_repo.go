package repository

import (
	"context"

	"github.com/waste3d/training-portal/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EnrollmentRepository struct {
	db *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

func (r *EnrollmentRepository) WithTx(tx *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: tx}
}

func (r *EnrollmentRepository) Get(ctx context.Context, userID, trainingID uuid.UUID) (*domain.Enrollment, error) {
	var enrollment domain.Enrollment
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND training_id = ?", userID, trainingID).
		First(&enrollment).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *EnrollmentRepository) Upsert(ctx context.Context, enrollment *domain.Enrollment) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "training_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"status",
			"completed_at",
			"updated_at",
		}),
	}).Create(enrollment).Error
}

func (r *EnrollmentRepository) Delete(ctx context.Context, userID, trainingID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND training_id = ?", userID, trainingID).
		Delete(&domain.Enrollment{}).Error
}
