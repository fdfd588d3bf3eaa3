package repository

import (
	"context"
	"time"

	"github.com/waste3d/training-portal/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BootcampRepository struct {
	db *gorm.DB
}

func NewBootcampRepository(db *gorm.DB) *BootcampRepository {
	return &BootcampRepository{db: db}
}

func (r *BootcampRepository) WithTx(tx *gorm.DB) *BootcampRepository {
	return &BootcampRepository{db: tx}
}

func (r *BootcampRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Bootcamp, error) {
	var bootcamp domain.Bootcamp
	err := r.db.WithContext(ctx).First(&bootcamp, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &bootcamp, nil
}

func (r *BootcampRepository) ListLinks(ctx context.Context, bootcampID uuid.UUID) ([]domain.BootcampTraining, error) {
	var links []domain.BootcampTraining
	err := r.db.WithContext(ctx).
		Where("bootcamp_id = ?", bootcampID).
		Order("order_index asc").
		Find(&links).Error
	return links, err
}

func (r *BootcampRepository) GetAssignment(ctx context.Context, bootcampID, userID uuid.UUID) (*domain.BootcampAssignment, error) {
	var assignment domain.BootcampAssignment
	err := r.db.WithContext(ctx).
		Where("bootcamp_id = ? AND user_id = ?", bootcampID, userID).
		First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *BootcampRepository) CreateAssignment(ctx context.Context, assignment *domain.BootcampAssignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *BootcampRepository) DeleteAssignment(ctx context.Context, bootcampID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("bootcamp_id = ? AND user_id = ?", bootcampID, userID).
		Delete(&domain.BootcampAssignment{}).Error
}

// FirstOrCreateTrainingAssignment — идемпотентно, чтобы не дублировать
// назначение, если оно уже есть (например, из другого буткемпа).
func (r *BootcampRepository) FirstOrCreateTrainingAssignment(ctx context.Context, ta *domain.TrainingAssignment) error {
	return r.db.WithContext(ctx).
		Where(domain.TrainingAssignment{UserID: ta.UserID, TrainingID: ta.TrainingID}).
		Attrs(domain.TrainingAssignment{
			BootcampID: ta.BootcampID,
			CreatedAt:  time.Now(),
		}).
		FirstOrCreate(ta).Error
}

func (r *BootcampRepository) DeleteTrainingAssignment(ctx context.Context, userID, trainingID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND training_id = ?", userID, trainingID).
		Delete(&domain.TrainingAssignment{}).Error
}

func (r *BootcampRepository) DeleteLink(ctx context.Context, bootcampID, trainingID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("bootcamp_id = ? AND training_id = ?", bootcampID, trainingID).
		Delete(&domain.BootcampTraining{})
	return result.RowsAffected, result.Error
}

// RenumberLinks переиндексирует оставшиеся тренинги буткемпа: order_index
// снова непрерывный и начинается с нуля.
func (r *BootcampRepository) RenumberLinks(ctx context.Context, bootcampID uuid.UUID) error {
	links, err := r.ListLinks(ctx, bootcampID)
	if err != nil {
		return err
	}
	for i, link := range links {
		if link.OrderIndex == i {
			continue
		}
		err := r.db.WithContext(ctx).Model(&domain.BootcampTraining{}).
			Where("bootcamp_id = ? AND training_id = ?", bootcampID, link.TrainingID).
			Update("order_index", i).Error
		if err != nil {
			return err
		}
	}
	return nil
}
