package repository

import (
	"context"

	"github.com/waste3d/training-portal/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

func (r *ProgressRepository) WithTx(tx *gorm.DB) *ProgressRepository {
	return &ProgressRepository{db: tx}
}

func (r *ProgressRepository) Get(ctx context.Context, userID, trainingID uuid.UUID) (*domain.TrainingProgress, error) {
	var progress domain.TrainingProgress
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND training_id = ?", userID, trainingID).
		First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// Upsert — идемпотентная запись по ключу (user_id, training_id).
// Статус, процент и набор пройденных блоков перезаписываются; таймстемпы
// мержатся на стороне SQL, чтобы гонка insert-insert их не затерла:
//   - started_at ставится один раз и больше не трогается;
//   - completed_at / длительность сохраняют первое значение, пока новое
//     не NULL, а NULL (регресс из завершенного) их очищает.
func (r *ProgressRepository) Upsert(ctx context.Context, progress *domain.TrainingProgress) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "training_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"bootcamp_id":                 gorm.Expr("excluded.bootcamp_id"),
			"status":                      gorm.Expr("excluded.status"),
			"progress_percentage":         gorm.Expr("excluded.progress_percentage"),
			"completed_items":             gorm.Expr("excluded.completed_items"),
			"started_at":                  gorm.Expr("COALESCE(training_progresses.started_at, excluded.started_at)"),
			"completed_at":                gorm.Expr("CASE WHEN excluded.completed_at IS NULL THEN NULL ELSE COALESCE(training_progresses.completed_at, excluded.completed_at) END"),
			"completion_duration_seconds": gorm.Expr("CASE WHEN excluded.completion_duration_seconds IS NULL THEN NULL ELSE COALESCE(training_progresses.completion_duration_seconds, excluded.completion_duration_seconds) END"),
			"updated_at":                  gorm.Expr("excluded.updated_at"),
		}),
	}).Create(progress).Error
}

func (r *ProgressRepository) Delete(ctx context.Context, userID, trainingID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND training_id = ?", userID, trainingID).
		Delete(&domain.TrainingProgress{}).Error
}

func (r *ProgressRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.TrainingProgress, error) {
	var list []domain.TrainingProgress
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at desc").
		Find(&list).Error
	return list, err
}
