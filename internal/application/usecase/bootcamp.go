package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/waste3d/training-portal/internal/domain"
	"github.com/waste3d/training-portal/internal/infrastructure/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BootcampUseCase struct {
	db           *gorm.DB
	bootcampRepo *repository.BootcampRepository
	userRepo     *repository.UserRepository
	progress     *ProgressUseCase
}

func NewBootcampUseCase(
	db *gorm.DB,
	br *repository.BootcampRepository,
	ur *repository.UserRepository,
	progress *ProgressUseCase,
) *BootcampUseCase {
	return &BootcampUseCase{
		db:           db,
		bootcampRepo: br,
		userRepo:     ur,
		progress:     progress,
	}
}

// Assign назначает буткемп пользователю и каскадом создает назначения и
// записи прогресса по каждому тренингу — одной транзакцией.
func (uc *BootcampUseCase) Assign(ctx context.Context, bootcampID, userID uuid.UUID) error {
	return uc.db.Transaction(func(tx *gorm.DB) error {
		bootcamps := uc.bootcampRepo.WithTx(tx)

		if _, err := bootcamps.GetByID(ctx, bootcampID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: bootcamp", domain.ErrNotFound)
			}
			return err
		}
		exists, err := uc.userRepo.WithTx(tx).Exists(ctx, userID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%w: user", domain.ErrNotFound)
		}

		// Повторное назначение — конфликт, не молчаливый no-op
		if _, err := bootcamps.GetAssignment(ctx, bootcampID, userID); err == nil {
			return fmt.Errorf("%w: bootcamp already assigned", domain.ErrConflict)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := bootcamps.CreateAssignment(ctx, &domain.BootcampAssignment{
			BootcampID: bootcampID,
			UserID:     userID,
			CreatedAt:  time.Now(),
		}); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: bootcamp already assigned", domain.ErrConflict)
			}
			return err
		}

		links, err := bootcamps.ListLinks(ctx, bootcampID)
		if err != nil {
			return err
		}
		for _, link := range links {
			bid := bootcampID
			if err := bootcamps.FirstOrCreateTrainingAssignment(ctx, &domain.TrainingAssignment{
				UserID:     userID,
				TrainingID: link.TrainingID,
				BootcampID: &bid,
			}); err != nil {
				return err
			}
			if err := uc.progress.seedProgress(ctx, tx, userID, link.TrainingID, bootcampID); err != nil {
				return err
			}
		}
		return nil
	})
}

// Unassign снимает назначение и деструктивно удаляет назначения тренингов
// и записи прогресса по каждому тренингу буткемпа.
func (uc *BootcampUseCase) Unassign(ctx context.Context, bootcampID, userID uuid.UUID) error {
	return uc.db.Transaction(func(tx *gorm.DB) error {
		bootcamps := uc.bootcampRepo.WithTx(tx)

		if _, err := bootcamps.GetByID(ctx, bootcampID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: bootcamp", domain.ErrNotFound)
			}
			return err
		}

		if _, err := bootcamps.GetAssignment(ctx, bootcampID, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: bootcamp is not assigned", domain.ErrConflict)
			}
			return err
		}

		if err := bootcamps.DeleteAssignment(ctx, bootcampID, userID); err != nil {
			return err
		}

		links, err := bootcamps.ListLinks(ctx, bootcampID)
		if err != nil {
			return err
		}
		for _, link := range links {
			if err := bootcamps.DeleteTrainingAssignment(ctx, userID, link.TrainingID); err != nil {
				return err
			}
			if err := uc.progress.deleteProgress(ctx, tx, userID, link.TrainingID); err != nil {
				return err
			}
		}
		return nil
	})
}

// RemoveTraining убирает тренинг из буткемпа и переиндексирует оставшиеся,
// чтобы order_index остался непрерывным с нуля.
func (uc *BootcampUseCase) RemoveTraining(ctx context.Context, bootcampID, trainingID uuid.UUID) error {
	return uc.db.Transaction(func(tx *gorm.DB) error {
		bootcamps := uc.bootcampRepo.WithTx(tx)

		rows, err := bootcamps.DeleteLink(ctx, bootcampID, trainingID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return fmt.Errorf("%w: training is not linked to bootcamp", domain.ErrNotFound)
		}
		return bootcamps.RenumberLinks(ctx, bootcampID)
	})
}
