package usecase

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/waste3d/training-portal/internal/domain"
	"github.com/waste3d/training-portal/internal/infrastructure/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProgressDelta — один шаг обновления прогресса. CompletedItems (если задан)
// заменяет весь набор, ContentID дописывает один блок.
type ProgressDelta struct {
	ContentID      *string                `json:"content_id,omitempty"`
	CompletedItems []string               `json:"completed_items,omitempty"`
	Progress       *int                   `json:"progress,omitempty"`
	Status         *domain.ProgressStatus `json:"status,omitempty"`
	Completed      bool                   `json:"completed,omitempty"`
}

type ProgressUseCase struct {
	db             *gorm.DB
	progressRepo   *repository.ProgressRepository
	enrollmentRepo *repository.EnrollmentRepository
	trainingRepo   *repository.TrainingRepository
	quizRepo       *repository.QuizRepository
	attemptRepo    *repository.AttemptRepository
}

func NewProgressUseCase(
	db *gorm.DB,
	pr *repository.ProgressRepository,
	er *repository.EnrollmentRepository,
	tr *repository.TrainingRepository,
	qr *repository.QuizRepository,
	ar *repository.AttemptRepository,
) *ProgressUseCase {
	return &ProgressUseCase{
		db:             db,
		progressRepo:   pr,
		enrollmentRepo: er,
		trainingRepo:   tr,
		quizRepo:       qr,
		attemptRepo:    ar,
	}
}

// deriveStatus — чистая функция вывода следующего статуса для обычного
// обновления прогресса. markCompleted имеет приоритет над explicit:
// завершение всегда проходит через квиз-гейт.
func deriveStatus(current domain.ProgressStatus, pct int, allPassed bool, explicit *domain.ProgressStatus, markCompleted bool) domain.ProgressStatus {
	if markCompleted {
		if allPassed {
			return domain.StatusCompleted
		}
		return domain.StatusQuizzesPending
	}
	if explicit != nil {
		return *explicit
	}
	if pct >= 100 && current != domain.StatusCompleted && current != domain.StatusQuizzesPending {
		return domain.StatusContentCompleted
	}
	if pct > 0 && current == domain.StatusNotStarted {
		return domain.StatusInProgress
	}
	return current
}

// deriveStatusAfterQuiz — вариант для переоценки после сдачи квиза.
// Ребро CONTENT_COMPLETED -> COMPLETED открывается только когда все квизы
// тренинга сданы.
func deriveStatusAfterQuiz(current domain.ProgressStatus, pct int, allPassed bool) domain.ProgressStatus {
	if allPassed && (pct >= 100 ||
		current == domain.StatusContentCompleted ||
		current == domain.StatusQuizzesPending ||
		current == domain.StatusCompleted) {
		return domain.StatusCompleted
	}
	if pct >= 100 && current != domain.StatusCompleted && current != domain.StatusQuizzesPending {
		return domain.StatusContentCompleted
	}
	if pct > 0 && current == domain.StatusNotStarted {
		return domain.StatusInProgress
	}
	return current
}

// applyTransition переводит запись в next и ведет таймстемпы.
// CompletedAt живет только пока статус COMPLETED; длительность считается
// один раз при свежем завершении.
func applyTransition(rec *domain.TrainingProgress, next domain.ProgressStatus, now time.Time) {
	prev := rec.Status
	rec.Status = next

	// Старт фиксируется на первом видимом продвижении: проваленная
	// первая попытка квиза оставляет NOT_STARTED и таймстемп не ставит.
	if rec.StartedAt == nil && next != domain.StatusNotStarted {
		started := now
		rec.StartedAt = &started
	}

	if next == domain.StatusCompleted && prev != domain.StatusCompleted {
		completed := now
		rec.CompletedAt = &completed
		duration := int64(now.Sub(*rec.StartedAt).Seconds())
		rec.CompletionDurationSeconds = &duration
	}

	if next != domain.StatusCompleted && rec.CompletedAt != nil {
		rec.CompletedAt = nil
		rec.CompletionDurationSeconds = nil
	}
}

func (uc *ProgressUseCase) UpdateProgress(ctx context.Context, userID, trainingID uuid.UUID, delta ProgressDelta) (*domain.TrainingProgress, error) {
	var out *domain.TrainingProgress
	err := uc.db.Transaction(func(tx *gorm.DB) error {
		trainings := uc.trainingRepo.WithTx(tx)
		exists, err := trainings.Exists(ctx, trainingID)
		if err != nil {
			return err
		}
		if !exists {
			return domain.ErrNotFound
		}

		now := time.Now()
		rec, err := uc.loadOrInit(ctx, tx, userID, trainingID, now)
		if err != nil {
			return err
		}
		prev := rec.Status

		// Набор пройденных блоков: replace целиком или append одного
		items := rec.CompletedItemIDs()
		if delta.CompletedItems != nil {
			items = delta.CompletedItems
		} else if delta.ContentID != nil {
			found := false
			for _, id := range items {
				if id == *delta.ContentID {
					found = true
					break
				}
			}
			if !found {
				items = append(items, *delta.ContentID)
			}
		}
		rec.SetCompletedItemIDs(items)

		pct := rec.ProgressPercentage
		if delta.Progress != nil {
			pct = *delta.Progress
		} else {
			total, err := trainings.CountContentItems(ctx, trainingID)
			if err != nil {
				return err
			}
			if total > 0 {
				pct = int(math.Round(float64(len(items)) / float64(total) * 100))
			}
		}
		if pct < 0 {
			pct = 0
		}
		if pct > 100 {
			pct = 100
		}
		rec.ProgressPercentage = pct

		allPassed := true
		if delta.Completed {
			allPassed, err = uc.allQuizzesPassed(ctx, tx, userID, trainingID)
			if err != nil {
				return err
			}
		}

		next := deriveStatus(prev, pct, allPassed, delta.Status, delta.Completed)
		applyTransition(rec, next, now)
		rec.UpdatedAt = now

		if err := uc.progressRepo.WithTx(tx).Upsert(ctx, rec); err != nil {
			return err
		}
		if err := uc.syncEnrollment(ctx, tx, rec, now); err != nil {
			return err
		}
		out = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (uc *ProgressUseCase) GetProgress(ctx context.Context, userID, trainingID uuid.UUID) (*domain.TrainingProgress, error) {
	rec, err := uc.progressRepo.Get(ctx, userID, trainingID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotEnrolled
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// reevaluateAfterQuiz вызывается грейдингом внутри его транзакции.
func (uc *ProgressUseCase) reevaluateAfterQuiz(ctx context.Context, tx *gorm.DB, userID, trainingID uuid.UUID) error {
	now := time.Now()
	rec, err := uc.loadOrInit(ctx, tx, userID, trainingID, now)
	if err != nil {
		return err
	}

	allPassed, err := uc.allQuizzesPassed(ctx, tx, userID, trainingID)
	if err != nil {
		return err
	}

	next := deriveStatusAfterQuiz(rec.Status, rec.ProgressPercentage, allPassed)
	applyTransition(rec, next, now)
	rec.UpdatedAt = now

	if err := uc.progressRepo.WithTx(tx).Upsert(ctx, rec); err != nil {
		return err
	}
	return uc.syncEnrollment(ctx, tx, rec, now)
}

// seedProgress создает запись NOT_STARTED, если ее еще нет. Используется
// каскадом назначения буткемпа; StartedAt не трогаем — тренинг еще не начат.
func (uc *ProgressUseCase) seedProgress(ctx context.Context, tx *gorm.DB, userID, trainingID, bootcampID uuid.UUID) error {
	_, err := uc.progressRepo.WithTx(tx).Get(ctx, userID, trainingID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	now := time.Now()
	rec := &domain.TrainingProgress{
		UserID:     userID,
		TrainingID: trainingID,
		BootcampID: &bootcampID,
		Status:     domain.StatusNotStarted,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	rec.SetCompletedItemIDs(nil)

	if err := uc.progressRepo.WithTx(tx).Upsert(ctx, rec); err != nil {
		return err
	}
	return uc.syncEnrollment(ctx, tx, rec, now)
}

// deleteProgress удаляет авторитетную запись вместе со сводкой, чтобы
// зеркало не расходилось. Используется каскадом снятия буткемпа.
func (uc *ProgressUseCase) deleteProgress(ctx context.Context, tx *gorm.DB, userID, trainingID uuid.UUID) error {
	if err := uc.progressRepo.WithTx(tx).Delete(ctx, userID, trainingID); err != nil {
		return err
	}
	return uc.enrollmentRepo.WithTx(tx).Delete(ctx, userID, trainingID)
}

func (uc *ProgressUseCase) loadOrInit(ctx context.Context, tx *gorm.DB, userID, trainingID uuid.UUID, now time.Time) (*domain.TrainingProgress, error) {
	rec, err := uc.progressRepo.WithTx(tx).Get(ctx, userID, trainingID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		rec = &domain.TrainingProgress{
			UserID:     userID,
			TrainingID: trainingID,
			Status:     domain.StatusNotStarted,
			CreatedAt:  now,
		}
		rec.SetCompletedItemIDs(nil)
		return rec, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// syncEnrollment — зеркалирование в сводку в той же транзакции.
func (uc *ProgressUseCase) syncEnrollment(ctx context.Context, tx *gorm.DB, rec *domain.TrainingProgress, now time.Time) error {
	collapsed := domain.CollapseStatus(rec.Status)

	start := now
	if rec.StartedAt != nil {
		start = *rec.StartedAt
	}

	enrollment := &domain.Enrollment{
		UserID:     rec.UserID,
		TrainingID: rec.TrainingID,
		Status:     collapsed,
		StartDate:  start,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if collapsed == domain.EnrollmentCompleted {
		enrollment.CompletedAt = rec.CompletedAt
	}

	return uc.enrollmentRepo.WithTx(tx).Upsert(ctx, enrollment)
}

func (uc *ProgressUseCase) allQuizzesPassed(ctx context.Context, tx *gorm.DB, userID, trainingID uuid.UUID) (bool, error) {
	quizzes, err := uc.quizRepo.WithTx(tx).ListByTraining(ctx, trainingID)
	if err != nil {
		return false, err
	}
	attempts := uc.attemptRepo.WithTx(tx)
	for _, quiz := range quizzes {
		passed, err := attempts.HasPassed(ctx, userID, quiz.ID)
		if err != nil {
			return false, err
		}
		if !passed {
			return false, nil
		}
	}
	// Ноль квизов считается "все сданы"
	return true, nil
}
