package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/waste3d/training-portal/internal/domain"
	"github.com/waste3d/training-portal/internal/infrastructure/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type GradingUseCase struct {
	db          *gorm.DB
	quizRepo    *repository.QuizRepository
	attemptRepo *repository.AttemptRepository
	auditRepo   *repository.AuditRepository
	userRepo    *repository.UserRepository
	progress    *ProgressUseCase
}

func NewGradingUseCase(
	db *gorm.DB,
	qr *repository.QuizRepository,
	ar *repository.AttemptRepository,
	audit *repository.AuditRepository,
	ur *repository.UserRepository,
	progress *ProgressUseCase,
) *GradingUseCase {
	return &GradingUseCase{
		db:          db,
		quizRepo:    qr,
		attemptRepo: ar,
		auditRepo:   audit,
		userRepo:    ur,
		progress:    progress,
	}
}

type SubmitResult struct {
	AttemptID     uuid.UUID `json:"attempt_id"`
	AttemptNumber int       `json:"attempt_number"`
	Score         int       `json:"score"`
	Passed        bool      `json:"passed"`
	SubmittedAt   time.Time `json:"submitted_at"`
}

// Submit оценивает ответы, пишет неизменяемую попытку и переоценивает
// прогресс тренинга — все в одной транзакции. Откат любой части откатывает
// все: частично записанного сабмита не бывает.
func (uc *GradingUseCase) Submit(ctx context.Context, userID, quizID, trainingID uuid.UUID, answers map[string]any) (*SubmitResult, error) {
	if len(answers) == 0 {
		return nil, fmt.Errorf("%w: answers must not be empty", domain.ErrInvalidInput)
	}

	var result *SubmitResult
	err := uc.db.Transaction(func(tx *gorm.DB) error {
		exists, err := uc.userRepo.WithTx(tx).Exists(ctx, userID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%w: user", domain.ErrNotFound)
		}

		quiz, err := uc.quizRepo.WithTx(tx).GetWithQuestions(ctx, quizID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: quiz", domain.ErrNotFound)
		}
		if err != nil {
			return err
		}
		if quiz.TrainingID != trainingID {
			return fmt.Errorf("%w: quiz does not belong to training", domain.ErrNotFound)
		}

		score, _, _ := scoreAnswers(quiz.Questions, answers)
		passed := score >= quiz.PassingScore

		attempts := uc.attemptRepo.WithTx(tx)
		prior, err := attempts.CountByUserAndQuiz(ctx, userID, quizID)
		if err != nil {
			return err
		}

		raw, err := json.Marshal(answers)
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}

		now := time.Now()
		attempt := &domain.QuizAttempt{
			ID:            uuid.New(),
			UserID:        userID,
			QuizID:        quizID,
			TrainingID:    trainingID,
			AttemptNumber: int(prior) + 1,
			Score:         score,
			Passed:        passed,
			Answers:       raw,
			SubmittedAt:   now,
		}
		if err := attempts.Create(ctx, attempt); err != nil {
			// Гонка двух параллельных сабмитов: уникальный индекс по
			// (user, quiz, attempt_number); проигравший ретраится.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: attempt already recorded", domain.ErrConflict)
			}
			return err
		}

		// Аудит — best effort. Вложенная транзакция дает SAVEPOINT:
		// неудачный INSERT откатывается до него и не портит внешнюю
		// транзакцию, сабмит доезжает до коммита.
		auditErr := tx.Transaction(func(stx *gorm.DB) error {
			return uc.auditRepo.WithTx(stx).Create(ctx, &domain.AuditLog{
				ID:        uuid.New(),
				UserID:    userID,
				Action:    "quiz_attempt_submitted",
				EntityID:  attempt.ID,
				Detail:    fmt.Sprintf("quiz=%s score=%d passed=%t attempt=%d", quizID, score, passed, attempt.AttemptNumber),
				CreatedAt: now,
			})
		})
		if auditErr != nil {
			logrus.Warnf("audit log write failed: %v", auditErr)
		}

		if err := uc.progress.reevaluateAfterQuiz(ctx, tx, userID, trainingID); err != nil {
			return err
		}

		result = &SubmitResult{
			AttemptID:     attempt.ID,
			AttemptNumber: attempt.AttemptNumber,
			Score:         score,
			Passed:        passed,
			SubmittedAt:   now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

type QuizState struct {
	QuizID       uuid.UUID `json:"quiz_id"`
	Title        string    `json:"title"`
	Attempted    bool      `json:"attempted"`
	Passed       bool      `json:"passed"`
	BestScore    int       `json:"best_score"`
	AttemptCount int       `json:"attempt_count"`
}

type QuizStatus struct {
	TotalQuizzes     int         `json:"total_quizzes"`
	AttemptedQuizzes int         `json:"attempted_quizzes"`
	PassedQuizzes    int         `json:"passed_quizzes"`
	AllPassed        bool        `json:"all_passed"`
	PerQuiz          []QuizState `json:"per_quiz"`
}

// GetQuizStatus — read-only агрегат по квизам тренинга, без побочных эффектов.
func (uc *GradingUseCase) GetQuizStatus(ctx context.Context, userID, trainingID uuid.UUID) (*QuizStatus, error) {
	quizzes, err := uc.quizRepo.ListByTraining(ctx, trainingID)
	if err != nil {
		return nil, err
	}

	status := &QuizStatus{
		TotalQuizzes: len(quizzes),
		AllPassed:    true,
		PerQuiz:      make([]QuizState, 0, len(quizzes)),
	}

	for _, quiz := range quizzes {
		count, err := uc.attemptRepo.CountByUserAndQuiz(ctx, userID, quiz.ID)
		if err != nil {
			return nil, err
		}
		passed, err := uc.attemptRepo.HasPassed(ctx, userID, quiz.ID)
		if err != nil {
			return nil, err
		}
		best, err := uc.attemptRepo.BestScore(ctx, userID, quiz.ID)
		if err != nil {
			return nil, err
		}

		state := QuizState{
			QuizID:       quiz.ID,
			Title:        quiz.Title,
			Attempted:    count > 0,
			Passed:       passed,
			BestScore:    best,
			AttemptCount: int(count),
		}
		if state.Attempted {
			status.AttemptedQuizzes++
		}
		if state.Passed {
			status.PassedQuizzes++
		} else {
			status.AllPassed = false
		}
		status.PerQuiz = append(status.PerQuiz, state)
	}

	return status, nil
}
