package domain

import (
	"time"

	"github.com/google/uuid"
)

type EnrollmentStatus string

const (
	EnrollmentNotStarted EnrollmentStatus = "NOT_STARTED"
	EnrollmentInProgress EnrollmentStatus = "IN_PROGRESS"
	EnrollmentCompleted  EnrollmentStatus = "COMPLETED"
)

// Enrollment — денормализованная сводка для отчетов. Всегда производная от
// TrainingProgress, пишется синхронизатором в той же транзакции.
type Enrollment struct {
	UserID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	TrainingID uuid.UUID `gorm:"type:uuid;primaryKey" json:"training_id"`

	Status      EnrollmentStatus `gorm:"type:varchar(16);not null;default:'NOT_STARTED'" json:"status"`
	StartDate   time.Time        `json:"start_date"`
	CompletedAt *time.Time       `json:"completed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CollapseStatus сводит богатый словарь статусов прогресса к короткому
// словарю сводки.
func CollapseStatus(s ProgressStatus) EnrollmentStatus {
	switch s {
	case StatusCompleted:
		return EnrollmentCompleted
	case StatusInProgress, StatusContentCompleted, StatusQuizzesPending:
		return EnrollmentInProgress
	default:
		return EnrollmentNotStarted
	}
}
