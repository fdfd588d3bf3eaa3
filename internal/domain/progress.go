package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ProgressStatus string

const (
	StatusNotStarted       ProgressStatus = "NOT_STARTED"
	StatusInProgress       ProgressStatus = "IN_PROGRESS"
	StatusContentCompleted ProgressStatus = "CONTENT_COMPLETED"
	StatusQuizzesPending   ProgressStatus = "QUIZZES_PENDING"
	StatusCompleted        ProgressStatus = "COMPLETED"
)

// TrainingProgress — авторитетная запись прогресса (user, training).
// Инвариант: CompletedAt не nil тогда и только тогда, когда Status = COMPLETED.
type TrainingProgress struct {
	UserID     uuid.UUID  `gorm:"type:uuid;primaryKey" json:"user_id"`
	TrainingID uuid.UUID  `gorm:"type:uuid;primaryKey" json:"training_id"`
	BootcampID *uuid.UUID `gorm:"type:uuid;index" json:"bootcamp_id,omitempty"`

	Status             ProgressStatus `gorm:"type:varchar(32);not null;default:'NOT_STARTED'" json:"status"`
	ProgressPercentage int            `gorm:"not null;default:0" json:"progress_percentage"`
	CompletedItems     datatypes.JSON `gorm:"type:jsonb" json:"completed_items"`

	StartedAt                 *time.Time `json:"started_at,omitempty"` // ставится один раз, не перезаписывается
	CompletedAt               *time.Time `json:"completed_at,omitempty"`
	CompletionDurationSeconds *int64     `json:"completion_duration_seconds,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *TrainingProgress) CompletedItemIDs() []string {
	if len(p.CompletedItems) == 0 {
		return nil
	}
	var ids []string
	if err := json.Unmarshal(p.CompletedItems, &ids); err != nil {
		return nil
	}
	return ids
}

func (p *TrainingProgress) SetCompletedItemIDs(ids []string) {
	if ids == nil {
		ids = []string{}
	}
	data, _ := json.Marshal(ids)
	p.CompletedItems = data
}
