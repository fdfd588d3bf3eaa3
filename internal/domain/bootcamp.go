package domain

import (
	"time"

	"github.com/google/uuid"
)

type Bootcamp struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Title       string    `gorm:"index" json:"title"`
	Description string    `json:"description"`

	Trainings []BootcampTraining `gorm:"foreignKey:BootcampID;constraint:OnDelete:CASCADE;" json:"trainings,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BootcampTraining — членство тренинга в буткемпе с порядком.
// OrderIndex держим непрерывным и нумеруем с нуля.
type BootcampTraining struct {
	BootcampID uuid.UUID `gorm:"type:uuid;primaryKey" json:"bootcamp_id"`
	TrainingID uuid.UUID `gorm:"type:uuid;primaryKey" json:"training_id"`
	OrderIndex int       `gorm:"not null;default:0" json:"order_index"`
	Required   bool      `gorm:"default:true" json:"required"`

	CreatedAt time.Time `json:"created_at"`
}

type BootcampAssignment struct {
	BootcampID uuid.UUID `gorm:"type:uuid;primaryKey" json:"bootcamp_id"`
	UserID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`

	CreatedAt time.Time `json:"created_at"`
}

// TrainingAssignment — назначение тренинга пользователю, создается каскадом
// при назначении буткемпа.
type TrainingAssignment struct {
	UserID     uuid.UUID  `gorm:"type:uuid;primaryKey" json:"user_id"`
	TrainingID uuid.UUID  `gorm:"type:uuid;primaryKey" json:"training_id"`
	BootcampID *uuid.UUID `gorm:"type:uuid;index" json:"bootcamp_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
