package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email    string    `gorm:"uniqueIndex"`
	Username string

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Training struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title       string    `gorm:"index"`
	Description string

	// У тренинга много контент-блоков и ноль или больше квизов
	ContentItems []ContentItem `gorm:"foreignKey:TrainingID;constraint:OnDelete:CASCADE;"`
	Quizzes      []Quiz        `gorm:"foreignKey:TrainingID;constraint:OnDelete:CASCADE;"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type ContentItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TrainingID uuid.UUID `gorm:"type:uuid;index"`
	Title      string
	Order      int // Для сортировки (1, 2, 3...)

	CreatedAt time.Time
}
