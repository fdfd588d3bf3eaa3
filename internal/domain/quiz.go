package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	QuestionTypeMultipleChoice = "multiple_choice"
	QuestionTypeTrueFalse      = "true_false"
	QuestionTypeShortAnswer    = "short_answer"
)

type Quiz struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TrainingID   uuid.UUID `gorm:"type:uuid;index" json:"training_id"`
	Title        string    `json:"title"`
	PassingScore int       `gorm:"default:0" json:"passing_score"` // 0-100

	Questions []Question `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE;" json:"questions"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Question struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	QuizID uuid.UUID `gorm:"type:uuid;index" json:"quiz_id"`
	Text   string    `json:"text"`
	Type   string    `json:"type"` // multiple_choice, true_false, short_answer

	// Варианты — только для multiple_choice; правильный ответ — строка
	// или массив строк, храним как jsonb.
	Options       datatypes.JSON `gorm:"type:jsonb" json:"options,omitempty"`
	CorrectAnswer datatypes.JSON `gorm:"type:jsonb" json:"-"`
	Points        int            `gorm:"default:1" json:"points"`
	Order         int            `json:"order"`

	CreatedAt time.Time `json:"created_at"`
}
