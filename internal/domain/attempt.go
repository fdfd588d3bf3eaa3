package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// QuizAttempt — неизменяемая запись о сдаче квиза. Попытки никогда не
// редактируются, только добавляются.
type QuizAttempt struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_attempt_user_quiz_no,priority:1" json:"user_id"`
	QuizID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_attempt_user_quiz_no,priority:2" json:"quiz_id"`
	TrainingID uuid.UUID `gorm:"type:uuid;not null;index" json:"training_id"`

	// Уникальный индекс закрывает гонку двух параллельных сабмитов:
	// проигравшая транзакция получает duplicate key и ретраится.
	AttemptNumber int `gorm:"not null;uniqueIndex:idx_attempt_user_quiz_no,priority:3" json:"attempt_number"`

	Score       int            `gorm:"not null" json:"score"` // 0-100
	Passed      bool           `gorm:"not null" json:"passed"`
	Answers     datatypes.JSON `gorm:"type:jsonb" json:"answers"`
	SubmittedAt time.Time      `gorm:"not null" json:"submitted_at"`
}

type AuditLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID `gorm:"type:uuid;index"`
	Action    string
	EntityID  uuid.UUID `gorm:"type:uuid"`
	Detail    string
	CreatedAt time.Time
}
