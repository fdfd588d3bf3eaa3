package usecase

import (
	"testing"

	"github.com/waste3d/training-portal/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func mcQuestion(points int, correct string) domain.Question {
	return domain.Question{
		ID:            uuid.New(),
		Type:          domain.QuestionTypeMultipleChoice,
		Options:       datatypes.JSON(`["A","B","C"]`),
		CorrectAnswer: datatypes.JSON(correct),
		Points:        points,
	}
}

func TestEvaluateTrueFalse(t *testing.T) {
	q := domain.Question{
		ID:            uuid.New(),
		Type:          domain.QuestionTypeTrueFalse,
		CorrectAnswer: datatypes.JSON(`"true"`),
		Points:        5,
	}

	assert.True(t, Evaluate(&q, "true"))
	assert.False(t, Evaluate(&q, "false"))
	// Без нормализации регистра
	assert.False(t, Evaluate(&q, "True"))
	assert.False(t, Evaluate(&q, true))
}

func TestEvaluateShortAnswer(t *testing.T) {
	q := domain.Question{
		ID:            uuid.New(),
		Type:          domain.QuestionTypeShortAnswer,
		CorrectAnswer: datatypes.JSON(`"gorm"`),
	}

	assert.True(t, Evaluate(&q, "gorm"))
	assert.False(t, Evaluate(&q, "GORM"))
	assert.False(t, Evaluate(&q, "gorm "))
}

func TestEvaluateMultipleChoiceSet(t *testing.T) {
	q := mcQuestion(5, `["A","B"]`)

	assert.True(t, Evaluate(&q, []any{"A", "B"}))
	assert.True(t, Evaluate(&q, []any{"B", "A"}))
	assert.True(t, Evaluate(&q, []string{"A", "B"}))

	assert.False(t, Evaluate(&q, []any{"A"}))
	assert.False(t, Evaluate(&q, []any{"A", "B", "C"}))
	// Скаляр против множества из двух элементов — неверно, но не ошибка
	assert.False(t, Evaluate(&q, "A"))
}

func TestEvaluateMultipleChoiceScalar(t *testing.T) {
	q := mcQuestion(5, `["B"]`)

	assert.True(t, Evaluate(&q, "B"))
	assert.True(t, Evaluate(&q, []any{"B"}))
	assert.False(t, Evaluate(&q, "A"))
}

func TestEvaluateIdempotent(t *testing.T) {
	q := mcQuestion(5, `["B"]`)
	for i := 0; i < 3; i++ {
		assert.True(t, Evaluate(&q, "B"))
		assert.False(t, Evaluate(&q, "A"))
	}
}

func TestScoreAnswersFullMarks(t *testing.T) {
	q1 := mcQuestion(5, `["B"]`)
	q2 := domain.Question{
		ID:            uuid.New(),
		Type:          domain.QuestionTypeTrueFalse,
		CorrectAnswer: datatypes.JSON(`"true"`),
		Points:        5,
	}
	answers := map[string]any{
		q1.ID.String(): "B",
		q2.ID.String(): "true",
	}

	score, earned, total := scoreAnswers([]domain.Question{q1, q2}, answers)
	assert.Equal(t, 100, score)
	assert.Equal(t, 10, earned)
	assert.Equal(t, 10, total)
}

func TestScoreAnswersOmittedQuestionNotCounted(t *testing.T) {
	q1 := mcQuestion(5, `["B"]`)
	q2 := domain.Question{
		ID:            uuid.New(),
		Type:          domain.QuestionTypeTrueFalse,
		CorrectAnswer: datatypes.JSON(`"true"`),
		Points:        5,
	}
	// q2 не отвечен: не попадает ни в earned, ни в total
	answers := map[string]any{
		q1.ID.String(): "A",
	}

	score, earned, total := scoreAnswers([]domain.Question{q1, q2}, answers)
	assert.Equal(t, 0, score)
	assert.Equal(t, 0, earned)
	assert.Equal(t, 5, total)
}

func TestScoreAnswersNoAnswerable(t *testing.T) {
	q1 := mcQuestion(5, `["B"]`)
	score, earned, total := scoreAnswers([]domain.Question{q1}, map[string]any{"unknown": "B"})
	assert.Equal(t, 0, score)
	assert.Equal(t, 0, earned)
	assert.Equal(t, 0, total)
}

func TestScoreAnswersRounding(t *testing.T) {
	q1 := mcQuestion(1, `["B"]`)
	q2 := mcQuestion(1, `["B"]`)
	q3 := mcQuestion(1, `["B"]`)
	answers := map[string]any{
		q1.ID.String(): "B",
		q2.ID.String(): "B",
		q3.ID.String(): "A",
	}

	score, _, _ := scoreAnswers([]domain.Question{q1, q2, q3}, answers)
	// 2/3 = 66.67 -> 67
	assert.Equal(t, 67, score)
}
