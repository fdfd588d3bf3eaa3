package usecase

import (
	"encoding/json"
	"math"

	"github.com/waste3d/training-portal/internal/domain"

	"gorm.io/datatypes"
)

// Evaluate решает, корректен ли присланный ответ на вопрос. Чистая функция,
// без персистентности. Значение приходит из JSON тела: строка или массив.
func Evaluate(q *domain.Question, submitted any) bool {
	switch q.Type {
	case domain.QuestionTypeTrueFalse, domain.QuestionTypeShortAnswer:
		// Точное строковое сравнение, без нормализации регистра.
		expected, ok := correctAsString(q.CorrectAnswer)
		if !ok {
			return false
		}
		got, ok := submitted.(string)
		return ok && got == expected

	case domain.QuestionTypeMultipleChoice:
		correct := correctAsSet(q.CorrectAnswer)
		if len(correct) == 0 {
			return false
		}

		if got, ok := asStringSet(submitted); ok {
			return setsEqual(got, correct)
		}

		// Скаляр против множества из одного элемента — ок; против большего
		// множества — просто неверный ответ, не ошибка.
		if got, ok := submitted.(string); ok && len(correct) == 1 {
			_, member := correct[got]
			return member
		}
		return false
	}
	return false
}

// scoreAnswers прогоняет Evaluate по всем отвеченным вопросам квиза.
// Вопрос без ответа не дает очков ни в earned, ни в total.
func scoreAnswers(questions []domain.Question, answers map[string]any) (score, earned, total int) {
	for i := range questions {
		q := &questions[i]
		submitted, ok := answers[q.ID.String()]
		if !ok {
			continue
		}
		total += q.Points
		if Evaluate(q, submitted) {
			earned += q.Points
		}
	}
	if total > 0 {
		score = int(math.Round(float64(earned) / float64(total) * 100))
	}
	return score, earned, total
}

func correctAsString(raw datatypes.JSON) (string, bool) {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s, true
	}
	var arr []string
	if json.Unmarshal(raw, &arr) == nil && len(arr) == 1 {
		return arr[0], true
	}
	return "", false
}

func correctAsSet(raw datatypes.JSON) map[string]struct{} {
	set := make(map[string]struct{})
	var arr []string
	if json.Unmarshal(raw, &arr) == nil {
		for _, v := range arr {
			set[v] = struct{}{}
		}
		return set
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		set[s] = struct{}{}
	}
	return set
}

func asStringSet(v any) (map[string]struct{}, bool) {
	switch vals := v.(type) {
	case []string:
		set := make(map[string]struct{}, len(vals))
		for _, s := range vals {
			set[s] = struct{}{}
		}
		return set, true
	case []any:
		set := make(map[string]struct{}, len(vals))
		for _, item := range vals {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			set[s] = struct{}{}
		}
		return set, true
	}
	return nil, false
}

func setsEqual(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}
