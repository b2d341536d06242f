package exam

import "mcq-server/models"

// AnswerBook maps question id to the latest UserAnswer for it.
// Keys keep the position of their first write; a later write for the same id
// replaces the value in place.
type AnswerBook struct {
	order   []int
	answers map[int]models.UserAnswer
}

func NewAnswerBook() *AnswerBook {
	return &AnswerBook{answers: make(map[int]models.UserAnswer)}
}

// Put records answer under answer.QuestionID, overwriting any previous record.
func (b *AnswerBook) Put(answer models.UserAnswer) {
	if _, exists := b.answers[answer.QuestionID]; !exists {
		b.order = append(b.order, answer.QuestionID)
	}
	b.answers[answer.QuestionID] = answer
}

func (b *AnswerBook) Get(questionID int) (models.UserAnswer, bool) {
	a, ok := b.answers[questionID]
	return a, ok
}

// Status returns the recorded status, or unanswered when nothing was recorded.
func (b *AnswerBook) Status(questionID int) models.QuestionStatus {
	if a, ok := b.answers[questionID]; ok {
		return a.Status
	}
	return models.StatusUnanswered
}

func (b *AnswerBook) Len() int {
	return len(b.order)
}

// All returns the records in key order.
func (b *AnswerBook) All() []models.UserAnswer {
	out := make([]models.UserAnswer, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, b.answers[id])
	}
	return out
}

func (b *AnswerBook) Reset() {
	b.order = nil
	b.answers = make(map[int]models.UserAnswer)
}
