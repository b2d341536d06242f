package exam

import (
	"fmt"

	"mcq-server/models"
	"mcq-server/utils"
)

const defaultTitle = "MCQ Exam"

// DefaultMeta fills the intro text for an exam of total questions.
func DefaultMeta(total int) models.ExamMeta {
	return models.ExamMeta{
		Title: defaultTitle,
		Description: fmt.Sprintf("This MCQ exam contains %d questions. You can navigate between questions, "+
			"skip questions, and review your answers using the question tracker. Good luck!", total),
	}
}

// View snapshots the session for rendering. Empty meta fields fall back to DefaultMeta.
func (s *Session) View(meta models.ExamMeta) models.SessionView {
	def := DefaultMeta(len(s.questions))
	if meta.Title == "" {
		meta.Title = def.Title
	}
	if meta.Description == "" {
		meta.Description = def.Description
	}

	q := s.Current()
	stats := s.Stats()
	view := models.SessionView{
		Phase:           s.Phase(),
		Meta:            meta,
		Index:           s.index,
		Number:          s.index + 1,
		Total:           len(s.questions),
		Question:        q,
		Submitted:       s.submitted,
		QuitPending:     s.quitPending,
		IsLast:          s.index == len(s.questions)-1,
		Stats:           stats,
		ProgressPercent: utils.Percent(stats.Answered, stats.TotalQuestions),
		Grid:            make([]models.GridCell, 0, len(s.questions)),
	}
	if s.selected != nil {
		view.Selected = utils.IntPtr(*s.selected)
	}
	if a, ok := s.answers.Get(q.ID); ok {
		view.Answer = &a
		if s.submitted && a.IsCorrect != nil && !*a.IsCorrect {
			view.CorrectOption = q.Options[q.AnswerIndex]
		}
	}
	for i, gq := range s.questions {
		view.Grid = append(view.Grid, models.GridCell{
			Index:      i,
			Number:     i + 1,
			QuestionID: gq.ID,
			Status:     s.answers.Status(gq.ID),
			Current:    i == s.index,
		})
	}
	return view
}
