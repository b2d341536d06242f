package exam

import (
	"errors"
	"fmt"

	"mcq-server/models"
	"mcq-server/utils"
)

var (
	ErrNoQuestions      = errors.New("exam has no questions")
	ErrNotInProgress    = errors.New("exam is not in progress")
	ErrIndexOutOfRange  = errors.New("question index out of range")
	ErrOptionOutOfRange = errors.New("option index out of range")
)

// Session is the state of one exam run over a fixed question list.
// It is not safe for concurrent use; Registry serializes access per session.
type Session struct {
	questions []models.Question
	index     int
	answers   *AnswerBook
	selected  *int
	submitted bool

	showIntro   bool
	quitPending bool
	completed   bool
}

// NewSession starts a session at the intro screen.
func NewSession(questions []models.Question) (*Session, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	qs := make([]models.Question, len(questions))
	copy(qs, questions)
	return &Session{
		questions: qs,
		answers:   NewAnswerBook(),
		showIntro: true,
	}, nil
}

// Phase derives intro / in_progress / completed from the flags.
func (s *Session) Phase() models.Phase {
	switch {
	case s.completed:
		return models.PhaseCompleted
	case s.showIntro:
		return models.PhaseIntro
	default:
		return models.PhaseInProgress
	}
}

// Index is the zero-based position of the current question.
func (s *Session) Index() int { return s.index }

// Total is the number of questions in the exam.
func (s *Session) Total() int { return len(s.questions) }

// Selected is the transient option choice, nil when nothing is selected.
func (s *Session) Selected() *int { return s.selected }

// Submitted reports whether the current question's answer has been submitted.
func (s *Session) Submitted() bool { return s.submitted }

// QuitPending reports whether the quit confirmation is showing.
func (s *Session) QuitPending() bool { return s.quitPending }

// Completed reports whether the exam has ended, by finishing or quitting.
func (s *Session) Completed() bool { return s.completed }

// Current returns the question at Index.
func (s *Session) Current() models.Question {
	return s.questions[s.index]
}

// Answers returns the recorded answers in key order.
func (s *Session) Answers() []models.UserAnswer {
	return s.answers.All()
}

// Answer looks up the recorded answer for a question id.
func (s *Session) Answer(questionID int) (models.UserAnswer, bool) {
	return s.answers.Get(questionID)
}

func (s *Session) requireInProgress() error {
	if s.Phase() != models.PhaseInProgress {
		return ErrNotInProgress
	}
	return nil
}

// Continue dismisses the intro modal.
func (s *Session) Continue() error {
	if s.Phase() != models.PhaseIntro {
		return ErrNotInProgress
	}
	s.showIntro = false
	return nil
}

// SelectOption sets the transient selection. It is ignored once the answer is submitted.
func (s *Session) SelectOption(index int) error {
	if err := s.requireInProgress(); err != nil {
		return err
	}
	if s.submitted {
		return nil
	}
	if index < 0 || index >= len(s.Current().Options) {
		return fmt.Errorf("%w: %d", ErrOptionOutOfRange, index)
	}
	s.selected = utils.IntPtr(index)
	return nil
}

// SubmitAnswer scores the selection for the current question. Without a selection it does nothing.
func (s *Session) SubmitAnswer() error {
	if err := s.requireInProgress(); err != nil {
		return err
	}
	if s.selected == nil || s.submitted {
		return nil
	}
	q := s.Current()
	isCorrect := *s.selected == q.AnswerIndex
	status := models.StatusWrong
	if isCorrect {
		status = models.StatusCorrect
	}
	s.answers.Put(models.UserAnswer{
		QuestionID:    q.ID,
		SelectedIndex: utils.IntPtr(*s.selected),
		IsCorrect:     utils.BoolPtr(isCorrect),
		Status:        status,
	})
	s.submitted = true
	return nil
}

// Skip records the current question as skipped and moves on.
func (s *Session) Skip() error {
	if err := s.requireInProgress(); err != nil {
		return err
	}
	s.answers.Put(models.UserAnswer{
		QuestionID: s.Current().ID,
		Status:     models.StatusSkipped,
	})
	return s.Advance()
}

// Advance moves to the next question, or completes the exam from the last one.
func (s *Session) Advance() error {
	if err := s.requireInProgress(); err != nil {
		return err
	}
	if s.index == len(s.questions)-1 {
		s.completed = true
		return nil
	}
	s.index++
	s.clearTransient()
	return nil
}

// NavigateTo jumps to any question. Recorded answers are untouched.
func (s *Session) NavigateTo(index int) error {
	if err := s.requireInProgress(); err != nil {
		return err
	}
	if index < 0 || index >= len(s.questions) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	s.index = index
	s.clearTransient()
	return nil
}

// RequestQuit opens the quit confirmation.
func (s *Session) RequestQuit() error {
	if err := s.requireInProgress(); err != nil {
		return err
	}
	s.quitPending = true
	return nil
}

// ConfirmQuit ends the exam early, keeping every answer recorded so far.
func (s *Session) ConfirmQuit() error {
	if err := s.requireInProgress(); err != nil {
		return err
	}
	if !s.quitPending {
		return nil
	}
	s.quitPending = false
	s.completed = true
	return nil
}

// CancelQuit closes the quit confirmation and resumes the exam.
func (s *Session) CancelQuit() error {
	if err := s.requireInProgress(); err != nil {
		return err
	}
	s.quitPending = false
	return nil
}

// Restart returns to the initial state over the same questions.
func (s *Session) Restart() {
	s.index = 0
	s.answers.Reset()
	s.clearTransient()
	s.quitPending = false
	s.completed = false
	s.showIntro = true
}

// Stats is recomputed from the answer book on every call.
func (s *Session) Stats() models.ExamStats {
	return ComputeStats(len(s.questions), s.answers.All())
}

func (s *Session) clearTransient() {
	s.selected = nil
	s.submitted = false
}
