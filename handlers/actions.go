package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mcq-server/exam"
	"mcq-server/middleware"
	"mcq-server/models"
	"mcq-server/store"
)

var (
	ErrUnknownAction = errors.New("unknown action")
	ErrStoreNotReady = errors.New("questions are not available")
)

// ExamDeps bundles what the exam handlers share.
type ExamDeps struct {
	Store    *store.Store
	Registry *exam.Registry
	Meta     models.ExamMeta
	Log      *zap.Logger
}

// Action names accepted by POST /exam/:action and POST /api/v1/session/:action.
const (
	ActionContinue    = "continue"
	ActionSelect      = "select"
	ActionSubmit      = "submit"
	ActionSkip        = "skip"
	ActionNext        = "next"
	ActionNavigate    = "navigate"
	ActionQuit        = "quit"
	ActionConfirmQuit = "confirm-quit"
	ActionCancelQuit  = "cancel-quit"
	ActionRestart     = "restart"
	ActionKey         = "key"
)

// sessionAction applies one bound request to a session.
type sessionAction func(c *gin.Context) (func(*exam.Session) error, error)

func noInput(op func(*exam.Session) error) sessionAction {
	return func(*gin.Context) (func(*exam.Session) error, error) { return op, nil }
}

var actions = map[string]sessionAction{
	ActionContinue:    noInput((*exam.Session).Continue),
	ActionSubmit:      noInput((*exam.Session).SubmitAnswer),
	ActionSkip:        noInput((*exam.Session).Skip),
	ActionNext:        noInput((*exam.Session).Advance),
	ActionQuit:        noInput((*exam.Session).RequestQuit),
	ActionConfirmQuit: noInput((*exam.Session).ConfirmQuit),
	ActionCancelQuit:  noInput((*exam.Session).CancelQuit),
	ActionRestart: noInput(func(s *exam.Session) error {
		s.Restart()
		return nil
	}),
	ActionSelect: func(c *gin.Context) (func(*exam.Session) error, error) {
		var req models.SelectRequest
		if err := c.ShouldBind(&req); err != nil {
			return nil, err
		}
		return func(s *exam.Session) error { return s.SelectOption(*req.Index) }, nil
	},
	ActionNavigate: func(c *gin.Context) (func(*exam.Session) error, error) {
		var req models.NavigateRequest
		if err := c.ShouldBind(&req); err != nil {
			return nil, err
		}
		return func(s *exam.Session) error { return s.NavigateTo(*req.Index) }, nil
	},
	ActionKey: func(c *gin.Context) (func(*exam.Session) error, error) {
		var req models.KeyRequest
		if err := c.ShouldBind(&req); err != nil {
			return nil, err
		}
		return func(s *exam.Session) error { return s.PressKey(req.Key) }, nil
	},
}

// bindError marks request decoding failures so they map to 400.
type bindError struct{ err error }

func (e bindError) Error() string { return fmt.Sprintf("invalid request: %v", e.err) }
func (e bindError) Unwrap() error { return e.err }

// questions returns the loaded list, or ErrStoreNotReady.
func (d *ExamDeps) questions() ([]models.Question, error) {
	qs := d.Store.Questions()
	if qs == nil {
		return nil, ErrStoreNotReady
	}
	return qs, nil
}

// withSession runs fn on the caller's session.
func (d *ExamDeps) withSession(c *gin.Context, fn func(*exam.Session) error) error {
	qs, err := d.questions()
	if err != nil {
		return err
	}
	return d.Registry.Do(middleware.SessionID(c), qs, fn)
}

// apply binds and runs the named action, then snapshots the resulting view.
func (d *ExamDeps) apply(c *gin.Context, name string) (models.SessionView, error) {
	var view models.SessionView
	action, ok := actions[name]
	if !ok {
		return view, fmt.Errorf("%w: %q", ErrUnknownAction, name)
	}
	op, err := action(c)
	if err != nil {
		return view, bindError{err: err}
	}
	err = d.withSession(c, func(s *exam.Session) error {
		opErr := op(s)
		view = s.View(d.Meta)
		return opErr
	})
	if err != nil {
		d.Log.Debug("session action rejected",
			zap.String("action", name),
			zap.String("session_id", middleware.SessionID(c)),
			zap.Error(err))
	}
	return view, err
}

// statusFor maps action errors to HTTP status codes.
func statusFor(err error) int {
	var be bindError
	switch {
	case errors.As(err, &be),
		errors.Is(err, exam.ErrIndexOutOfRange),
		errors.Is(err, exam.ErrOptionOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, exam.ErrNotInProgress):
		return http.StatusConflict
	case errors.Is(err, ErrUnknownAction):
		return http.StatusNotFound
	case errors.Is(err, ErrStoreNotReady):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
