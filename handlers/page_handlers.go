package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mcq-server/exam"
	"mcq-server/models"
	"mcq-server/store"
)

const loadingRefreshSeconds = 1

var pageForPhase = map[models.Phase]string{
	models.PhaseIntro:      "intro",
	models.PhaseInProgress: "exam",
	models.PhaseCompleted:  "result",
}

// ShowExam renders whichever screen the store state and session phase call for.
// GET /
func ShowExam(d *ExamDeps) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap := d.Store.Snapshot()
		switch snap.State {
		case store.StateLoading:
			c.HTML(http.StatusOK, "loading", gin.H{"RefreshSeconds": loadingRefreshSeconds})
			return
		case store.StateFailed:
			c.HTML(http.StatusInternalServerError, "error", gin.H{"Message": loadErrorMessage(snap.Err)})
			return
		case store.StateEmpty:
			c.HTML(http.StatusOK, "empty", gin.H{})
			return
		}

		var view models.SessionView
		err := d.withSession(c, func(s *exam.Session) error {
			view = s.View(d.Meta)
			return nil
		})
		if err != nil {
			d.Log.Error("failed to open exam session", zap.Error(err))
			c.HTML(statusFor(err), "error", gin.H{"Message": err.Error()})
			return
		}
		c.HTML(http.StatusOK, pageForPhase[view.Phase], gin.H{"View": view})
	}
}

// PostExamAction applies a form action and redirects back to the exam page.
// Actions that do not apply to the current screen, such as a resubmitted form
// after the exam ended, are dropped and the current screen is shown again.
// POST /exam/:action
func PostExamAction(d *ExamDeps) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, err := d.apply(c, c.Param("action"))
		if err != nil {
			switch status := statusFor(err); status {
			case http.StatusConflict, http.StatusServiceUnavailable:
			default:
				c.HTML(status, "error", gin.H{"Message": err.Error(), "Back": true})
				return
			}
		}
		c.Redirect(http.StatusSeeOther, "/")
	}
}

func loadErrorMessage(err error) string {
	if err == nil {
		return "Failed to load questions."
	}
	return "Failed to load questions: " + err.Error()
}
