package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mcq-server/exam"
	"mcq-server/models"
	"mcq-server/store"
)

// GetQuestions serves the loaded question list in the questions.json layout.
// GET /questions.json
func GetQuestions(st *store.Store, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap := st.Snapshot()
		if snap.State != store.StateReady && snap.State != store.StateEmpty {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "questions are " + string(snap.State)})
			return
		}
		data, err := store.EncodeQuestions(snap.Questions)
		if err != nil {
			log.Error("failed to encode questions", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode questions"})
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", data)
	}
}

// GetStoreStatus reports the question load state.
// GET /api/v1/store
func GetStoreStatus(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap := st.Snapshot()
		resp := models.StoreStatusResponse{
			State: string(snap.State),
			Count: snap.Count(),
		}
		if snap.Err != nil {
			resp.Error = snap.Err.Error()
		}
		c.JSON(http.StatusOK, resp)
	}
}

// GetSession returns the caller's session view, creating the session on first use.
// GET /api/v1/session
func GetSession(d *ExamDeps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var view models.SessionView
		err := d.withSession(c, func(s *exam.Session) error {
			view = s.View(d.Meta)
			return nil
		})
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// GetSessionStats returns only the derived statistics.
// GET /api/v1/session/stats
func GetSessionStats(d *ExamDeps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var stats models.ExamStats
		err := d.withSession(c, func(s *exam.Session) error {
			stats = s.Stats()
			return nil
		})
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

// PostSessionAction applies an action and returns the new view.
// POST /api/v1/session/:action
func PostSessionAction(d *ExamDeps) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := d.apply(c, c.Param("action"))
		if err != nil {
			status := statusFor(err)
			if status == http.StatusInternalServerError {
				d.Log.Error("session action failed", zap.Error(err))
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, view)
	}
}
