package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the HTML pages and the JSON API. The session cookie
// middleware must already be installed on r.
func RegisterRoutes(r *gin.Engine, d *ExamDeps) {
	r.GET("/", ShowExam(d))
	r.POST("/exam/:action", PostExamAction(d))
	r.GET("/questions.json", GetQuestions(d.Store, d.Log))
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	apiV1 := r.Group("/api/v1")
	{
		apiV1.GET("/store", GetStoreStatus(d.Store))
		apiV1.GET("/session", GetSession(d))
		apiV1.GET("/session/stats", GetSessionStats(d))
		apiV1.POST("/session/:action", PostSessionAction(d))
	}
}
