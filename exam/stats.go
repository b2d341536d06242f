package exam

import (
	"mcq-server/models"
	"mcq-server/utils"
)

// ComputeStats aggregates the answer records for an exam of totalQuestions questions.
func ComputeStats(totalQuestions int, answers []models.UserAnswer) models.ExamStats {
	stats := models.ExamStats{TotalQuestions: totalQuestions}
	for _, a := range answers {
		switch a.Status {
		case models.StatusCorrect:
			stats.Correct++
		case models.StatusWrong:
			stats.Wrong++
		case models.StatusSkipped:
			stats.Skipped++
		}
	}
	stats.Answered = stats.Correct + stats.Wrong
	stats.PercentageCorrect = utils.Percent(stats.Correct, stats.Answered)
	return stats
}
