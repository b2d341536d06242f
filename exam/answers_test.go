package exam

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcq-server/models"
	"mcq-server/utils"
)

func TestAnswerBook(t *testing.T) {
	t.Parallel()

	b := NewAnswerBook()
	assert.Equal(t, models.StatusUnanswered, b.Status(7))

	b.Put(models.UserAnswer{QuestionID: 7, Status: models.StatusSkipped})
	b.Put(models.UserAnswer{QuestionID: 3, SelectedIndex: utils.IntPtr(1), IsCorrect: utils.BoolPtr(false), Status: models.StatusWrong})
	b.Put(models.UserAnswer{QuestionID: 7, SelectedIndex: utils.IntPtr(0), IsCorrect: utils.BoolPtr(true), Status: models.StatusCorrect})

	require.Equal(t, 2, b.Len())
	all := b.All()
	assert.Equal(t, 7, all[0].QuestionID, "first write keeps its position")
	assert.Equal(t, models.StatusCorrect, all[0].Status)
	assert.Equal(t, 3, all[1].QuestionID)

	a, ok := b.Get(3)
	require.True(t, ok)
	assert.Equal(t, models.StatusWrong, a.Status)

	b.Reset()
	assert.Zero(t, b.Len())
	assert.Empty(t, b.All())
	_, ok = b.Get(7)
	assert.False(t, ok)
}

func TestComputeStats(t *testing.T) {
	t.Parallel()

	correct := models.UserAnswer{Status: models.StatusCorrect}
	wrong := models.UserAnswer{Status: models.StatusWrong}
	skipped := models.UserAnswer{Status: models.StatusSkipped}

	tests := []struct {
		name    string
		total   int
		answers []models.UserAnswer
		want    models.ExamStats
	}{
		{
			name:  "nothing answered",
			total: 4,
			want:  models.ExamStats{TotalQuestions: 4},
		},
		{
			name:    "only skipped",
			total:   2,
			answers: []models.UserAnswer{skipped, skipped},
			want:    models.ExamStats{TotalQuestions: 2, Skipped: 2},
		},
		{
			name:    "mixed",
			total:   5,
			answers: []models.UserAnswer{correct, wrong, skipped, correct},
			want: models.ExamStats{
				TotalQuestions:    5,
				Answered:          3,
				Correct:           2,
				Wrong:             1,
				Skipped:           1,
				PercentageCorrect: 200.0 / 3.0,
			},
		},
		{
			name:    "all correct",
			total:   2,
			answers: []models.UserAnswer{correct, correct},
			want:    models.ExamStats{TotalQuestions: 2, Answered: 2, Correct: 2, PercentageCorrect: 100},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ComputeStats(tt.total, tt.answers)
			assert.InDelta(t, tt.want.PercentageCorrect, got.PercentageCorrect, 0.0001)
			got.PercentageCorrect = tt.want.PercentageCorrect
			assert.Equal(t, tt.want, got)
		})
	}
}
