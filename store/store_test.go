package store

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mcq-server/models"
	mock_store "mcq-server/store/mock"
)

func validQuestions() []models.Question {
	return []models.Question{
		{ID: 1, Question: "2 + 2?", Options: []string{"3", "4", "5", "22"}, AnswerIndex: 1},
		{ID: 2, Question: "Capital of France?", Options: []string{"Paris", "Rome", "Oslo", "Bern"}, AnswerIndex: 0},
	}
}

func TestStore_Load(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		setup     func(*mock_store.MockSource)
		wantState State
		wantCount int
		wantErr   error
	}{
		{
			name: "ready",
			setup: func(m *mock_store.MockSource) {
				m.EXPECT().Fetch(gomock.Any()).Return(validQuestions(), nil)
			},
			wantState: StateReady,
			wantCount: 2,
		},
		{
			name: "empty",
			setup: func(m *mock_store.MockSource) {
				m.EXPECT().Fetch(gomock.Any()).Return([]models.Question{}, nil)
			},
			wantState: StateEmpty,
		},
		{
			name: "source failure",
			setup: func(m *mock_store.MockSource) {
				m.EXPECT().Fetch(gomock.Any()).Return(nil, errors.New("connection refused"))
			},
			wantState: StateFailed,
		},
		{
			name: "malformed payload",
			setup: func(m *mock_store.MockSource) {
				m.EXPECT().Fetch(gomock.Any()).Return(nil, ErrMalformed)
			},
			wantState: StateFailed,
			wantErr:   ErrMalformed,
		},
		{
			name: "invalid records",
			setup: func(m *mock_store.MockSource) {
				qs := validQuestions()
				qs[1].AnswerIndex = 7
				m.EXPECT().Fetch(gomock.Any()).Return(qs, nil)
			},
			wantState: StateFailed,
			wantErr:   ErrInvalidRecords,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			src := mock_store.NewMockSource(ctrl)
			src.EXPECT().Describe().Return("mock").AnyTimes()
			tt.setup(src)

			s := New(src, zap.NewNop())
			assert.Equal(t, StateLoading, s.Snapshot().State)

			err := s.Load(context.Background())
			snap := s.Snapshot()
			assert.Equal(t, tt.wantState, snap.State)
			assert.Equal(t, tt.wantCount, snap.Count())
			if tt.wantState == StateFailed {
				require.Error(t, err)
				assert.Equal(t, err, snap.Err)
				assert.Nil(t, s.Questions())
			} else {
				require.NoError(t, err)
			}
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestStore_LoadRunsOnce(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	src := mock_store.NewMockSource(ctrl)
	src.EXPECT().Describe().Return("mock").AnyTimes()
	src.EXPECT().Fetch(gomock.Any()).Return(validQuestions(), nil).Times(1)

	s := New(src, zap.NewNop())
	s.LoadAsync(context.Background())
	<-s.Done()

	require.NoError(t, s.Load(context.Background()))
	assert.Len(t, s.Questions(), 2)
}

func TestValidateQuestions(t *testing.T) {
	t.Parallel()

	require.NoError(t, ValidateQuestions(validQuestions()))
	require.NoError(t, ValidateQuestions(nil))

	nonPositive, err := DecodeQuestions([]byte(`[
		{"id": 0, "question": "zero?", "options": ["a", "b", "c", "d"], "answerIndex": 0},
		{"id": -3, "question": "negative?", "options": ["a", "b", "c", "d"], "answerIndex": 3}
	]`))
	require.NoError(t, err)
	require.NoError(t, ValidateQuestions(nonPositive), "any unique integer id is accepted")

	bad := []models.Question{
		{ID: 1, Question: "ok?", Options: []string{"a", "b", "c", "d"}, AnswerIndex: 0},
		{ID: 1, Question: "dup?", Options: []string{"a", "b", "c", "d"}, AnswerIndex: 0},
		{ID: 3, Question: "three options?", Options: []string{"a", "b", "c"}, AnswerIndex: 0},
		{ID: 4, Question: "blank option?", Options: []string{"a", "", "c", "d"}, AnswerIndex: -1},
	}
	err = ValidateQuestions(bad)
	require.ErrorIs(t, err, ErrInvalidRecords)
	msg := err.Error()
	assert.Contains(t, msg, "duplicate id 1")
	assert.Contains(t, msg, "question #3")
	assert.Contains(t, msg, "question #4")
	assert.Contains(t, msg, "AnswerIndex")
}
