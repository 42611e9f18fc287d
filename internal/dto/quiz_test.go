package dto

import (
	"testing"

	"restaurant-quiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoQuestionState(status domain.QuizStatus, index int) *domain.QuizState {
	state := domain.NewIdleState("s1")
	state.Status = status
	state.CurrentQuestionIndex = index
	state.Questions = []domain.QuizQuestion{
		{ID: "q0", Options: []domain.AnswerOption{{ID: "true"}, {ID: "false"}}, CorrectAnswerIDs: []string{"true"}},
		{ID: "q1", Options: []domain.AnswerOption{{ID: "true"}, {ID: "false"}}, CorrectAnswerIDs: []string{"false"}},
	}
	state.TotalQuestions = 2
	return state
}

func TestNewSessionResponse_RevealsOnlySubmittedAnswers(t *testing.T) {
	resp := NewSessionResponse(twoQuestionState(domain.StatusInProgress, 0))
	require.Len(t, resp.Questions, 2)
	assert.Empty(t, resp.Questions[0].CorrectAnswerIDs)
	assert.Empty(t, resp.Questions[1].CorrectAnswerIDs)

	resp = NewSessionResponse(twoQuestionState(domain.StatusInProgress, 1))
	assert.Equal(t, []string{"true"}, resp.Questions[0].CorrectAnswerIDs)
	assert.Empty(t, resp.Questions[1].CorrectAnswerIDs)

	resp = NewSessionResponse(twoQuestionState(domain.StatusCompleted, 1))
	assert.Equal(t, []string{"true"}, resp.Questions[0].CorrectAnswerIDs)
	assert.Equal(t, []string{"false"}, resp.Questions[1].CorrectAnswerIDs)
}

func TestNewSessionResponse_NilAnswers(t *testing.T) {
	state := &domain.QuizState{SessionID: "s1", Status: domain.StatusIdle}
	resp := NewSessionResponse(state)
	assert.NotNil(t, resp.UserAnswers)
	assert.NotNil(t, resp.Questions)
	assert.Equal(t, "idle", resp.Status)
}

func TestNewSessionResponse_StatusFlags(t *testing.T) {
	resp := NewSessionResponse(twoQuestionState(domain.StatusInProgress, 0))
	assert.True(t, resp.InProgress)
	assert.False(t, resp.Completed)
	assert.False(t, resp.Loading)

	resp = NewSessionResponse(twoQuestionState(domain.StatusCompleted, 1))
	assert.False(t, resp.InProgress)
	assert.True(t, resp.Completed)

	resp = NewSessionResponse(&domain.QuizState{SessionID: "s1", Status: domain.StatusLoading})
	assert.True(t, resp.Loading)
}
