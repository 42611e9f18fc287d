package dto

import (
	"time"

	"restaurant-quiz/internal/domain"
	"restaurant-quiz/internal/service"
)

// StartQuizRequest starts a quiz. An empty session_id opens a new session.
type StartQuizRequest struct {
	SessionID     string `json:"session_id" validate:"omitempty,ulid"`
	RestaurantID  string `json:"restaurant_id" validate:"required,max=64"`
	QuestionCount int    `json:"question_count" validate:"gte=0,lte=100"`
}

// AnswerRequest records the selection for the current question.
type AnswerRequest struct {
	SelectedIDs []string `json:"selected_ids" validate:"max=6,dive,required"`
}

type OptionResponse struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// QuestionResponse omits the correct answers until the question is scored.
type QuestionResponse struct {
	ID               string           `json:"id"`
	Type             string           `json:"type"`
	QuestionText     string           `json:"question_text"`
	ImageURL         *string          `json:"image_url,omitempty"`
	Options          []OptionResponse `json:"options"`
	IsSingleChoice   bool             `json:"is_single_choice"`
	CorrectAnswerIDs []string         `json:"correct_answer_ids,omitempty"`
}

type SessionResponse struct {
	SessionID            string             `json:"session_id"`
	RestaurantID         string             `json:"restaurant_id,omitempty"`
	Status               string             `json:"status"`
	InProgress           bool               `json:"in_progress"`
	Completed            bool               `json:"completed"`
	Loading              bool               `json:"loading"`
	CurrentQuestionIndex int                `json:"current_question_index"`
	TotalQuestions       int                `json:"total_questions"`
	Score                int                `json:"score"`
	Questions            []QuestionResponse `json:"questions"`
	UserAnswers          map[int][]string   `json:"user_answers"`
	Error                string             `json:"error,omitempty"`
	UpdatedAt            time.Time          `json:"updated_at"`
}

type SubmitAnswerResponse struct {
	QuestionID       string          `json:"question_id"`
	Correct          bool            `json:"correct"`
	CorrectAnswerIDs []string        `json:"correct_answer_ids"`
	Session          SessionResponse `json:"session"`
}

// NewSessionResponse converts a session snapshot. Correct answers are
// revealed only for questions that have been submitted.
func NewSessionResponse(state *domain.QuizState) SessionResponse {
	questions := make([]QuestionResponse, len(state.Questions))
	for i, q := range state.Questions {
		options := make([]OptionResponse, len(q.Options))
		for j, o := range q.Options {
			options[j] = OptionResponse{ID: o.ID, Text: o.Text}
		}
		questions[i] = QuestionResponse{
			ID:             q.ID,
			Type:           string(q.Type),
			QuestionText:   q.QuestionText,
			ImageURL:       q.ImageURL,
			Options:        options,
			IsSingleChoice: q.IsSingleChoice,
		}
		if i < state.CurrentQuestionIndex || state.Completed() {
			questions[i].CorrectAnswerIDs = q.CorrectAnswerIDs
		}
	}

	answers := state.UserAnswers
	if answers == nil {
		answers = map[int][]string{}
	}
	return SessionResponse{
		SessionID:            state.SessionID,
		RestaurantID:         state.RestaurantID,
		Status:               string(state.Status),
		InProgress:           state.InProgress(),
		Completed:            state.Completed(),
		Loading:              state.Loading(),
		CurrentQuestionIndex: state.CurrentQuestionIndex,
		TotalQuestions:       state.TotalQuestions,
		Score:                state.Score,
		Questions:            questions,
		UserAnswers:          answers,
		Error:                state.Error,
		UpdatedAt:            state.UpdatedAt,
	}
}

func NewSubmitAnswerResponse(result *service.SubmitResult) SubmitAnswerResponse {
	return SubmitAnswerResponse{
		QuestionID:       result.QuestionID,
		Correct:          result.Correct,
		CorrectAnswerIDs: result.CorrectAnswerIDs,
		Session:          NewSessionResponse(result.State),
	}
}
