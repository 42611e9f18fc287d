package domain

import "time"

// QuizStatus is the lifecycle position of a quiz session.
type QuizStatus string

const (
	StatusIdle       QuizStatus = "idle"
	StatusLoading    QuizStatus = "loading"
	StatusInProgress QuizStatus = "in_progress"
	StatusCompleted  QuizStatus = "completed"
	StatusError      QuizStatus = "error"
)

// QuizState is the persisted snapshot of one quiz session.
type QuizState struct {
	SessionID            string           `json:"sessionId"`
	RestaurantID         string           `json:"restaurantId,omitempty"`
	Status               QuizStatus       `json:"status"`
	Questions            []QuizQuestion   `json:"questions"`
	CurrentQuestionIndex int              `json:"currentQuestionIndex"`
	UserAnswers          map[int][]string `json:"userAnswers"`
	Score                int              `json:"score"`
	TotalQuestions       int              `json:"totalQuestions"`
	Error                string           `json:"error,omitempty"`
	UpdatedAt            time.Time        `json:"updatedAt"`
}

// NewIdleState returns an empty session in the Idle state.
func NewIdleState(sessionID string) *QuizState {
	return &QuizState{
		SessionID:   sessionID,
		Status:      StatusIdle,
		UserAnswers: map[int][]string{},
		UpdatedAt:   time.Now(),
	}
}

func (s *QuizState) InProgress() bool { return s.Status == StatusInProgress }
func (s *QuizState) Completed() bool  { return s.Status == StatusCompleted }
func (s *QuizState) Loading() bool    { return s.Status == StatusLoading }

// Restorable reports whether a persisted snapshot should be resumed.
// Idle, loading and error snapshots are discarded on load.
func (s *QuizState) Restorable() bool {
	return s.InProgress() || s.Completed()
}

// CurrentQuestion returns the question under the pointer, or nil.
func (s *QuizState) CurrentQuestion() *QuizQuestion {
	if s.CurrentQuestionIndex < 0 || s.CurrentQuestionIndex >= len(s.Questions) {
		return nil
	}
	return &s.Questions[s.CurrentQuestionIndex]
}
