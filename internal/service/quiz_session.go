package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"restaurant-quiz/internal/config"
	"restaurant-quiz/internal/domain"
	"restaurant-quiz/internal/logger"
	"restaurant-quiz/internal/quizgen"
	"restaurant-quiz/internal/util"

	"go.uber.org/zap"
)

// SubmitResult reports the outcome of scoring the current question.
type SubmitResult struct {
	State            *domain.QuizState
	QuestionID       string
	Correct          bool
	CorrectAnswerIDs []string
}

// QuizSessionService drives the quiz lifecycle of one session at a time:
// Idle -> Loading -> InProgress -> Completed, with Error when a quiz
// cannot be started. Every transition is persisted.
type QuizSessionService interface {
	StartQuiz(ctx context.Context, sessionID, restaurantID string, questionCount int) (*domain.QuizState, error)
	AnswerQuestion(ctx context.Context, sessionID string, selectedIDs []string) (*domain.QuizState, error)
	SubmitAnswer(ctx context.Context, sessionID string) (*SubmitResult, error)
	ResetQuiz(ctx context.Context, sessionID string) (*domain.QuizState, error)
	GetState(ctx context.Context, sessionID string) (*domain.QuizState, error)
}

type quizSessionService struct {
	catalogs  CatalogService
	generator *quizgen.Generator
	store     SessionStore
	cfg       config.QuizConfig
	now       func() time.Time
}

func NewQuizSessionService(
	catalogs CatalogService,
	generator *quizgen.Generator,
	store SessionStore,
	cfg config.QuizConfig,
) QuizSessionService {
	return &quizSessionService{
		catalogs:  catalogs,
		generator: generator,
		store:     store,
		cfg:       cfg,
		now:       time.Now,
	}
}

// StartQuiz loads the restaurant's catalog and generates a fresh quiz. An
// empty sessionID starts a new session. When generation fails the session
// is left in the Error state and returned alongside the error.
func (s *quizSessionService) StartQuiz(ctx context.Context, sessionID, restaurantID string, questionCount int) (*domain.QuizState, error) {
	if sessionID == "" {
		sessionID = util.NewULID()
	} else if !util.IsULID(sessionID) {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("invalid session id: %s", sessionID))
	}
	if restaurantID == "" {
		return nil, domain.NewInvalidInputError("restaurant id is required")
	}
	if questionCount <= 0 {
		questionCount = s.cfg.DefaultQuestionCount
	}
	if s.cfg.MaxQuestionCount > 0 && questionCount > s.cfg.MaxQuestionCount {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("question count %d exceeds the maximum of %d", questionCount, s.cfg.MaxQuestionCount))
	}

	state, err := s.restore(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if state.InProgress() {
		return nil, domain.NewInvalidStateError("start a quiz", state.Status)
	}

	state = domain.NewIdleState(sessionID)
	state.RestaurantID = restaurantID
	state.Status = domain.StatusLoading
	if err := s.persist(ctx, state); err != nil {
		return nil, err
	}

	log := logger.Get().With(zap.String("sessionID", sessionID), zap.String("restaurantID", restaurantID))

	catalog, err := s.catalogs.GetCatalog(ctx, restaurantID)
	if err != nil {
		log.Error("Failed to load catalog for quiz", zap.Error(err))
		return s.fail(ctx, state, err)
	}

	questions, err := s.generator.GenerateQuizQuestions(catalog, questionCount)
	switch {
	case err != nil && domain.HasCode(err, domain.CodePartialQuiz) && len(questions) > 0:
		log.Warn("Starting quiz with fewer questions than requested",
			zap.Int("requested", questionCount),
			zap.Int("generated", len(questions)))
	case err != nil:
		log.Info("Could not generate quiz", zap.Error(err))
		return s.fail(ctx, state, err)
	}

	state.Status = domain.StatusInProgress
	state.Questions = questions
	state.CurrentQuestionIndex = 0
	state.Score = 0
	state.UserAnswers = map[int][]string{}
	state.TotalQuestions = len(questions)
	state.Error = ""
	if err := s.persist(ctx, state); err != nil {
		return nil, err
	}

	log.Info("Quiz started", zap.Int("questions", len(questions)))
	return state, nil
}

func (s *quizSessionService) fail(ctx context.Context, state *domain.QuizState, cause error) (*domain.QuizState, error) {
	state.Status = domain.StatusError
	state.Error = cause.Error()
	if de, ok := domain.AsDomainError(cause); ok {
		state.Error = de.Message
	}
	if err := s.persist(ctx, state); err != nil {
		logger.Get().Error("Failed to persist error state", zap.Error(err), zap.String("sessionID", state.SessionID))
	}
	return state, cause
}

// AnswerQuestion records the selection for the current question without
// scoring it or moving the pointer.
func (s *quizSessionService) AnswerQuestion(ctx context.Context, sessionID string, selectedIDs []string) (*domain.QuizState, error) {
	state, err := s.activeSession(ctx, sessionID, "answer a question")
	if err != nil {
		return nil, err
	}

	question := state.CurrentQuestion()
	if question == nil {
		return nil, domain.NewInternalError(fmt.Sprintf("session %s has no current question", sessionID), nil)
	}
	known := make(map[string]struct{}, len(question.Options))
	for _, o := range question.Options {
		known[o.ID] = struct{}{}
	}
	for _, id := range selectedIDs {
		if _, ok := known[id]; !ok {
			return nil, domain.NewInvalidInputError(fmt.Sprintf("option %s is not offered by question %s", id, question.ID))
		}
	}

	state.UserAnswers[state.CurrentQuestionIndex] = append([]string{}, selectedIDs...)
	if err := s.persist(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

// SubmitAnswer scores the recorded answer by exact set equality, then
// advances to the next question or completes the quiz on the last one.
func (s *quizSessionService) SubmitAnswer(ctx context.Context, sessionID string) (*SubmitResult, error) {
	state, err := s.activeSession(ctx, sessionID, "submit an answer")
	if err != nil {
		return nil, err
	}

	question := state.CurrentQuestion()
	if question == nil {
		return nil, domain.NewInternalError(fmt.Sprintf("session %s has no current question", sessionID), nil)
	}

	correct := question.IsCorrect(state.UserAnswers[state.CurrentQuestionIndex])
	if correct {
		state.Score++
	}
	if state.CurrentQuestionIndex >= len(state.Questions)-1 {
		state.Status = domain.StatusCompleted
	} else {
		state.CurrentQuestionIndex++
	}
	if err := s.persist(ctx, state); err != nil {
		return nil, err
	}

	if state.Completed() {
		logger.Get().Info("Quiz completed",
			zap.String("sessionID", sessionID),
			zap.Int("score", state.Score),
			zap.Int("total", state.TotalQuestions))
	}
	return &SubmitResult{
		State:            state,
		QuestionID:       question.ID,
		Correct:          correct,
		CorrectAnswerIDs: question.CorrectAnswerIDs,
	}, nil
}

// ResetQuiz drops the persisted snapshot and returns an Idle session.
func (s *quizSessionService) ResetQuiz(ctx context.Context, sessionID string) (*domain.QuizState, error) {
	if err := s.store.Delete(ctx, sessionID); err != nil {
		return nil, err
	}
	logger.Get().Debug("Quiz reset", zap.String("sessionID", sessionID))
	return domain.NewIdleState(sessionID), nil
}

// GetState returns the restorable snapshot, or an Idle session.
func (s *quizSessionService) GetState(ctx context.Context, sessionID string) (*domain.QuizState, error) {
	return s.restore(ctx, sessionID)
}

// restore loads a snapshot and resumes it only when it is in progress or
// completed; anything else comes back as a fresh Idle session.
func (s *quizSessionService) restore(ctx context.Context, sessionID string) (*domain.QuizState, error) {
	state, err := s.store.Load(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionStateNotFound) {
			return domain.NewIdleState(sessionID), nil
		}
		return nil, err
	}
	if !state.Restorable() {
		logger.Get().Debug("Discarding non-restorable session snapshot",
			zap.String("sessionID", sessionID),
			zap.String("status", string(state.Status)))
		return domain.NewIdleState(sessionID), nil
	}
	return state, nil
}

func (s *quizSessionService) activeSession(ctx context.Context, sessionID, op string) (*domain.QuizState, error) {
	state, err := s.store.Load(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionStateNotFound) {
			return nil, domain.NewSessionNotFoundError(sessionID)
		}
		return nil, err
	}
	if !state.InProgress() {
		return nil, domain.NewInvalidStateError(op, state.Status)
	}
	return state, nil
}

func (s *quizSessionService) persist(ctx context.Context, state *domain.QuizState) error {
	state.UpdatedAt = s.now()
	return s.store.Save(ctx, state)
}
