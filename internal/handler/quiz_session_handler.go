package handler

import (
	"restaurant-quiz/internal/domain"
	"restaurant-quiz/internal/dto"
	"restaurant-quiz/internal/logger"
	"restaurant-quiz/internal/middleware"
	"restaurant-quiz/internal/service"
	"restaurant-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuizSessionHandler exposes the quiz session state machine over HTTP.
type QuizSessionHandler struct {
	service   service.QuizSessionService
	validator *validation.Validator
}

// NewQuizSessionHandler creates a new QuizSessionHandler instance
func NewQuizSessionHandler(service service.QuizSessionService, validator *validation.Validator) *QuizSessionHandler {
	if validator == nil {
		validator = validation.NewValidator()
	}
	return &QuizSessionHandler{
		service:   service,
		validator: validator,
	}
}

// RegisterRoutes mounts the session endpoints under router.
func (h *QuizSessionHandler) RegisterRoutes(router fiber.Router) {
	vm := middleware.NewValidationMiddleware(h.validator)

	sessions := router.Group("/quiz/sessions")
	sessions.Post("/", h.StartQuiz)
	sessions.Get("/:id", vm.ValidateSessionID(), h.GetSession)
	sessions.Put("/:id/answer", vm.ValidateSessionID(), h.AnswerQuestion)
	sessions.Post("/:id/submit", vm.ValidateSessionID(), h.SubmitAnswer)
	sessions.Delete("/:id", vm.ValidateSessionID(), h.ResetQuiz)
}

// StartQuiz handles POST /api/quiz/sessions. When the catalog cannot
// support a quiz the Error-state session is returned with 422.
func (h *QuizSessionHandler) StartQuiz(c *fiber.Ctx) error {
	var req dto.StartQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("request body must be valid JSON")
	}
	if errs := h.validator.ValidateStruct(req); len(errs) > 0 {
		return errs
	}

	state, err := h.service.StartQuiz(c.UserContext(), req.SessionID, req.RestaurantID, req.QuestionCount)
	if err != nil {
		if state != nil && domain.HasCode(err, domain.CodeInsufficientData) {
			logger.Get().Info("Quiz could not be started",
				zap.String("sessionID", state.SessionID),
				zap.String("restaurantID", req.RestaurantID),
				zap.String("reason", state.Error))
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.NewSessionResponse(state))
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewSessionResponse(state))
}

// GetSession handles GET /api/quiz/sessions/:id
func (h *QuizSessionHandler) GetSession(c *fiber.Ctx) error {
	state, err := h.service.GetState(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewSessionResponse(state))
}

// AnswerQuestion handles PUT /api/quiz/sessions/:id/answer
func (h *QuizSessionHandler) AnswerQuestion(c *fiber.Ctx) error {
	var req dto.AnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("request body must be valid JSON")
	}
	if errs := h.validator.ValidateStruct(req); len(errs) > 0 {
		return errs
	}

	state, err := h.service.AnswerQuestion(c.UserContext(), c.Params("id"), req.SelectedIDs)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewSessionResponse(state))
}

// SubmitAnswer handles POST /api/quiz/sessions/:id/submit
func (h *QuizSessionHandler) SubmitAnswer(c *fiber.Ctx) error {
	result, err := h.service.SubmitAnswer(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewSubmitAnswerResponse(result))
}

// ResetQuiz handles DELETE /api/quiz/sessions/:id
func (h *QuizSessionHandler) ResetQuiz(c *fiber.Ctx) error {
	state, err := h.service.ResetQuiz(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewSessionResponse(state))
}
