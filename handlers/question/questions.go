package question

import (
	"github.com/gofiber/fiber/v2"
	"github.com/reelflip/jeeprep-api/handlers"
	"github.com/reelflip/jeeprep-api/services"
	"github.com/reelflip/jeeprep-api/utils/middleware"
	"github.com/reelflip/jeeprep-api/utils/response"
	"github.com/reelflip/jeeprep-api/utils/validation"
)

// QuestionHandler serves the global question pool.
type QuestionHandler struct {
	service   *services.QuestionService
	validator *validation.Validator
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(service *services.QuestionService) *QuestionHandler {
	return &QuestionHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// List returns the whole pool.
// GET /questions
func (h *QuestionHandler) List(c *fiber.Ctx) error {
	sess, _ := middleware.GetSession(c)
	questions, err := h.service.List(c.Context(), sess)
	if err != nil {
		return handlers.MapServiceError(c, err)
	}
	return response.Success(c, questions)
}

// CreateQuestionRequest represents a new pool question
type CreateQuestionRequest struct {
	Text         string   `json:"text" validate:"required"`
	Options      []string `json:"options" validate:"required,min=2"`
	CorrectIndex int      `json:"correct_index" validate:"min=0"`
	Subject      string   `json:"subject" validate:"required"`
	ChapterID    string   `json:"chapter_id"`
	ExamTag      string   `json:"exam_tag"`
}

// Create adds a question to the pool.
// POST /questions
func (h *QuestionHandler) Create(c *fiber.Ctx) error {
	var req CreateQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	sess, _ := middleware.GetSession(c)
	question, err := h.service.Create(c.Context(), sess, services.QuestionInput{
		Text:         req.Text,
		Options:      req.Options,
		CorrectIndex: req.CorrectIndex,
		Subject:      req.Subject,
		ChapterID:    req.ChapterID,
		ExamTag:      req.ExamTag,
	})
	if err != nil {
		return handlers.MapServiceError(c, err)
	}
	return response.Created(c, question)
}

// Delete removes a question by id.
// DELETE /questions/:id
func (h *QuestionHandler) Delete(c *fiber.Ctx) error {
	sess, _ := middleware.GetSession(c)
	if err := h.service.Delete(c.Context(), sess, c.Params("id")); err != nil {
		return handlers.MapServiceError(c, err)
	}
	return response.SuccessWithMessage(c, "Question deleted successfully", fiber.Map{"id": c.Params("id")})
}
