package aichat

import (
	"github.com/gofiber/fiber/v2"
	"github.com/reelflip/jeeprep-api/handlers"
	"github.com/reelflip/jeeprep-api/services/ai"
	"github.com/reelflip/jeeprep-api/utils/middleware"
	"github.com/reelflip/jeeprep-api/utils/response"
	"github.com/reelflip/jeeprep-api/utils/validation"
)

// AIHandler exposes the generative-AI collaborator: study plan, chat and
// performance insights. AI failures never reach the client; the service
// substitutes canned fallbacks.
type AIHandler struct {
	service   *ai.Service
	validator *validation.Validator
}

// NewAIHandler creates a new AI handler
func NewAIHandler(service *ai.Service) *AIHandler {
	return &AIHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// Plan generates a study plan from the session user's progress.
// GET /ai/plan
func (h *AIHandler) Plan(c *fiber.Ctx) error {
	sess, _ := middleware.GetSession(c)
	plan, err := h.service.StudyPlan(c.Context(), sess.UserID)
	if err != nil {
		return handlers.MapServiceError(c, err)
	}
	return response.Success(c, fiber.Map{"plan": plan})
}

// ChatRequest carries the running conversation and the new message.
type ChatRequest struct {
	History []ai.Message `json:"history"`
	Message string       `json:"message" validate:"required"`
}

// Chat continues a conversation with the study assistant.
// POST /ai/chat
func (h *AIHandler) Chat(c *fiber.Ctx) error {
	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	sess, _ := middleware.GetSession(c)
	reply, err := h.service.Chat(c.Context(), sess.UserID, req.History, req.Message)
	if err != nil {
		return handlers.MapServiceError(c, err)
	}
	return response.Success(c, fiber.Map{"reply": reply})
}

// Insights returns the structured performance analysis.
// GET /ai/insights
func (h *AIHandler) Insights(c *fiber.Ctx) error {
	sess, _ := middleware.GetSession(c)
	insights, err := h.service.PerformanceInsights(c.Context(), sess.UserID)
	if err != nil {
		return handlers.MapServiceError(c, err)
	}
	return response.Success(c, insights)
}
