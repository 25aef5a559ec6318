package chapter

import (
	"github.com/gofiber/fiber/v2"
	"github.com/reelflip/jeeprep-api/handlers"
	"github.com/reelflip/jeeprep-api/model"
	"github.com/reelflip/jeeprep-api/services"
	"github.com/reelflip/jeeprep-api/utils/middleware"
	"github.com/reelflip/jeeprep-api/utils/response"
	"github.com/reelflip/jeeprep-api/utils/validation"
)

// ChapterHandler serves the chapter tracker: the template catalog for admins,
// per-user instances for students.
type ChapterHandler struct {
	service   *services.ChapterService
	validator *validation.Validator
}

// NewChapterHandler creates a new chapter handler
func NewChapterHandler(service *services.ChapterService) *ChapterHandler {
	return &ChapterHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// List returns the chapters visible to the session.
// GET /chapters
func (h *ChapterHandler) List(c *fiber.Ctx) error {
	sess, _ := middleware.GetSession(c)
	chapters, err := h.service.List(c.Context(), sess)
	if err != nil {
		return handlers.MapServiceError(c, err)
	}
	return response.Success(c, chapters)
}

// CreateChapterRequest represents a new chapter
type CreateChapterRequest struct {
	Name        string   `json:"name" validate:"required"`
	Subject     string   `json:"subject" validate:"required"`
	Description string   `json:"description"`
	Notes       string   `json:"notes"`
	VideoLinks  []string `json:"video_links"`
}

// Create adds a chapter to the session's collection.
// POST /chapters
func (h *ChapterHandler) Create(c *fiber.Ctx) error {
	var req CreateChapterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	sess, _ := middleware.GetSession(c)
	chapter, err := h.service.Create(c.Context(), sess, services.ChapterInput{
		Name:        req.Name,
		Subject:     req.Subject,
		Description: req.Description,
		Notes:       req.Notes,
		VideoLinks:  req.VideoLinks,
	})
	if err != nil {
		return handlers.MapServiceError(c, err)
	}
	return response.Created(c, chapter)
}

// UpdateChapterRequest names the fields an update may change.
type UpdateChapterRequest struct {
	Name        *string  `json:"name"`
	Subject     *string  `json:"subject"`
	Description *string  `json:"description"`
	Notes       *string  `json:"notes"`
	VideoLinks  []string `json:"video_links"`
	Status      *string  `json:"status" validate:"omitempty,oneof='Not Started' 'In Progress' 'Completed' 'Revision Needed'"`
}

// Update merges the update into the chapter.
// PUT /chapters/:id
func (h *ChapterHandler) Update(c *fiber.Ctx) error {
	var req UpdateChapterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	update := services.ChapterUpdate{
		Name:        req.Name,
		Subject:     req.Subject,
		Description: req.Description,
		Notes:       req.Notes,
		VideoLinks:  req.VideoLinks,
	}
	if req.Status != nil {
		status := model.ChapterStatus(*req.Status)
		update.Status = &status
	}

	sess, _ := middleware.GetSession(c)
	chapter, err := h.service.Update(c.Context(), sess, c.Params("id"), update)
	if err != nil {
		return handlers.MapServiceError(c, err)
	}
	return response.Success(c, chapter)
}

// QuizResultRequest carries one completed chapter quiz.
type QuizResultRequest struct {
	Score int `json:"score" validate:"min=0"`
	Total int `json:"total" validate:"required,min=1"`
}

// QuizResult records a quiz attempt against a chapter.
// POST /chapters/:id/quiz-result
func (h *ChapterHandler) QuizResult(c *fiber.Ctx) error {
	var req QuizResultRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	sess, _ := middleware.GetSession(c)
	chapter, err := h.service.RecordQuizResult(c.Context(), sess, c.Params("id"), req.Score, req.Total)
	if err != nil {
		return handlers.MapServiceError(c, err)
	}
	return response.Success(c, chapter)
}

// StudyTimeRequest carries minutes to add to the study counter.
type StudyTimeRequest struct {
	Minutes int `json:"minutes" validate:"required,min=1"`
}

// StudyTime bumps the chapter's time-spent counter.
// POST /chapters/:id/study-time
func (h *ChapterHandler) StudyTime(c *fiber.Ctx) error {
	var req StudyTimeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	sess, _ := middleware.GetSession(c)
	chapter, err := h.service.AddStudyTime(c.Context(), sess, c.Params("id"), req.Minutes)
	if err != nil {
		return handlers.MapServiceError(c, err)
	}
	return response.Success(c, chapter)
}

// VideoWatched bumps the chapter's videos-watched counter.
// POST /chapters/:id/video-watched
func (h *ChapterHandler) VideoWatched(c *fiber.Ctx) error {
	sess, _ := middleware.GetSession(c)
	chapter, err := h.service.AddVideoWatched(c.Context(), sess, c.Params("id"))
	if err != nil {
		return handlers.MapServiceError(c, err)
	}
	return response.Success(c, chapter)
}
