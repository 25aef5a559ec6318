package mocktest

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/reelflip/jeeprep-api/handlers"
	"github.com/reelflip/jeeprep-api/model"
	"github.com/reelflip/jeeprep-api/services"
	"github.com/reelflip/jeeprep-api/utils/middleware"
	"github.com/reelflip/jeeprep-api/utils/response"
	"github.com/reelflip/jeeprep-api/utils/validation"
)

// MockTestHandler serves mock test results and the master mock catalog,
// including the exam runner's submit endpoint.
type MockTestHandler struct {
	service   *services.MockTestService
	validator *validation.Validator
}

// NewMockTestHandler creates a new mock test handler
func NewMockTestHandler(service *services.MockTestService) *MockTestHandler {
	return &MockTestHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// List returns the session user's own results, newest first.
// GET /mock-tests
func (h *MockTestHandler) List(c *fiber.Ctx) error {
	sess, _ := middleware.GetSession(c)
	results, err := h.service.List(c.Context(), sess)
	if err != nil {
		return handlers.MapServiceError(c, err)
	}
	return response.Success(c, results)
}

// CreateResultRequest carries a manually entered offline result.
type CreateResultRequest struct {
	Name          string         `json:"name" validate:"required"`
	Score         int            `json:"score"`
	Total         int            `json:"total" validate:"required,min=1"`
	SubjectScores map[string]int `json:"subject_scores"`
	TimeTakenSec  int            `json:"time_taken_sec" validate:"min=0"`
}

// Create records an offline result for the session user.
// POST /mock-tests
func (h *MockTestHandler) Create(c *fiber.Ctx) error {
	var req CreateResultRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	sess, _ := middleware.GetSession(c)
	result, err := h.service.Create(c.Context(), sess, services.ResultInput{
		Name:          req.Name,
		Score:         req.Score,
		Total:         req.Total,
		SubjectScores: req.SubjectScores,
		TimeTakenSec:  req.TimeTakenSec,
	})
	if err != nil {
		return handlers.MapServiceError(c, err)
	}
	return response.Created(c, result)
}

// Delete removes a result by id.
// DELETE /mock-tests/:id
func (h *MockTestHandler) Delete(c *fiber.Ctx) error {
	sess, _ := middleware.GetSession(c)
	if err := h.service.Delete(c.Context(), sess, c.Params("id")); err != nil {
		return handlers.MapServiceError(c, err)
	}
	return response.SuccessWithMessage(c, "Result deleted successfully", fiber.Map{"id": c.Params("id")})
}

// ListMasters returns the published master mocks.
// GET /mock-tests/masters
func (h *MockTestHandler) ListMasters(c *fiber.Ctx) error {
	sess, _ := middleware.GetSession(c)
	mocks, err := h.service.ListMasterMocks(c.Context(), sess)
	if err != nil {
		return handlers.MapServiceError(c, err)
	}
	return response.Success(c, mocks)
}

// CreateMasterRequest carries a new master mock definition.
type CreateMasterRequest struct {
	Name        string   `json:"name" validate:"required"`
	QuestionIDs []string `json:"question_ids" validate:"required,min=1"`
	DurationMin int      `json:"duration_min" validate:"required,min=1"`
	TotalMarks  int      `json:"total_marks" validate:"min=0"`
}

// CreateMaster publishes a master mock.
// POST /mock-tests/masters
func (h *MockTestHandler) CreateMaster(c *fiber.Ctx) error {
	var req CreateMasterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	sess, _ := middleware.GetSession(c)
	mock, err := h.service.CreateMasterMock(c.Context(), sess, services.MasterMockInput{
		Name:        req.Name,
		QuestionIDs: req.QuestionIDs,
		DurationMin: req.DurationMin,
		TotalMarks:  req.TotalMarks,
	})
	if err != nil {
		return handlers.MapServiceError(c, err)
	}
	return response.Created(c, mock)
}

// SubmitRequest carries one completed exam session. Answers map question ids
// to chosen option indexes; unanswered questions are simply absent.
type SubmitRequest struct {
	Answers   map[string]int `json:"answers"`
	StartedAt time.Time      `json:"started_at" validate:"required"`
}

// SubmitResponse is the stored result plus the per-subject breakdown.
type SubmitResponse struct {
	Result *model.MockTestResult `json:"result"`
	Score  *services.ExamScore   `json:"score"`
}

// Submit scores a master mock session and stores the result.
// POST /mock-tests/masters/:id/submit
func (h *MockTestHandler) Submit(c *fiber.Ctx) error {
	var req SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}
	if req.Answers == nil {
		req.Answers = map[string]int{}
	}

	sess, _ := middleware.GetSession(c)
	result, score, err := h.service.Submit(c.Context(), sess, c.Params("id"), req.Answers, req.StartedAt)
	if err != nil {
		return handlers.MapServiceError(c, err)
	}
	return response.Created(c, SubmitResponse{Result: result, Score: score})
}
