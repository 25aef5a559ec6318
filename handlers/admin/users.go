package admin

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

// AdminHandler serves the admin console: user management, audit trail,
// system stats and the config singleton.
type AdminHandler struct {
	service   *services.AdminService
	config    *services.ConfigService
	validator *validation.Validator
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(service *services.AdminService, config *services.ConfigService) *AdminHandler {
	return &AdminHandler{
		service:   service,
		config:    config,
		validator: validation.NewValidator(),
	}
}

// UserView is a user as returned to the admin console, credentials omitted.
type UserView struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	Status   string    `json:"status"`
	JoinedAt time.Time `json:"joined_at"`
}

func toUserView(u *model.User) UserView {
	return UserView{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Role:     u.Role,
		Status:   u.Status,
		JoinedAt: u.JoinedAt,
	}
}

// ListUsers returns every user.
// GET /admin/users
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	sess, _ := middleware.GetSession(c)
	users, err := h.service.ListUsers(c.Context(), sess)
	if err != nil {
		return handlers.MapServiceError(c, err)
	}
	views := make([]UserView, 0, len(users))
	for i := range users {
		views = append(views, toUserView(&users[i]))
	}
	return response.Success(c, views)
}

// CreateUserRequest represents an admin-provisioned user
type CreateUserRequest struct {
	Name         string `json:"name" validate:"required,min=2"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=6"`
	RecoveryHint string `json:"recovery_hint"`
	Role         string `json:"role" validate:"required,oneof=admin student"`
}

// CreateUser provisions a user.
// POST /admin/users
func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	sess, _ := middleware.GetSession(c)
	user, err := h.service.CreateUser(c.Context(), sess, services.UserInput{
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		RecoveryHint: req.RecoveryHint,
		Role:         req.Role,
	})
	if err != nil {
		return handlers.MapServiceError(c, err)
	}
	return response.Created(c, toUserView(user))
}

// UpdateUserRequest names the fields an admin may change on a user.
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6"`
	Status   *string `json:"status" validate:"omitempty,oneof=active blocked"`
}

// UpdateUser applies a partial update to a user.
// PUT /admin/users/:id
func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	sess, _ := middleware.GetSession(c)
	user, err := h.service.UpdateUser(c.Context(), sess, c.Params("id"), services.UserUpdate{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Status:   req.Status,
	})
	if err != nil {
		return handlers.MapServiceError(c, err)
	}
	return response.Success(c, toUserView(user))
}

// DeleteUser removes a user and cascades to their chapters and results.
// DELETE /admin/users/:id
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	sess, _ := middleware.GetSession(c)
	if err := h.service.DeleteUser(c.Context(), sess, c.Params("id")); err != nil {
		return handlers.MapServiceError(c, err)
	}
	return response.SuccessWithMessage(c, "User deleted successfully", fiber.Map{"id": c.Params("id")})
}
