package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/reelflip/jeeprep-api/handlers"
	"github.com/reelflip/jeeprep-api/model"
	"github.com/reelflip/jeeprep-api/services"
	authutil "github.com/reelflip/jeeprep-api/utils/auth"
	"github.com/reelflip/jeeprep-api/utils/middleware"
	"github.com/reelflip/jeeprep-api/utils/response"
	"github.com/reelflip/jeeprep-api/utils/validation"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	service    *services.AuthService
	jwtManager *authutil.JWTManager
	validator  *validation.Validator
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service *services.AuthService, jwtManager *authutil.JWTManager) *AuthHandler {
	return &AuthHandler{
		service:    service,
		jwtManager: jwtManager,
		validator:  validation.NewValidator(),
	}
}

// UserResponse represents user data in responses
type UserResponse struct {
	ID       string    `json:"id"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	Role     string    `json:"role"`
	Status   string    `json:"status"`
	JoinedAt time.Time `json:"joined_at"`
}

// SessionResponse is a user plus their session token.
type SessionResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"access_token"`
	ExpiresIn   int          `json:"expires_in"` // in seconds
}

func toUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Email:    u.Email,
		Name:     u.Name,
		Role:     u.Role,
		Status:   u.Status,
		JoinedAt: u.JoinedAt,
	}
}

func (h *AuthHandler) sessionResponse(c *fiber.Ctx, user *model.User, created bool) error {
	token, err := h.jwtManager.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate access token")
	}
	res := SessionResponse{
		User:        toUserResponse(user),
		AccessToken: token,
		ExpiresIn:   24 * 60 * 60, // 24 hours in seconds
	}
	if created {
		return response.Created(c, res)
	}
	return response.Success(c, res)
}

// LoginRequest represents a user login request
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles user login
// POST /auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	user, err := h.service.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return handlers.MapServiceError(c, err)
	}
	return h.sessionResponse(c, user, false)
}

// RegisterRequest represents a user registration request
type RegisterRequest struct {
	Name         string `json:"name" validate:"required,min=2"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=6"`
	RecoveryHint string `json:"recovery_hint" validate:"required"`
}

// Register handles user registration
// POST /auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	user, err := h.service.Register(c.Context(), req.Name, req.Email, req.Password, req.RecoveryHint)
	if err != nil {
		return handlers.MapServiceError(c, err)
	}
	return h.sessionResponse(c, user, true)
}

// RecoverRequest represents a password recovery request
type RecoverRequest struct {
	Email        string `json:"email" validate:"required,email"`
	RecoveryHint string `json:"recovery_hint" validate:"required"`
	NewPassword  string `json:"new_password" validate:"required,min=6"`
}

// Recover overwrites a password when email and recovery hint match.
// POST /auth/recover
func (h *AuthHandler) Recover(c *fiber.Ctx) error {
	var req RecoverRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	if err := h.service.Recover(c.Context(), req.Email, req.RecoveryHint, req.NewPassword); err != nil {
		return handlers.MapServiceError(c, err)
	}
	return response.SuccessWithMessage(c, "Password updated successfully", nil)
}

// Me returns the authenticated user.
// GET /auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "")
	}
	return response.Success(c, toUserResponse(user))
}
