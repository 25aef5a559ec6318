package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/reelflip/jeeprep-api/database"
	"github.com/reelflip/jeeprep-api/model"
	"github.com/reelflip/jeeprep-api/services"
	"github.com/reelflip/jeeprep-api/utils/auth"
	"github.com/reelflip/jeeprep-api/utils/response"
)

// AuthMiddleware resolves a bearer token into a services.Session. The user is
// re-read from the store on every request so a block takes effect on the very
// next call, not at token expiry.
type AuthMiddleware struct {
	jwtManager *auth.JWTManager
	store      *database.Store
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(jwtManager *auth.JWTManager, store *database.Store) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		store:      store,
	}
}

// Required is middleware that requires a valid session token.
func (m *AuthMiddleware) Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := m.resolve(c)
		if err != nil {
			return err
		}

		c.Locals("session", services.Session{
			UserID: user.ID,
			Email:  user.Email,
			Role:   user.Role,
		})
		c.Locals("user", user)

		return c.Next()
	}
}

// RequireAdmin requires a valid session token belonging to an admin.
func (m *AuthMiddleware) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := m.resolve(c)
		if err != nil {
			return err
		}
		if user.Role != model.RoleAdmin {
			return response.Forbidden(c, "Admin access required")
		}

		c.Locals("session", services.Session{
			UserID: user.ID,
			Email:  user.Email,
			Role:   user.Role,
		})
		c.Locals("user", user)

		return c.Next()
	}
}

func (m *AuthMiddleware) resolve(c *fiber.Ctx) (*model.User, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, response.Unauthorized(c, "Missing authorization token")
	}

	// Extract token from "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, response.Unauthorized(c, "Invalid authorization format")
	}

	claims, err := m.jwtManager.ValidateToken(parts[1])
	if err != nil {
		if err == auth.ErrExpiredToken {
			return nil, response.Unauthorized(c, "Token has expired")
		}
		return nil, response.Unauthorized(c, "Invalid token")
	}

	doc, err := m.store.Load(c.Context())
	if err != nil {
		return nil, response.InternalServerError(c, "Failed to load user")
	}
	user := doc.UserByID(claims.UserID)
	if user == nil {
		return nil, response.Unauthorized(c, "User not found")
	}
	if user.IsBlocked() {
		return nil, response.Forbidden(c, "Account is blocked")
	}

	cp := *user
	return &cp, nil
}

// GetSession extracts the session from context.
func GetSession(c *fiber.Ctx) (services.Session, bool) {
	sess := c.Locals("session")
	if sess == nil {
		return services.Session{}, false
	}
	s, ok := sess.(services.Session)
	return s, ok
}

// GetUser extracts the full user object from context.
func GetUser(c *fiber.Ctx) (*model.User, bool) {
	user := c.Locals("user")
	if user == nil {
		return nil, false
	}
	u, ok := user.(*model.User)
	return u, ok
}
