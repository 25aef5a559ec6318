package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/reelflip/jeeprep-api/utils/response"
)

// HandleCheckHealth reports service liveness.
// GET /ping
func HandleCheckHealth(c *fiber.Ctx) error {
	return response.Success(c, fiber.Map{"status": "ok"})
}
