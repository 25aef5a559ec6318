package admin

import (
	"github.com/gofiber/fiber/v2"
	"github.com/reelflip/jeeprep-api/handlers"
	"github.com/reelflip/jeeprep-api/services"
	"github.com/reelflip/jeeprep-api/utils/middleware"
	"github.com/reelflip/jeeprep-api/utils/response"
)

// Logs returns the audit trail, newest first.
// GET /admin/logs
func (h *AdminHandler) Logs(c *fiber.Ctx) error {
	sess, _ := middleware.GetSession(c)
	logs, err := h.service.Logs(c.Context(), sess)
	if err != nil {
		return handlers.MapServiceError(c, err)
	}
	return response.Success(c, logs)
}

// Stats returns the on-demand system statistics.
// GET /admin/stats
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	sess, _ := middleware.GetSession(c)
	stats, err := h.service.Stats(c.Context(), sess)
	if err != nil {
		return handlers.MapServiceError(c, err)
	}
	return response.Success(c, stats)
}

// GetConfig returns the system config singleton.
// GET /admin/config
func (h *AdminHandler) GetConfig(c *fiber.Ctx) error {
	sess, _ := middleware.GetSession(c)
	cfg, err := h.config.Get(c.Context(), sess)
	if err != nil {
		return handlers.MapServiceError(c, err)
	}
	return response.Success(c, cfg)
}

// UpdateConfigRequest names the mutable config fields.
type UpdateConfigRequest struct {
	ActiveModel *string `json:"active_model"`
}

// UpdateConfig merge-writes the config singleton.
// PUT /admin/config
func (h *AdminHandler) UpdateConfig(c *fiber.Ctx) error {
	var req UpdateConfigRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	sess, _ := middleware.GetSession(c)
	cfg, err := h.config.Set(c.Context(), sess, services.ConfigUpdate{
		ActiveModel: req.ActiveModel,
	})
	if err != nil {
		return handlers.MapServiceError(c, err)
	}
	return response.SuccessWithMessage(c, "Config updated successfully", cfg)
}
