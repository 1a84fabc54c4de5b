// admin.go
//
// Operator routes: mirror visibility and the explicit sync action. The
// password gate lives in the client; these routes carry no server-side auth.

package handlers

import (
	"errors"

	"github.com/anuragch/folio/internal/config"
	"github.com/anuragch/folio/internal/services"
	"github.com/anuragch/folio/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AdminHandler handles diagnostic and repair routes
type AdminHandler struct {
	Service *services.ContentService
	Config  *config.Config
	DB      *gorm.DB
}

// MirrorStatus handles GET /api/admin/mirror-status
// @Summary Report mirror configuration
// @Description Reports whether the remote mirror is configured, with a truncated non-secret endpoint hint for display.
// @Tags Admin
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /admin/mirror-status [get]
func (h *AdminHandler) MirrorStatus(c *fiber.Ctx) error {
	status := h.Service.MirrorStatus()

	var hint interface{}
	if status.EndpointHint != "" {
		hint = status.EndpointHint
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"configured": status.Configured,
		"url":        hint,
	})
}

// SyncToMirror handles POST /api/admin/sync-to-mirror
// @Summary Push local content to the mirror
// @Description Reads the local store document and force-upserts it to the mirror. Failures are surfaced, unlike the normal write path.
// @Tags Admin
// @Produce json
// @Success 200 {object} utils.SyncSuccessStruct
// @Failure 400 {object} utils.AdminErrorStruct
// @Failure 500 {object} utils.AdminErrorStruct
// @Router /admin/sync-to-mirror [post]
func (h *AdminHandler) SyncToMirror(c *fiber.Ctx) error {
	if err := h.Service.SyncToMirror(c.Context()); err != nil {
		if errors.Is(err, services.ErrMirrorNotConfigured) {
			return c.Status(fiber.StatusBadRequest).JSON(utils.AdminErrorStruct{
				Error: "Mirror not configured. Add MIRROR_URL and MIRROR_PASSWORD to your environment variables.",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(utils.AdminErrorStruct{
			Error: err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(utils.SyncSuccessStruct{
		Success: true,
		Message: "Content successfully pushed to mirror",
	})
}

// Health handles GET /api/health
// @Summary Service health
// @Description Reports local store and mirror reachability
// @Tags Admin
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /health [get]
func (h *AdminHandler) Health(c *fiber.Ctx) error {
	result := services.HealthCheck(h.Config, h.DB)

	status := fiber.StatusOK
	if result.Status != "healthy" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(result)
}
