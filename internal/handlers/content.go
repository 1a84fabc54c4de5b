// content.go
//
// Public content routes: the read/write surface used by the site and the
// admin panel. Reads never fail outward; writes are durable once the local
// store has them.

package handlers

import (
	"errors"

	"github.com/anuragch/folio/internal/services"
	"github.com/anuragch/folio/internal/utils"
	"github.com/gofiber/fiber/v2"
)

// ContentHandler handles the content document routes
type ContentHandler struct {
	Service *services.ContentService
}

// GetContent handles GET /api/content
// @Summary Get the site content document
// @Description Returns the current content document, falling back from the mirror through the local store to compiled-in defaults. Never errors.
// @Tags Content
// @Produce json
// @Success 200 {object} models.SiteContent
// @Router /content [get]
func (h *ContentHandler) GetContent(c *fiber.Ctx) error {
	doc := h.Service.Read(c.Context())
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(fiber.StatusOK).Send(doc)
}

// SetContent handles POST /api/content
// @Summary Replace the site content document
// @Description Replaces the whole document. There is no partial-update verb; the body becomes the next snapshot.
// @Tags Content
// @Accept json
// @Produce json
// @Param body body models.SiteContent true "Full content document"
// @Success 200 {object} utils.WriteSuccessStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /content [post]
func (h *ContentHandler) SetContent(c *fiber.Ctx) error {
	if err := h.Service.Write(c.Context(), c.Body()); err != nil {
		if errors.Is(err, services.ErrMalformedDocument) {
			return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "content.validation.input")
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "content.write")
	}

	return c.Status(fiber.StatusOK).JSON(utils.WriteSuccessStruct{Success: true})
}
