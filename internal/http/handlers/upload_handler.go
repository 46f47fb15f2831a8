package handlers

import (
	applog "aquaroom/internal/log"
	"aquaroom/internal/services"

	"github.com/gofiber/fiber/v2"
)

type UploadHandler struct {
	Uploads *services.UploadService
}

// POST /api/upload accepts one or more files under the "files" field and
// returns their public URLs.
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "expected multipart form")
	}
	fhs := form.File["files"]
	if len(fhs) == 0 {
		fhs = form.File["file"]
	}
	if len(fhs) == 0 {
		return fail(c, fiber.StatusBadRequest, "no files in request")
	}
	urls, err := h.Uploads.SaveAll(fhs)
	if err != nil {
		applog.Error(c, "upload.fail", err, map[string]any{"count": len(fhs)})
		return failErr(c, err)
	}
	applog.Audit(c, "upload.ok", map[string]any{"count": len(urls)})
	// Upload clients read urls at the top level, not under data.
	return c.JSON(fiber.Map{"success": true, "urls": urls})
}
