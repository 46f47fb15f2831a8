package handlers

import (
	"errors"

	"aquaroom/internal/domain"
	applog "aquaroom/internal/log"
	"aquaroom/internal/repos"
	"aquaroom/internal/services"
	"aquaroom/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AlertHandler struct {
	Alerts *services.AlertService
}

// GET /api/admin/alerts
func (h *AlertHandler) List(c *fiber.Ctx) error {
	p := listParams(c, []string{"created_at", "severity", "type"}, "created_at")
	unreadOnly := c.Query("unread") == "true"
	items, total, err := h.Alerts.List(p, unreadOnly)
	if err != nil {
		applog.Error(c, "admin.alerts.list.fail", err, nil)
		return failErr(c, err)
	}
	if items == nil {
		items = []domain.Alert{}
	}
	return okPage(c, items, p, total)
}

// GET /api/admin/alerts/summary
func (h *AlertHandler) Summary(c *fiber.Ctx) error {
	s, err := h.Alerts.Summary()
	if err != nil {
		applog.Error(c, "admin.alerts.summary.fail", err, nil)
		return failErr(c, err)
	}
	return ok(c, s)
}

// POST /api/admin/alerts/generate
func (h *AlertHandler) Generate(c *fiber.Ctx) error {
	n, err := h.Alerts.Generate()
	if err != nil {
		applog.Error(c, "admin.alerts.generate.fail", err, nil)
		return failErr(c, err)
	}
	applog.Info(c, "admin.alerts.generate", map[string]any{"written": n})
	return ok(c, fiber.Map{"generated": n})
}

// POST /api/admin/alerts/:id/read
func (h *AlertHandler) MarkRead(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid alert id")
	}
	if err := h.Alerts.MarkRead(id); err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			return notFound(c, "alert")
		}
		applog.Error(c, "admin.alerts.read.fail", err, map[string]any{"alert_id": id})
		return failErr(c, err)
	}
	return ok(c, fiber.Map{"id": id, "read": true})
}

// POST /api/admin/alerts/bulk-read
func (h *AlertHandler) BulkRead(c *fiber.Ctx) error {
	n, err := h.Alerts.MarkAllRead()
	if err != nil {
		applog.Error(c, "admin.alerts.bulkread.fail", err, nil)
		return failErr(c, err)
	}
	return ok(c, fiber.Map{"marked": n})
}
