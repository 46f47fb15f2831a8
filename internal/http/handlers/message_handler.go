package handlers

import (
	"errors"

	"aquaroom/internal/domain"
	applog "aquaroom/internal/log"
	"aquaroom/internal/repos"
	"aquaroom/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type MessageHandler struct {
	Messages *repos.MessageRepo
}

// GET /api/admin/contact-messages
func (h *MessageHandler) List(c *fiber.Ctx) error {
	p := listParams(c, []string{"created_at", "name", "email"}, "created_at")
	items, total, err := h.Messages.List(p)
	if err != nil {
		applog.Error(c, "admin.messages.list.fail", err, nil)
		return failErr(c, err)
	}
	if items == nil {
		items = []domain.ContactMessage{}
	}
	return okPage(c, items, p, total)
}

// POST /api/admin/contact-messages/:id/read
func (h *MessageHandler) MarkRead(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid message id")
	}
	if err := h.Messages.MarkRead(id); err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			return notFound(c, "message")
		}
		applog.Error(c, "admin.messages.read.fail", err, map[string]any{"message_id": id})
		return failErr(c, err)
	}
	return ok(c, fiber.Map{"id": id, "read": true})
}

// DELETE /api/admin/contact-messages/:id
func (h *MessageHandler) Delete(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid message id")
	}
	if err := h.Messages.Delete(id); err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			return notFound(c, "message")
		}
		applog.Error(c, "admin.messages.delete.fail", err, map[string]any{"message_id": id})
		return failErr(c, err)
	}
	applog.Audit(c, "admin.messages.delete", map[string]any{"message_id": id})
	return ok(c, fiber.Map{"id": id})
}
