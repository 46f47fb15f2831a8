package handlers

import (
	"encoding/json"

	"aquaroom/internal/domain"
	applog "aquaroom/internal/log"
	"aquaroom/internal/services"
	"aquaroom/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type SettingsHandler struct {
	Settings *services.SettingsService
	Uploads  *services.UploadService
}

// Setting returns a GET handler for one settings key.
func (h *SettingsHandler) Setting(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		v, err := h.Settings.Get(key)
		if err != nil {
			applog.Error(c, "admin.settings.get.fail", err, map[string]any{"key": key})
			return failErr(c, err)
		}
		return ok(c, v)
	}
}

// UpdateSetting returns a PUT handler for one settings key; the body is
// stored verbatim as the new JSON blob.
func (h *SettingsHandler) UpdateSetting(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		body := c.Body()
		if err := h.Settings.Set(key, json.RawMessage(body)); err != nil {
			applog.Error(c, "admin.settings.set.fail", err, map[string]any{"key": key})
			return failErr(c, err)
		}
		applog.Audit(c, "admin.settings.set", map[string]any{"key": key})
		return ok(c, json.RawMessage(body))
	}
}

// GET /api/admin/payment-settings
func (h *SettingsHandler) PaymentMethods(c *fiber.Ctx) error {
	methods, err := h.Settings.PaymentMethods()
	if err != nil {
		applog.Error(c, "admin.payments.list.fail", err, nil)
		return failErr(c, err)
	}
	if methods == nil {
		methods = []domain.PaymentMethod{}
	}
	return ok(c, methods)
}

// PUT /api/admin/payment-settings
func (h *SettingsHandler) SavePaymentMethods(c *fiber.Ctx) error {
	var methods []domain.PaymentMethod
	if err := c.BodyParser(&methods); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid JSON body")
	}
	if err := h.Settings.SavePaymentMethods(methods); err != nil {
		applog.Error(c, "admin.payments.save.fail", err, nil)
		return failErr(c, err)
	}
	applog.Audit(c, "admin.payments.save", map[string]any{"count": len(methods)})
	return h.PaymentMethods(c)
}

// POST /api/admin/payment-settings/upload-bank-icon
func (h *SettingsHandler) UploadBankIcon(c *fiber.Ctx) error {
	id, okID := validate.ID(c.FormValue("methodId"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid methodId")
	}
	fh, err := c.FormFile("icon")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "missing icon file")
	}
	url, err := h.Uploads.Save(fh)
	if err != nil {
		applog.Error(c, "admin.payments.icon.fail", err, map[string]any{"method_id": id})
		return failErr(c, err)
	}
	if err := h.Settings.SetPaymentIcon(id, url); err != nil {
		applog.Error(c, "admin.payments.icon.fail", err, map[string]any{"method_id": id})
		return failErr(c, err)
	}
	applog.Audit(c, "admin.payments.icon", map[string]any{"method_id": id, "url": url})
	return ok(c, fiber.Map{"id": id, "iconUrl": url})
}
