package handlers

import (
	"errors"

	"aquaroom/internal/domain"
	applog "aquaroom/internal/log"
	"aquaroom/internal/services"
	"aquaroom/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CouponHandler struct {
	Coupons *services.CouponService
}

var couponSort = []string{"created_at", "code", "name", "end_date", "usage_count"}

// GET /api/admin/coupons
func (h *CouponHandler) List(c *fiber.Ctx) error {
	p := listParams(c, couponSort, "created_at")
	items, total, err := h.Coupons.List(p)
	if err != nil {
		applog.Error(c, "admin.coupons.list.fail", err, nil)
		return failErr(c, err)
	}
	if items == nil {
		items = []services.CouponView{}
	}
	return okPage(c, items, p, total)
}

// GET /api/admin/coupons/stats
func (h *CouponHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.Coupons.Stats()
	if err != nil {
		applog.Error(c, "admin.coupons.stats.fail", err, nil)
		return failErr(c, err)
	}
	return ok(c, stats)
}

// GET /api/admin/coupons/:id
func (h *CouponHandler) Get(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid coupon id")
	}
	v, err := h.Coupons.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrCouponNotFound) {
			return notFound(c, "coupon")
		}
		applog.Error(c, "admin.coupons.get.fail", err, map[string]any{"coupon_id": id})
		return failErr(c, err)
	}
	return ok(c, v)
}

// POST /api/admin/coupons
func (h *CouponHandler) Create(c *fiber.Ctx) error {
	var in domain.Coupon
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid JSON body")
	}
	v, err := h.Coupons.Create(in)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateCode) {
			return fail(c, fiber.StatusConflict, "coupon code already exists")
		}
		applog.Error(c, "admin.coupons.create.fail", err, nil)
		return failErr(c, err)
	}
	applog.Audit(c, "admin.coupons.create", map[string]any{"coupon_id": v.ID, "code": v.Code})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": v})
}

// PUT /api/admin/coupons/:id
func (h *CouponHandler) Update(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid coupon id")
	}
	var in domain.Coupon
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid JSON body")
	}
	in.ID = id
	v, err := h.Coupons.Update(in)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCouponNotFound):
			return notFound(c, "coupon")
		case errors.Is(err, services.ErrDuplicateCode):
			return fail(c, fiber.StatusConflict, "coupon code already exists")
		}
		applog.Error(c, "admin.coupons.update.fail", err, map[string]any{"coupon_id": id})
		return failErr(c, err)
	}
	applog.Audit(c, "admin.coupons.update", map[string]any{"coupon_id": id})
	return ok(c, v)
}

// POST /api/admin/coupons/:id/status
func (h *CouponHandler) SetStatus(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid coupon id")
	}
	var body struct {
		Active bool `json:"active"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid JSON body")
	}
	if err := h.Coupons.SetActive(id, body.Active); err != nil {
		if errors.Is(err, services.ErrCouponNotFound) {
			return notFound(c, "coupon")
		}
		applog.Error(c, "admin.coupons.status.fail", err, map[string]any{"coupon_id": id})
		return failErr(c, err)
	}
	applog.Audit(c, "admin.coupons.status", map[string]any{"coupon_id": id, "active": body.Active})
	return ok(c, fiber.Map{"id": id, "active": body.Active})
}

// DELETE /api/admin/coupons/:id
func (h *CouponHandler) Delete(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid coupon id")
	}
	if err := h.Coupons.Delete(id); err != nil {
		if errors.Is(err, services.ErrCouponNotFound) {
			return notFound(c, "coupon")
		}
		applog.Error(c, "admin.coupons.delete.fail", err, map[string]any{"coupon_id": id})
		return failErr(c, err)
	}
	applog.Audit(c, "admin.coupons.delete", map[string]any{"coupon_id": id})
	return ok(c, fiber.Map{"id": id})
}

// POST /api/admin/coupons/validate
// Dry-run evaluation: answers whether a code would apply to an order
// context and what it would take off, without consuming a use.
func (h *CouponHandler) Validate(c *fiber.Ctx) error {
	var body struct {
		Code         string  `json:"code"`
		Subtotal     float64 `json:"subtotal"`
		ItemQuantity int     `json:"itemQuantity"`
		UserUsage    int     `json:"userUsage"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid JSON body")
	}
	ev, err := h.Coupons.Preview(body.Code, body.Subtotal, body.ItemQuantity, body.UserUsage)
	if err != nil {
		if errors.Is(err, services.ErrCouponNotFound) {
			return notFound(c, "coupon")
		}
		applog.Error(c, "admin.coupons.validate.fail", err, map[string]any{"code": body.Code})
		return failErr(c, err)
	}
	return ok(c, fiber.Map{
		"status":        ev.Status,
		"statusDisplay": ev.Status.Display(),
		"eligible":      ev.Eligible,
		"discount":      ev.Discount,
	})
}
