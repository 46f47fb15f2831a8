package handlers

import (
	"errors"

	"aquaroom/internal/domain"
	applog "aquaroom/internal/log"
	"aquaroom/internal/services"
	"aquaroom/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	Orders *services.OrderService
}

var orderSort = []string{"created_at", "total", "status", "customer_name"}

// GET /api/admin/orders
func (h *OrderHandler) List(c *fiber.Ctx) error {
	p := listParams(c, orderSort, "created_at")
	status := ""
	if s, okStatus := validate.OrderStatus(c.Query("status")); okStatus {
		status = s
	}
	items, total, err := h.Orders.List(p, status)
	if err != nil {
		applog.Error(c, "admin.orders.list.fail", err, nil)
		return failErr(c, err)
	}
	if items == nil {
		items = []domain.Order{}
	}
	return okPage(c, items, p, total)
}

// GET /api/admin/orders/:id
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid order id")
	}
	o, items, err := h.Orders.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			return notFound(c, "order")
		}
		applog.Error(c, "admin.orders.get.fail", err, map[string]any{"order_id": id})
		return failErr(c, err)
	}
	return ok(c, fiber.Map{"order": o, "items": items})
}

// POST /api/admin/orders/:id/status
func (h *OrderHandler) SetStatus(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid order id")
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid JSON body")
	}
	status, okStatus := validate.OrderStatus(body.Status)
	if !okStatus {
		return fail(c, fiber.StatusBadRequest, "invalid order status")
	}
	if err := h.Orders.UpdateStatus(id, status); err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			return notFound(c, "order")
		}
		applog.Error(c, "admin.orders.status.fail", err, map[string]any{"order_id": id})
		return failErr(c, err)
	}
	applog.Audit(c, "admin.orders.status", map[string]any{"order_id": id, "status": status})
	return ok(c, fiber.Map{"id": id, "status": status})
}

// GET /api/admin/orders/export
func (h *OrderHandler) Export(c *fiber.Ctx) error {
	data, err := h.Orders.ExportCSV()
	if err != nil {
		applog.Error(c, "admin.orders.export.fail", err, nil)
		return failErr(c, err)
	}
	applog.Audit(c, "admin.orders.export", map[string]any{"bytes": len(data)})
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="orders.csv"`)
	return c.Send(data)
}
