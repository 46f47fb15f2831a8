package handlers

import (
	"errors"

	"aquaroom/internal/domain"
	applog "aquaroom/internal/log"
	"aquaroom/internal/services"
	"aquaroom/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CustomerHandler struct {
	Customers *services.CustomerService
}

var customerSort = []string{"created_at", "name", "email"}

// GET /api/admin/customers
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	p := listParams(c, customerSort, "created_at")
	items, total, err := h.Customers.List(p)
	if err != nil {
		applog.Error(c, "admin.customers.list.fail", err, nil)
		return failErr(c, err)
	}
	if items == nil {
		items = []domain.Customer{}
	}
	return okPage(c, items, p, total)
}

// GET /api/admin/customers/:id
func (h *CustomerHandler) Get(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid customer id")
	}
	d, err := h.Customers.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrCustomerNotFound) {
			return notFound(c, "customer")
		}
		applog.Error(c, "admin.customers.get.fail", err, map[string]any{"customer_id": id})
		return failErr(c, err)
	}
	return ok(c, d)
}

// POST /api/admin/customers/:id/status
func (h *CustomerHandler) SetStatus(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid customer id")
	}
	var body struct {
		Active bool `json:"active"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid JSON body")
	}
	if err := h.Customers.SetActive(id, body.Active); err != nil {
		if errors.Is(err, services.ErrCustomerNotFound) {
			return notFound(c, "customer")
		}
		applog.Error(c, "admin.customers.status.fail", err, map[string]any{"customer_id": id})
		return failErr(c, err)
	}
	applog.Audit(c, "admin.customers.status", map[string]any{"customer_id": id, "active": body.Active})
	return ok(c, fiber.Map{"id": id, "active": body.Active})
}
