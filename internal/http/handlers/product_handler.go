package handlers

import (
	"database/sql"
	"errors"

	"aquaroom/internal/domain"
	applog "aquaroom/internal/log"
	"aquaroom/internal/pricing"
	"aquaroom/internal/repos"
	"aquaroom/internal/services"
	"aquaroom/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

var productSort = []string{"created_at", "name", "price", "stock"}

// GET /api/admin/products
func (h *ProductHandler) List(c *fiber.Ctx) error {
	p := listParams(c, productSort, "created_at")
	categoryID := c.Query("category")
	items, total, err := h.Catalog.ListProducts(p, categoryID)
	if err != nil {
		applog.Error(c, "admin.products.list.fail", err, nil)
		return failErr(c, err)
	}
	if items == nil {
		items = []domain.Product{}
	}
	return okPage(c, items, p, total)
}

// GET /api/admin/products/:id
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid product id")
	}
	p, err := h.Catalog.GetProduct(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return notFound(c, "product")
		}
		applog.Error(c, "admin.products.get.fail", err, map[string]any{"product_id": id})
		return failErr(c, err)
	}
	return ok(c, p)
}

// POST /api/admin/products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var p domain.Product
	if err := c.BodyParser(&p); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid JSON body")
	}
	created, err := h.Catalog.CreateProduct(p)
	if err != nil {
		applog.Error(c, "admin.products.create.fail", err, nil)
		return failErr(c, err)
	}
	applog.Audit(c, "admin.products.create", map[string]any{"product_id": created.ID})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": created})
}

// PUT /api/admin/products/:id
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid product id")
	}
	var p domain.Product
	if err := c.BodyParser(&p); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid JSON body")
	}
	p.ID = id
	if err := h.Catalog.UpdateProduct(p); err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			return notFound(c, "product")
		}
		applog.Error(c, "admin.products.update.fail", err, map[string]any{"product_id": id})
		return failErr(c, err)
	}
	applog.Audit(c, "admin.products.update", map[string]any{"product_id": id})
	updated, err := h.Catalog.GetProduct(id)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, updated)
}

// POST /api/admin/products/:id/status
func (h *ProductHandler) SetStatus(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid product id")
	}
	var body struct {
		Active bool `json:"active"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid JSON body")
	}
	if err := h.Catalog.SetProductActive(id, body.Active); err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			return notFound(c, "product")
		}
		applog.Error(c, "admin.products.status.fail", err, map[string]any{"product_id": id})
		return failErr(c, err)
	}
	applog.Audit(c, "admin.products.status", map[string]any{"product_id": id, "active": body.Active})
	return ok(c, fiber.Map{"id": id, "active": body.Active})
}

// DELETE /api/admin/products/:id
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid product id")
	}
	if err := h.Catalog.DeleteProduct(id); err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			return notFound(c, "product")
		}
		applog.Error(c, "admin.products.delete.fail", err, map[string]any{"product_id": id})
		return failErr(c, err)
	}
	applog.Audit(c, "admin.products.delete", map[string]any{"product_id": id})
	return ok(c, fiber.Map{"id": id})
}

// POST /api/admin/products/shipping-preview
// Feeds the admin form's live fee preview, e.g. qty=10 against a tiered
// base 80 / threshold 4 / extra 10 config answers 140.
func (h *ProductHandler) ShippingPreview(c *fiber.Ctx) error {
	var body struct {
		ProductID string   `json:"productId"`
		Quantity  int      `json:"quantity"`
		Zone      string   `json:"zone"`
		Subtotal  *float64 `json:"subtotal"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid JSON body")
	}
	zone, okZone := validate.Zone(body.Zone)
	if !okZone {
		return fail(c, fiber.StatusBadRequest, "zone must be bangkok, provinces or remote")
	}
	fee, err := h.Catalog.PreviewShippingFee(body.ProductID, body.Quantity, pricing.Zone(zone), body.Subtotal)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return notFound(c, "product")
		}
		return failErr(c, err)
	}
	return ok(c, fiber.Map{"fee": fee})
}
