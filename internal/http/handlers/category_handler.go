package handlers

import (
	"database/sql"
	"errors"

	"aquaroom/internal/domain"
	applog "aquaroom/internal/log"
	"aquaroom/internal/repos"
	"aquaroom/internal/services"
	"aquaroom/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
}

// GET /api/admin/categories
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories()
	if err != nil {
		applog.Error(c, "admin.categories.list.fail", err, nil)
		return failErr(c, err)
	}
	if cats == nil {
		cats = []domain.Category{}
	}
	return ok(c, cats)
}

// POST /api/admin/categories
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var cat domain.Category
	if err := c.BodyParser(&cat); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid JSON body")
	}
	created, err := h.Catalog.CreateCategory(cat)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateName) {
			return fail(c, fiber.StatusConflict, "category name already in use")
		}
		applog.Error(c, "admin.categories.create.fail", err, nil)
		return failErr(c, err)
	}
	applog.Audit(c, "admin.categories.create", map[string]any{"category_id": created.ID})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": created})
}

// PUT /api/admin/categories/:id
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid category id")
	}
	var cat domain.Category
	if err := c.BodyParser(&cat); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid JSON body")
	}
	cat.ID = id
	if err := h.Catalog.UpdateCategory(cat); err != nil {
		if errors.Is(err, repos.ErrNotFound) || errors.Is(err, sql.ErrNoRows) {
			return notFound(c, "category")
		}
		if errors.Is(err, services.ErrDuplicateName) {
			return fail(c, fiber.StatusConflict, "category name already in use")
		}
		applog.Error(c, "admin.categories.update.fail", err, map[string]any{"category_id": id})
		return failErr(c, err)
	}
	applog.Audit(c, "admin.categories.update", map[string]any{"category_id": id})
	return ok(c, cat)
}

// DELETE /api/admin/categories/:id
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid category id")
	}
	if err := h.Catalog.DeleteCategory(id); err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			return notFound(c, "category")
		}
		// Foreign key RESTRICT: category still has products.
		applog.Error(c, "admin.categories.delete.fail", err, map[string]any{"category_id": id})
		return fail(c, fiber.StatusConflict, "category is not empty or could not be deleted")
	}
	applog.Audit(c, "admin.categories.delete", map[string]any{"category_id": id})
	return ok(c, fiber.Map{"id": id})
}
