package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"aquaroom/internal/pricing"
	"aquaroom/internal/repos"
	"aquaroom/internal/validate"
)

// Every JSON endpoint answers with the same envelope:
// success + data (+ pagination) on the happy path,
// success=false + message (+ field) otherwise.

type pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

func ok(c *fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{"success": true, "data": data})
}

func okPage(c *fiber.Ctx, data any, p repos.ListParams, total int) error {
	limit := p.Limit
	if limit < 1 {
		limit = 20
	}
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
		"pagination": pagination{
			Page: p.Page, Limit: limit, Total: total, TotalPages: pages,
		},
	})
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "message": message})
}

// failErr maps service errors onto HTTP statuses: validation errors carry
// their field at 400, not-found sentinels become 404, anything else is a
// generic 500 (the caller is expected to have logged the cause).
func failErr(c *fiber.Ctx, err error) error {
	var ve *pricing.ValidationError
	if errors.As(err, &ve) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": ve.Msg, "field": ve.Field,
		})
	}
	return fail(c, fiber.StatusInternalServerError, "something went wrong")
}

func notFound(c *fiber.Ctx, what string) error {
	return fail(c, fiber.StatusNotFound, what+" not found")
}

// listParams reads the shared list-query knobs. Sort keys are whitelisted
// per resource via allowedSort before touching SQL.
func listParams(c *fiber.Ctx, allowedSort []string, fallback string) repos.ListParams {
	sortBy := c.Query("sortBy")
	if sortBy == "" {
		sortBy = c.Query("sort")
	}
	order := c.Query("sortOrder")
	if order == "" {
		order = c.Query("order")
	}
	return repos.ListParams{
		Page:   validate.Page(c.Query("page")),
		Limit:  validate.Limit(c.Query("limit")),
		Search: validate.Search(c.Query("search")),
		SortBy: validate.SortColumn(sortBy, allowedSort, fallback),
		Order:  validate.SortOrder(order),
	}
}
