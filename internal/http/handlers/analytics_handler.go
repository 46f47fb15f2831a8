package handlers

import (
	applog "aquaroom/internal/log"
	"aquaroom/internal/services"

	"github.com/gofiber/fiber/v2"
)

type AnalyticsHandler struct {
	Analytics *services.AnalyticsService
}

// GET /api/admin/analytics/overview
func (h *AnalyticsHandler) Overview(c *fiber.Ctx) error {
	o, err := h.Analytics.Overview()
	if err != nil {
		applog.Error(c, "admin.analytics.overview.fail", err, nil)
		return failErr(c, err)
	}
	return ok(c, o)
}

// GET /api/admin/analytics/sales-chart?days=30
func (h *AnalyticsHandler) SalesChart(c *fiber.Ctx) error {
	points, err := h.Analytics.SalesChart(c.QueryInt("days", 30))
	if err != nil {
		applog.Error(c, "admin.analytics.sales.fail", err, nil)
		return failErr(c, err)
	}
	if points == nil {
		points = []services.SalesPoint{}
	}
	return ok(c, points)
}

// GET /api/admin/analytics/top-products?limit=10
func (h *AnalyticsHandler) TopProducts(c *fiber.Ctx) error {
	top, err := h.Analytics.TopProducts(c.QueryInt("limit", 10))
	if err != nil {
		applog.Error(c, "admin.analytics.top.fail", err, nil)
		return failErr(c, err)
	}
	if top == nil {
		top = []services.TopProduct{}
	}
	return ok(c, top)
}

// GET /api/admin/analytics/customers-stats
func (h *AnalyticsHandler) CustomerStats(c *fiber.Ctx) error {
	cs, err := h.Analytics.CustomerStats()
	if err != nil {
		applog.Error(c, "admin.analytics.customers.fail", err, nil)
		return failErr(c, err)
	}
	return ok(c, cs)
}

// GET /api/admin/analytics/inventory-report
func (h *AnalyticsHandler) InventoryReport(c *fiber.Ctx) error {
	lines, err := h.Analytics.InventoryReport()
	if err != nil {
		applog.Error(c, "admin.analytics.inventory.fail", err, nil)
		return failErr(c, err)
	}
	if lines == nil {
		lines = []services.InventoryLine{}
	}
	return ok(c, lines)
}
