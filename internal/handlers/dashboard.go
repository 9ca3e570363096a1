package handlers

import (
	"vigil/internal/services/dashboard"
	"vigil/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service dashboard.Service
}

func NewDashboardHandler(service dashboard.Service) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	stats, err := h.service.GetSummary(c.Context())
	if err != nil {
		return response.ServerError(c, "Failed to get summary")
	}
	return c.JSON(stats)
}

func (h *DashboardHandler) GetAlerts(c *fiber.Ctx) error {
	alerts, err := h.service.GetAlerts(c.Context())
	if err != nil {
		return response.ServerError(c, "Failed to get alerts")
	}
	return c.JSON(fiber.Map{"alerts": alerts})
}

func (h *DashboardHandler) GetVolume(c *fiber.Ctx) error {
	buckets, err := h.service.GetVolume(c.Context(), c.Query("timeframe", "24h"))
	if err != nil {
		return response.ServerError(c, "Failed to get volume")
	}
	return c.JSON(fiber.Map{"volume": buckets})
}

func (h *DashboardHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.service.GetCategories(c.Context())
	if err != nil {
		return response.ServerError(c, "Failed to get categories")
	}
	return c.JSON(fiber.Map{"categories": categories})
}
