package handler

import (
	"github.com/SodaPop-byte/Casa-Orencia-App/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetStats returns the fresh aggregate snapshot.
// GET /api/v1/dashboard/stats
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.service.ComputeDashboard()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}
