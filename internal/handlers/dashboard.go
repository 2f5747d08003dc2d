package handlers

import (
	"tkbet/internal/services/dashboard"
	"tkbet/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	dashboardService dashboard.Service
}

func NewDashboardHandler(dashboardService dashboard.Service) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

func (h *DashboardHandler) CountUsers(c *fiber.Ctx) error {
	count, err := h.dashboardService.CountUsers()
	if err != nil {
		return utils.InternalError(c, "Failed to count users")
	}
	return utils.Success(c, fiber.Map{"count": count})
}

func (h *DashboardHandler) CountAffiliates(c *fiber.Ctx) error {
	count, err := h.dashboardService.CountAffiliates()
	if err != nil {
		return utils.InternalError(c, "Failed to count affiliates")
	}
	return utils.Success(c, fiber.Map{"count": count})
}

func (h *DashboardHandler) DepositStats(c *fiber.Ctx) error {
	stats, err := h.dashboardService.DepositStats()
	if err != nil {
		return utils.InternalError(c, "Failed to load deposit stats")
	}
	return utils.Success(c, stats)
}

func (h *DashboardHandler) WithdrawStats(c *fiber.Ctx) error {
	stats, err := h.dashboardService.WithdrawStats()
	if err != nil {
		return utils.InternalError(c, "Failed to load withdrawal stats")
	}
	return utils.Success(c, stats)
}
