package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/service"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// StatsHandler serves the dashboard analytics.
type StatsHandler struct {
	service *service.StatsService
}

// NewStatsHandler constructs handler.
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{service: statsService}
}

// Overview GET /api/stats/overview.
func (h *StatsHandler) Overview(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	overview, err := h.service.Overview(c.Context(), principal.User)
	if err != nil {
		return err
	}

	byCategory := make([]fiber.Map, 0, len(overview.ByCategory))
	for _, entry := range overview.ByCategory {
		byCategory = append(byCategory, fiber.Map{
			"category": entry.Category,
			"count":    entry.Count,
		})
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"totalTickets": overview.TotalTickets,
		"totalUsers":   overview.TotalUsers,
		"byStatus":     overview.ByStatus,
		"byPriority":   overview.ByPriority,
		"byCategory":   byCategory,
	}})
}
