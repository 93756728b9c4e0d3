package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/mrodcosta/PsiPraticaBack/internal/services"
)

type dashboardApplicationService interface {
	Summary(ctx context.Context, userID uuid.UUID, start, end time.Time) (*services.DashboardSummary, error)
}

type DashboardHandler struct {
	service dashboardApplicationService
}

func NewDashboardHandler(service *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	userID, err := ownerIDFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	start, err := parseDateQuery(c, "start_date")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	end, err := parseDateQuery(c, "end_date")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	summary, err := h.service.Summary(c.Context(), userID, start, end)
	if err != nil {
		return mapDomainError(c, err)
	}

	return c.JSON(fiber.Map{"summary": summary})
}
