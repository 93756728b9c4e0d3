package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/mrodcosta/PsiPraticaBack/internal/models"
	"github.com/mrodcosta/PsiPraticaBack/internal/services"
)

type financialApplicationService interface {
	Report(ctx context.Context, userID uuid.UUID, start, end time.Time, statusFilter []models.EntryStatus) (*services.Report, error)
	List(ctx context.Context, userID uuid.UUID, start, end time.Time, statusFilter []models.EntryStatus) ([]models.FinancialEntry, error)
	Get(ctx context.Context, userID, entryID uuid.UUID) (*models.FinancialEntry, error)
	MarkPaid(ctx context.Context, userID, entryID uuid.UUID) (*models.FinancialEntry, error)
	MarkPending(ctx context.Context, userID, entryID uuid.UUID) (*models.FinancialEntry, error)
}

type FinancialHandler struct {
	service financialApplicationService
}

func NewFinancialHandler(service *services.FinancialService) *FinancialHandler {
	return &FinancialHandler{service: service}
}

func (h *FinancialHandler) Report(c *fiber.Ctx) error {
	userID, err := ownerIDFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	start, end, statuses, err := parsePeriodQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	report, err := h.service.Report(c.Context(), userID, start, end, statuses)
	if err != nil {
		return mapDomainError(c, err)
	}

	return c.JSON(fiber.Map{"report": report})
}

func (h *FinancialHandler) List(c *fiber.Ctx) error {
	userID, err := ownerIDFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	start, end, statuses, err := parsePeriodQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	entries, err := h.service.List(c.Context(), userID, start, end, statuses)
	if err != nil {
		return mapDomainError(c, err)
	}

	return c.JSON(fiber.Map{"entries": entries})
}

func (h *FinancialHandler) Get(c *fiber.Ctx) error {
	userID, err := ownerIDFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	entryID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	entry, err := h.service.Get(c.Context(), userID, entryID)
	if err != nil {
		return mapDomainError(c, err)
	}

	return c.JSON(fiber.Map{"entry": entry})
}

func (h *FinancialHandler) MarkPaid(c *fiber.Ctx) error {
	userID, err := ownerIDFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	entryID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	entry, err := h.service.MarkPaid(c.Context(), userID, entryID)
	if err != nil {
		return mapDomainError(c, err)
	}

	return c.JSON(fiber.Map{"entry": entry})
}

// Revert moves a paid entry back to pending.
func (h *FinancialHandler) Revert(c *fiber.Ctx) error {
	userID, err := ownerIDFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	entryID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	entry, err := h.service.MarkPending(c.Context(), userID, entryID)
	if err != nil {
		return mapDomainError(c, err)
	}

	return c.JSON(fiber.Map{"entry": entry})
}

func parsePeriodQuery(c *fiber.Ctx) (time.Time, time.Time, []models.EntryStatus, error) {
	start, err := parseDateQuery(c, "start_date")
	if err != nil {
		return time.Time{}, time.Time{}, nil, err
	}
	end, err := parseDateQuery(c, "end_date")
	if err != nil {
		return time.Time{}, time.Time{}, nil, err
	}

	var statuses []models.EntryStatus
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			statuses = append(statuses, models.EntryStatus(strings.TrimSpace(part)))
		}
	}
	return start, end, statuses, nil
}
