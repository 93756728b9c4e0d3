package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/mrodcosta/PsiPraticaBack/internal/models"
	"github.com/mrodcosta/PsiPraticaBack/internal/repository"
	"github.com/mrodcosta/PsiPraticaBack/internal/services"
	"github.com/shopspring/decimal"
)

type sessionApplicationService interface {
	Schedule(ctx context.Context, userID uuid.UUID, input services.ScheduleSessionInput) (*models.Session, error)
	Update(ctx context.Context, userID, sessionID uuid.UUID, input services.UpdateSessionInput) (*models.Session, error)
	Get(ctx context.Context, userID, sessionID uuid.UUID) (*models.Session, error)
	List(ctx context.Context, filter repository.SessionListFilter) ([]models.Session, error)
	UpdateStatus(ctx context.Context, userID, sessionID uuid.UUID, newStatus models.SessionStatus, notes *string) (*services.StatusUpdateResult, error)
}

type SessionHandler struct {
	service sessionApplicationService
}

func NewSessionHandler(service *services.SessionService) *SessionHandler {
	return &SessionHandler{service: service}
}

type scheduleSessionRequest struct {
	PatientID       string          `json:"patient_id"`
	DateTime        string          `json:"date_time"`
	Price           decimal.Decimal `json:"price"`
	DurationMinutes int             `json:"duration_minutes"`
	Notes           *string         `json:"notes"`
}

type updateSessionRequest struct {
	PatientID *string          `json:"patient_id"`
	DateTime  *string          `json:"date_time"`
	Price     *decimal.Decimal `json:"price"`
	Notes     *string          `json:"notes"`
}

type updateSessionStatusRequest struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes"`
}

func (h *SessionHandler) Schedule(c *fiber.Ctx) error {
	userID, err := ownerIDFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req scheduleSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid patient id"})
	}
	dateTime, err := time.Parse(time.RFC3339, strings.TrimSpace(req.DateTime))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date_time must be a valid RFC3339 timestamp"})
	}

	session, err := h.service.Schedule(c.Context(), userID, services.ScheduleSessionInput{
		PatientID:       patientID,
		DateTime:        dateTime,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		Notes:           req.Notes,
	})
	if err != nil {
		return mapDomainError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"session": session})
}

func (h *SessionHandler) Update(c *fiber.Ctx) error {
	userID, err := ownerIDFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	sessionID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var req updateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	input := services.UpdateSessionInput{
		Price: req.Price,
		Notes: req.Notes,
	}
	if req.PatientID != nil {
		patientID, err := uuid.Parse(*req.PatientID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid patient id"})
		}
		input.PatientID = &patientID
	}
	if req.DateTime != nil {
		dateTime, err := time.Parse(time.RFC3339, strings.TrimSpace(*req.DateTime))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date_time must be a valid RFC3339 timestamp"})
		}
		input.DateTime = &dateTime
	}

	session, err := h.service.Update(c.Context(), userID, sessionID, input)
	if err != nil {
		return mapDomainError(c, err)
	}

	return c.JSON(fiber.Map{"session": session})
}

func (h *SessionHandler) Get(c *fiber.Ctx) error {
	userID, err := ownerIDFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	sessionID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	session, err := h.service.Get(c.Context(), userID, sessionID)
	if err != nil {
		return mapDomainError(c, err)
	}

	return c.JSON(fiber.Map{"session": session})
}

func (h *SessionHandler) List(c *fiber.Ctx) error {
	userID, err := ownerIDFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	filter := repository.SessionListFilter{
		UserID: userID,
		Status: models.SessionStatus(strings.TrimSpace(c.Query("status"))),
		Limit:  c.QueryInt("limit", 0),
	}
	if raw := c.Query("patient_id"); raw != "" {
		patientID, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid patient id"})
		}
		filter.PatientID = &patientID
	}
	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse(dateLayout, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "from must be a date in YYYY-MM-DD format"})
		}
		filter.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse(dateLayout, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "to must be a date in YYYY-MM-DD format"})
		}
		// Inclusive end date: cover the whole day.
		endOfDay := to.AddDate(0, 0, 1)
		filter.To = &endOfDay
	}

	sessions, err := h.service.List(c.Context(), filter)
	if err != nil {
		return mapDomainError(c, err)
	}

	return c.JSON(fiber.Map{"sessions": sessions})
}

func (h *SessionHandler) UpdateStatus(c *fiber.Ctx) error {
	userID, err := ownerIDFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	sessionID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var req updateSessionStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	status := models.SessionStatus(strings.ToLower(strings.TrimSpace(req.Status)))
	result, err := h.service.UpdateStatus(c.Context(), userID, sessionID, status, req.Notes)
	if err != nil {
		return mapDomainError(c, err)
	}

	return c.JSON(fiber.Map{"result": result})
}
