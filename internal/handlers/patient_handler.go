package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/mrodcosta/PsiPraticaBack/internal/models"
	"github.com/mrodcosta/PsiPraticaBack/internal/services"
)

type patientApplicationService interface {
	Create(ctx context.Context, userID uuid.UUID, input services.CreatePatientInput) (*models.Patient, error)
	Update(ctx context.Context, userID, patientID uuid.UUID, input services.UpdatePatientInput) (*models.Patient, error)
	Get(ctx context.Context, userID, patientID uuid.UUID) (*models.Patient, error)
	List(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]models.Patient, error)
	Deactivate(ctx context.Context, userID, patientID uuid.UUID) (*models.Patient, error)
	Activate(ctx context.Context, userID, patientID uuid.UUID) (*models.Patient, error)
	Stats(ctx context.Context, userID uuid.UUID) (*models.PatientStats, error)
}

type PatientHandler struct {
	service patientApplicationService
}

func NewPatientHandler(service *services.PatientService) *PatientHandler {
	return &PatientHandler{service: service}
}

type createPatientRequest struct {
	Name  string  `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
	Notes *string `json:"notes"`
}

type updatePatientRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
	Notes *string `json:"notes"`
}

func (h *PatientHandler) Create(c *fiber.Ctx) error {
	userID, err := ownerIDFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req createPatientRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	patient, err := h.service.Create(c.Context(), userID, services.CreatePatientInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Notes: req.Notes,
	})
	if err != nil {
		return mapDomainError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"patient": patient})
}

func (h *PatientHandler) Update(c *fiber.Ctx) error {
	userID, err := ownerIDFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	patientID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var req updatePatientRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	patient, err := h.service.Update(c.Context(), userID, patientID, services.UpdatePatientInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Notes: req.Notes,
	})
	if err != nil {
		return mapDomainError(c, err)
	}

	return c.JSON(fiber.Map{"patient": patient})
}

func (h *PatientHandler) Get(c *fiber.Ctx) error {
	userID, err := ownerIDFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	patientID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	patient, err := h.service.Get(c.Context(), userID, patientID)
	if err != nil {
		return mapDomainError(c, err)
	}

	return c.JSON(fiber.Map{"patient": patient})
}

func (h *PatientHandler) List(c *fiber.Ctx) error {
	userID, err := ownerIDFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	activeOnly := c.QueryBool("active_only", false)
	patients, err := h.service.List(c.Context(), userID, activeOnly)
	if err != nil {
		return mapDomainError(c, err)
	}

	return c.JSON(fiber.Map{"patients": patients})
}

// Deactivate is the DELETE endpoint; patients are soft-deleted only.
func (h *PatientHandler) Deactivate(c *fiber.Ctx) error {
	userID, err := ownerIDFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	patientID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	patient, err := h.service.Deactivate(c.Context(), userID, patientID)
	if err != nil {
		return mapDomainError(c, err)
	}

	return c.JSON(fiber.Map{"patient": patient})
}

func (h *PatientHandler) Activate(c *fiber.Ctx) error {
	userID, err := ownerIDFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	patientID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	patient, err := h.service.Activate(c.Context(), userID, patientID)
	if err != nil {
		return mapDomainError(c, err)
	}

	return c.JSON(fiber.Map{"patient": patient})
}

func (h *PatientHandler) Stats(c *fiber.Ctx) error {
	userID, err := ownerIDFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	stats, err := h.service.Stats(c.Context(), userID)
	if err != nil {
		return mapDomainError(c, err)
	}

	return c.JSON(fiber.Map{"stats": stats})
}
