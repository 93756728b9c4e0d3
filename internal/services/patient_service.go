package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/mrodcosta/PsiPraticaBack/internal/models"
)

type PatientService struct {
	patients patientStore
}

func NewPatientService(patients patientStore) *PatientService {
	return &PatientService{patients: patients}
}

type CreatePatientInput struct {
	Name  string
	Email *string
	Phone *string
	Notes *string
}

func (s *PatientService) Create(ctx context.Context, userID uuid.UUID, input CreatePatientInput) (*models.Patient, error) {
	patient, err := models.NewPatient(userID, input.Name, input.Email, input.Phone, input.Notes)
	if err != nil {
		return nil, err
	}
	if err := s.patients.Create(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

type UpdatePatientInput struct {
	Name  *string
	Email *string
	Phone *string
	Notes *string
}

func (s *PatientService) Update(ctx context.Context, userID, patientID uuid.UUID, input UpdatePatientInput) (*models.Patient, error) {
	patient, err := s.getOwned(ctx, userID, patientID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		patient.Name = *input.Name
	}
	if input.Email != nil {
		patient.Email = input.Email
	}
	if input.Phone != nil {
		patient.Phone = input.Phone
	}
	if input.Notes != nil {
		patient.Notes = input.Notes
	}
	if err := patient.Validate(); err != nil {
		return nil, err
	}

	if err := s.patients.Update(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

func (s *PatientService) Get(ctx context.Context, userID, patientID uuid.UUID) (*models.Patient, error) {
	return s.getOwned(ctx, userID, patientID)
}

func (s *PatientService) List(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]models.Patient, error) {
	return s.patients.List(ctx, userID, activeOnly)
}

// Deactivate soft-deletes a patient; the record stays queryable for history.
func (s *PatientService) Deactivate(ctx context.Context, userID, patientID uuid.UUID) (*models.Patient, error) {
	patient, err := s.getOwned(ctx, userID, patientID)
	if err != nil {
		return nil, err
	}
	patient.Deactivate()
	if err := s.patients.Update(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

func (s *PatientService) Activate(ctx context.Context, userID, patientID uuid.UUID) (*models.Patient, error) {
	patient, err := s.getOwned(ctx, userID, patientID)
	if err != nil {
		return nil, err
	}
	patient.Activate()
	if err := s.patients.Update(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

func (s *PatientService) Stats(ctx context.Context, userID uuid.UUID) (*models.PatientStats, error) {
	return s.patients.GetStats(ctx, userID)
}

func (s *PatientService) getOwned(ctx context.Context, userID, patientID uuid.UUID) (*models.Patient, error) {
	patient, err := s.patients.GetByID(ctx, userID, patientID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &models.NotFoundError{Resource: "patient"}
		}
		return nil, err
	}
	return patient, nil
}
