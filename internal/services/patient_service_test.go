package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/mrodcosta/PsiPraticaBack/internal/models"
)

func TestPatientCreatePersists(t *testing.T) {
	patients := &stubPatientStore{}
	service := NewPatientService(patients)

	patient, err := service.Create(context.Background(), uuid.New(), CreatePatientInput{
		Name:  "Maria Souza",
		Phone: strPtr("(11) 98765-4321"),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, ok := patients.patients[patient.ID]; !ok {
		t.Error("expected patient to be persisted")
	}
	if *patient.Phone != "11987654321" {
		t.Errorf("expected normalized phone, got %q", *patient.Phone)
	}
}

func TestPatientCreateRejectsInvalidName(t *testing.T) {
	service := NewPatientService(&stubPatientStore{})

	_, err := service.Create(context.Background(), uuid.New(), CreatePatientInput{Name: "x"})

	var validationErr *models.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if validationErr.Field != "name" {
		t.Errorf("expected field name, got %q", validationErr.Field)
	}
}

func TestPatientDeactivateSoftDeletes(t *testing.T) {
	userID := uuid.New()
	patient, err := models.NewPatient(userID, "Maria", nil, nil, nil)
	if err != nil {
		t.Fatalf("NewPatient: %v", err)
	}
	patients := &stubPatientStore{}
	patients.put(patient)
	service := NewPatientService(patients)

	deactivated, err := service.Deactivate(context.Background(), userID, patient.ID)
	if err != nil {
		t.Fatalf("Deactivate: %v", err)
	}

	if deactivated.Active {
		t.Error("expected patient to be inactive")
	}
	if patients.updateCalls != 1 {
		t.Errorf("expected one update, got %d", patients.updateCalls)
	}
	if stored := patients.patients[patient.ID]; stored.Active {
		t.Error("store still holds an active patient")
	}
}

func TestPatientGetHidesOtherOwners(t *testing.T) {
	patient, err := models.NewPatient(uuid.New(), "Maria", nil, nil, nil)
	if err != nil {
		t.Fatalf("NewPatient: %v", err)
	}
	patients := &stubPatientStore{}
	patients.put(patient)
	service := NewPatientService(patients)

	_, err = service.Get(context.Background(), uuid.New(), patient.ID)

	var notFound *models.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected not found for foreign patient, got %v", err)
	}
}

func TestPatientUpdateValidatesMergedState(t *testing.T) {
	userID := uuid.New()
	patient, err := models.NewPatient(userID, "Maria", nil, nil, nil)
	if err != nil {
		t.Fatalf("NewPatient: %v", err)
	}
	patients := &stubPatientStore{}
	patients.put(patient)
	service := NewPatientService(patients)

	_, err = service.Update(context.Background(), userID, patient.ID, UpdatePatientInput{
		Email: strPtr("not-an-email"),
	})

	var validationErr *models.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if patients.updateCalls != 0 {
		t.Error("invalid update must not write")
	}
}
