package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mrodcosta/PsiPraticaBack/internal/models"
	"github.com/mrodcosta/PsiPraticaBack/internal/repository"
)

// Store contracts the services depend on. Every call is owner-scoped; the
// concrete implementations live in internal/repository.

type sessionStore interface {
	Create(ctx context.Context, session *models.Session) error
	GetByID(ctx context.Context, userID, sessionID uuid.UUID) (*models.Session, error)
	Update(ctx context.Context, session *models.Session) error
	List(ctx context.Context, filter repository.SessionListFilter) ([]models.Session, error)
	ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]models.Session, error)
}

type patientStore interface {
	Create(ctx context.Context, patient *models.Patient) error
	GetByID(ctx context.Context, userID, patientID uuid.UUID) (*models.Patient, error)
	List(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]models.Patient, error)
	Update(ctx context.Context, patient *models.Patient) error
	GetStats(ctx context.Context, userID uuid.UUID) (*models.PatientStats, error)
}

type financialStore interface {
	Create(ctx context.Context, entry *models.FinancialEntry) error
	GetByID(ctx context.Context, userID, entryID uuid.UUID) (*models.FinancialEntry, error)
	GetBySessionID(ctx context.Context, userID, sessionID uuid.UUID) (*models.FinancialEntry, error)
	Update(ctx context.Context, entry *models.FinancialEntry) error
	ListByPeriod(ctx context.Context, userID uuid.UUID, start, end time.Time, statusFilter []models.EntryStatus) ([]models.FinancialEntry, error)
	ListPending(ctx context.Context, userID uuid.UUID) ([]models.FinancialEntry, error)
}
