package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/mrodcosta/PsiPraticaBack/internal/models"
	"github.com/mrodcosta/PsiPraticaBack/internal/repository"
)

type stubSessionStore struct {
	sessions     map[uuid.UUID]*models.Session
	createErr    error
	updateErr    error
	updateCalls  int
	listResult   []models.Session
	listErr      error
	lastFilter   repository.SessionListFilter
	recentResult []models.Session
	recentErr    error
	lastLimit    int
}

func (s *stubSessionStore) put(session *models.Session) {
	if s.sessions == nil {
		s.sessions = make(map[uuid.UUID]*models.Session)
	}
	clone := *session
	s.sessions[session.ID] = &clone
}

func (s *stubSessionStore) Create(_ context.Context, session *models.Session) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.put(session)
	return nil
}

func (s *stubSessionStore) GetByID(_ context.Context, userID, sessionID uuid.UUID) (*models.Session, error) {
	session, ok := s.sessions[sessionID]
	if !ok || session.UserID != userID {
		return nil, pgx.ErrNoRows
	}
	clone := *session
	return &clone, nil
}

func (s *stubSessionStore) Update(_ context.Context, session *models.Session) error {
	s.updateCalls++
	if s.updateErr != nil {
		return s.updateErr
	}
	s.put(session)
	return nil
}

func (s *stubSessionStore) List(_ context.Context, filter repository.SessionListFilter) ([]models.Session, error) {
	s.lastFilter = filter
	return s.listResult, s.listErr
}

func (s *stubSessionStore) ListRecent(_ context.Context, _ uuid.UUID, limit int) ([]models.Session, error) {
	s.lastLimit = limit
	return s.recentResult, s.recentErr
}

type stubPatientStore struct {
	patients    map[uuid.UUID]*models.Patient
	createErr   error
	updateErr   error
	updateCalls int
	listResult  []models.Patient
	listErr     error
	statsResult *models.PatientStats
	statsErr    error
}

func (s *stubPatientStore) put(patient *models.Patient) {
	if s.patients == nil {
		s.patients = make(map[uuid.UUID]*models.Patient)
	}
	clone := *patient
	s.patients[patient.ID] = &clone
}

func (s *stubPatientStore) Create(_ context.Context, patient *models.Patient) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.put(patient)
	return nil
}

func (s *stubPatientStore) GetByID(_ context.Context, userID, patientID uuid.UUID) (*models.Patient, error) {
	patient, ok := s.patients[patientID]
	if !ok || patient.UserID != userID {
		return nil, pgx.ErrNoRows
	}
	clone := *patient
	return &clone, nil
}

func (s *stubPatientStore) List(_ context.Context, _ uuid.UUID, _ bool) ([]models.Patient, error) {
	return s.listResult, s.listErr
}

func (s *stubPatientStore) Update(_ context.Context, patient *models.Patient) error {
	s.updateCalls++
	if s.updateErr != nil {
		return s.updateErr
	}
	s.put(patient)
	return nil
}

func (s *stubPatientStore) GetStats(_ context.Context, _ uuid.UUID) (*models.PatientStats, error) {
	return s.statsResult, s.statsErr
}

type stubFinancialStore struct {
	entries      map[uuid.UUID]*models.FinancialEntry
	createErr    error
	createCalls  int
	updateCalls  int
	listResult   []models.FinancialEntry
	listErr      error
	lastStart    time.Time
	lastEnd      time.Time
	lastStatuses []models.EntryStatus
}

func (s *stubFinancialStore) put(entry *models.FinancialEntry) {
	if s.entries == nil {
		s.entries = make(map[uuid.UUID]*models.FinancialEntry)
	}
	clone := *entry
	s.entries[entry.ID] = &clone
}

func (s *stubFinancialStore) Create(_ context.Context, entry *models.FinancialEntry) error {
	s.createCalls++
	if s.createErr != nil {
		return s.createErr
	}
	s.put(entry)
	return nil
}

func (s *stubFinancialStore) GetByID(_ context.Context, userID, entryID uuid.UUID) (*models.FinancialEntry, error) {
	entry, ok := s.entries[entryID]
	if !ok || entry.UserID != userID {
		return nil, pgx.ErrNoRows
	}
	clone := *entry
	return &clone, nil
}

func (s *stubFinancialStore) GetBySessionID(_ context.Context, userID, sessionID uuid.UUID) (*models.FinancialEntry, error) {
	for _, entry := range s.entries {
		if entry.SessionID == sessionID && entry.UserID == userID {
			clone := *entry
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *stubFinancialStore) Update(_ context.Context, entry *models.FinancialEntry) error {
	s.updateCalls++
	s.put(entry)
	return nil
}

func (s *stubFinancialStore) ListByPeriod(_ context.Context, _ uuid.UUID, start, end time.Time, statusFilter []models.EntryStatus) ([]models.FinancialEntry, error) {
	s.lastStart = start
	s.lastEnd = end
	s.lastStatuses = statusFilter
	return s.listResult, s.listErr
}

func (s *stubFinancialStore) ListPending(_ context.Context, userID uuid.UUID) ([]models.FinancialEntry, error) {
	pending := make([]models.FinancialEntry, 0)
	for _, entry := range s.entries {
		if entry.UserID == userID && entry.Status == models.EntryPending {
			pending = append(pending, *entry)
		}
	}
	return pending, nil
}
