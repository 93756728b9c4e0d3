package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/mrodcosta/PsiPraticaBack/internal/models"
	"github.com/mrodcosta/PsiPraticaBack/internal/repository"
	"github.com/shopspring/decimal"
)

type SessionService struct {
	sessions  sessionStore
	patients  patientStore
	financial financialStore
}

func NewSessionService(sessions sessionStore, patients patientStore, financial financialStore) *SessionService {
	return &SessionService{
		sessions:  sessions,
		patients:  patients,
		financial: financial,
	}
}

type ScheduleSessionInput struct {
	PatientID       uuid.UUID
	DateTime        time.Time
	Price           decimal.Decimal
	DurationMinutes int
	Notes           *string
}

// Schedule creates a new session in the scheduled state. No financial entry
// is created here; that happens only when the session completes.
func (s *SessionService) Schedule(ctx context.Context, userID uuid.UUID, input ScheduleSessionInput) (*models.Session, error) {
	if _, err := s.patients.GetByID(ctx, userID, input.PatientID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &models.NotFoundError{Resource: "patient"}
		}
		return nil, err
	}

	session, err := models.NewSession(
		userID,
		input.PatientID,
		input.DateTime,
		input.Price,
		input.DurationMinutes,
		input.Notes,
	)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

type UpdateSessionInput struct {
	PatientID *uuid.UUID
	DateTime  *time.Time
	Price     *decimal.Decimal
	Notes     *string
}

func (s *SessionService) Update(ctx context.Context, userID, sessionID uuid.UUID, input UpdateSessionInput) (*models.Session, error) {
	session, err := s.getOwned(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	if input.PatientID != nil && *input.PatientID != session.PatientID {
		if _, err := s.patients.GetByID(ctx, userID, *input.PatientID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, &models.ValidationError{Field: "patient_id", Message: "patient not found"}
			}
			return nil, err
		}
		session.PatientID = *input.PatientID
	}

	if input.DateTime != nil {
		if session.IsScheduled() {
			if err := session.Reschedule(*input.DateTime); err != nil {
				return nil, err
			}
		} else {
			// Record correction on a closed session; status is untouched.
			session.DateTime = *input.DateTime
		}
	}
	if input.Price != nil {
		session.Price = *input.Price
	}
	if input.Notes != nil {
		session.Notes = input.Notes
	}
	if err := session.Validate(); err != nil {
		return nil, err
	}

	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *SessionService) Get(ctx context.Context, userID, sessionID uuid.UUID) (*models.Session, error) {
	return s.getOwned(ctx, userID, sessionID)
}

func (s *SessionService) List(ctx context.Context, filter repository.SessionListFilter) ([]models.Session, error) {
	return s.sessions.List(ctx, filter)
}

// StatusUpdateResult summarizes one transition. The financial fields are set
// only when the transition generated (or recovered) an entry.
type StatusUpdateResult struct {
	SessionID            uuid.UUID            `json:"session_id"`
	PreviousStatus       models.SessionStatus `json:"previous_status"`
	NewStatus            models.SessionStatus `json:"new_status"`
	FinancialEntryID     *uuid.UUID           `json:"financial_entry_id"`
	FinancialEntryAmount *decimal.Decimal     `json:"financial_entry_amount"`
}

// UpdateStatus transitions a session and, on completion, guarantees exactly
// one pending financial entry exists for it.
func (s *SessionService) UpdateStatus(
	ctx context.Context,
	userID uuid.UUID,
	sessionID uuid.UUID,
	newStatus models.SessionStatus,
	notes *string,
) (*StatusUpdateResult, error) {
	session, err := s.getOwned(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	previous := session.Status

	switch newStatus {
	case models.SessionCompleted:
		err = session.Complete()
	case models.SessionCancelled:
		err = session.Cancel()
	case models.SessionNoShow:
		err = session.MarkNoShow()
	case models.SessionScheduled:
		err = &models.BusinessRuleError{Rule: "a session cannot be moved back to scheduled"}
	default:
		err = &models.ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", newStatus)}
	}
	if err != nil {
		return nil, err
	}

	if notes != nil && strings.TrimSpace(*notes) != "" {
		session.Notes = notes
		if err := session.Validate(); err != nil {
			return nil, err
		}
	}

	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, err
	}

	result := &StatusUpdateResult{
		SessionID:      session.ID,
		PreviousStatus: previous,
		NewStatus:      session.Status,
	}

	if session.Status == models.SessionCompleted {
		entry, err := s.resolveFinancialEntry(ctx, session)
		if err != nil {
			return nil, err
		}
		result.FinancialEntryID = &entry.ID
		amount := entry.Amount
		result.FinancialEntryAmount = &amount
	}

	return result, nil
}

// resolveFinancialEntry returns the single entry for a completed session,
// creating it if it does not exist yet. A retried completion must converge
// on the entry created the first time around instead of billing twice.
func (s *SessionService) resolveFinancialEntry(ctx context.Context, session *models.Session) (*models.FinancialEntry, error) {
	pending, err := s.financial.ListPending(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	for i := range pending {
		if pending[i].SessionID == session.ID {
			return &pending[i], nil
		}
	}

	entry, err := models.NewEntryFromSession(session)
	if err != nil {
		return nil, err
	}
	if err := s.financial.Create(ctx, entry); err != nil {
		if repository.IsUniqueViolation(err) {
			// Lost the race against a concurrent completion; the winner's
			// row is the entry for this session.
			return s.financial.GetBySessionID(ctx, session.UserID, session.ID)
		}
		return nil, err
	}
	return entry, nil
}

func (s *SessionService) getOwned(ctx context.Context, userID, sessionID uuid.UUID) (*models.Session, error) {
	session, err := s.sessions.GetByID(ctx, userID, sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &models.NotFoundError{Resource: "session"}
		}
		return nil, err
	}
	return session, nil
}
