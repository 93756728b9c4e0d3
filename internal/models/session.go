package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SessionStatus string

const (
	SessionScheduled SessionStatus = "scheduled"
	SessionCompleted SessionStatus = "completed"
	SessionCancelled SessionStatus = "cancelled"
	SessionNoShow    SessionStatus = "no_show"
)

const (
	DefaultSessionDuration = 50
	maxSessionDuration     = 480
	maxSessionNotesLength  = 2000
)

// maxAmount caps both session prices and financial entry amounts.
var maxAmount = decimal.New(1000000, -2) // 10000.00

type Session struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"user_id"`
	PatientID       uuid.UUID       `json:"patient_id"`
	DateTime        time.Time       `json:"date_time"`
	Price           decimal.Decimal `json:"price"`
	DurationMinutes int             `json:"duration_minutes"`
	Status          SessionStatus   `json:"status"`
	Notes           *string         `json:"notes"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       *time.Time      `json:"updated_at"`
}

func NewSession(
	userID uuid.UUID,
	patientID uuid.UUID,
	dateTime time.Time,
	price decimal.Decimal,
	durationMinutes int,
	notes *string,
) (*Session, error) {
	if durationMinutes == 0 {
		durationMinutes = DefaultSessionDuration
	}
	session := &Session{
		ID:              uuid.New(),
		UserID:          userID,
		PatientID:       patientID,
		DateTime:        dateTime,
		Price:           price,
		DurationMinutes: durationMinutes,
		Status:          SessionScheduled,
		Notes:           notes,
		CreatedAt:       time.Now().UTC(),
	}
	if err := session.Validate(); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *Session) Validate() error {
	if s.Price.IsNegative() {
		return &ValidationError{Field: "price", Message: "price cannot be negative"}
	}
	if s.Price.GreaterThan(maxAmount) {
		return &ValidationError{Field: "price", Message: "price cannot exceed 10000.00"}
	}
	if s.DurationMinutes <= 0 {
		return &ValidationError{Field: "duration_minutes", Message: "duration must be greater than zero"}
	}
	if s.DurationMinutes > maxSessionDuration {
		return &ValidationError{Field: "duration_minutes", Message: fmt.Sprintf("duration cannot exceed %d minutes", maxSessionDuration)}
	}
	if s.Notes != nil && len(*s.Notes) > maxSessionNotesLength {
		return &ValidationError{Field: "notes", Message: fmt.Sprintf("notes cannot exceed %d characters", maxSessionNotesLength)}
	}
	return nil
}

// Complete marks a scheduled session as held. Completed is terminal.
func (s *Session) Complete() error {
	if s.Status != SessionScheduled {
		return s.transitionError(SessionCompleted)
	}
	s.Status = SessionCompleted
	s.touch()
	return nil
}

func (s *Session) Cancel() error {
	if s.Status != SessionScheduled {
		return s.transitionError(SessionCancelled)
	}
	s.Status = SessionCancelled
	s.touch()
	return nil
}

// MarkNoShow records that the patient did not attend. No-show is terminal
// and never generates a financial entry.
func (s *Session) MarkNoShow() error {
	if s.Status != SessionScheduled {
		return s.transitionError(SessionNoShow)
	}
	s.Status = SessionNoShow
	s.touch()
	return nil
}

// Reschedule moves a scheduled session to a new date-time. Date-times more
// than one year in the past are rejected.
func (s *Session) Reschedule(newDateTime time.Time) error {
	if s.Status != SessionScheduled {
		return &BusinessRuleError{Rule: "only scheduled sessions can be rescheduled"}
	}
	oneYearAgo := time.Now().UTC().AddDate(-1, 0, 0)
	if newDateTime.Before(oneYearAgo) {
		return &ValidationError{Field: "date_time", Message: "date cannot be more than one year in the past"}
	}
	s.DateTime = newDateTime
	s.touch()
	return nil
}

func (s *Session) IsScheduled() bool {
	return s.Status == SessionScheduled
}

func (s *Session) transitionError(target SessionStatus) error {
	return &BusinessRuleError{
		Rule: fmt.Sprintf("session with status %q cannot transition to %q", s.Status, target),
	}
}

func (s *Session) touch() {
	now := time.Now().UTC()
	s.UpdatedAt = &now
}
