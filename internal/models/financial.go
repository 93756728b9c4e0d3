package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type EntryStatus string

const (
	EntryPending EntryStatus = "pending"
	EntryPaid    EntryStatus = "paid"
)

const maxEntryDescriptionLength = 500

// FinancialEntry is the money owed or received for one completed session.
// At most one entry exists per session.
type FinancialEntry struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"user_id"`
	SessionID   uuid.UUID       `json:"session_id"`
	PatientID   uuid.UUID       `json:"patient_id"`
	Amount      decimal.Decimal `json:"amount"`
	EntryDate   time.Time       `json:"entry_date"`
	Description string          `json:"description"`
	Status      EntryStatus     `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	PaidAt      *time.Time      `json:"paid_at"`
}

// NewEntryFromSession builds the pending entry derived from a completed
// session: amount is the session price and the entry date is the session
// date.
func NewEntryFromSession(session *Session) (*FinancialEntry, error) {
	entry := &FinancialEntry{
		ID:          uuid.New(),
		UserID:      session.UserID,
		SessionID:   session.ID,
		PatientID:   session.PatientID,
		Amount:      session.Price,
		EntryDate:   session.DateTime,
		Description: fmt.Sprintf("Session on %s", session.DateTime.Format("02/01/2006 15:04")),
		Status:      EntryPending,
		CreatedAt:   time.Now().UTC(),
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}
	return entry, nil
}

func (e *FinancialEntry) Validate() error {
	if e.Amount.IsNegative() {
		return &ValidationError{Field: "amount", Message: "amount cannot be negative"}
	}
	if e.Amount.GreaterThan(maxAmount) {
		return &ValidationError{Field: "amount", Message: "amount cannot exceed 10000.00"}
	}
	if len(e.Description) > maxEntryDescriptionLength {
		return &ValidationError{Field: "description", Message: fmt.Sprintf("description cannot exceed %d characters", maxEntryDescriptionLength)}
	}
	return nil
}

func (e *FinancialEntry) IsPending() bool {
	return e.Status == EntryPending
}

func (e *FinancialEntry) IsPaid() bool {
	return e.Status == EntryPaid
}

func (e *FinancialEntry) MarkPaid() error {
	if e.IsPaid() {
		return &BusinessRuleError{Rule: "entry is already paid"}
	}
	now := time.Now().UTC()
	e.Status = EntryPaid
	e.PaidAt = &now
	return nil
}

// MarkPending reverses a payment, clearing the paid-at timestamp.
func (e *FinancialEntry) MarkPending() error {
	if !e.IsPaid() {
		return &BusinessRuleError{Rule: "entry is already pending"}
	}
	e.Status = EntryPending
	e.PaidAt = nil
	return nil
}

// IsOverdue reports whether the entry is still pending past its entry date.
func (e *FinancialEntry) IsOverdue(referenceDate time.Time) bool {
	return e.IsPending() && e.EntryDate.Before(referenceDate)
}
