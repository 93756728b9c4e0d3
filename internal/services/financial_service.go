package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/mrodcosta/PsiPraticaBack/internal/models"
	"github.com/shopspring/decimal"
)

// Report periods may span up to five years; the dashboard applies a stricter
// one-year ceiling on top of the same validation.
const (
	maxReportPeriodDays    = 5 * 365
	maxDashboardPeriodDays = 365
)

type FinancialService struct {
	financial financialStore
}

func NewFinancialService(financial financialStore) *FinancialService {
	return &FinancialService{financial: financial}
}

type Report struct {
	Entries      []models.FinancialEntry `json:"entries"`
	TotalEntries int                     `json:"total_entries"`
	TotalAmount  decimal.Decimal         `json:"total_amount"`
	TotalPaid    decimal.Decimal         `json:"total_paid"`
	TotalPending decimal.Decimal         `json:"total_pending"`
	PeriodStart  time.Time               `json:"period_start"`
	PeriodEnd    time.Time               `json:"period_end"`
}

// Report aggregates financial entries over an inclusive period. Sums over an
// empty result are zero, never absent.
func (s *FinancialService) Report(
	ctx context.Context,
	userID uuid.UUID,
	start time.Time,
	end time.Time,
	statusFilter []models.EntryStatus,
) (*Report, error) {
	if err := validatePeriod(start, end, maxReportPeriodDays); err != nil {
		return nil, err
	}

	entries, err := s.financial.ListByPeriod(ctx, userID, start, end, statusFilter)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Entries:      entries,
		TotalEntries: len(entries),
		TotalAmount:  decimal.Zero,
		TotalPaid:    decimal.Zero,
		TotalPending: decimal.Zero,
		PeriodStart:  start,
		PeriodEnd:    end,
	}
	for i := range entries {
		report.TotalAmount = report.TotalAmount.Add(entries[i].Amount)
		switch entries[i].Status {
		case models.EntryPaid:
			report.TotalPaid = report.TotalPaid.Add(entries[i].Amount)
		case models.EntryPending:
			report.TotalPending = report.TotalPending.Add(entries[i].Amount)
		}
	}
	return report, nil
}

func (s *FinancialService) List(
	ctx context.Context,
	userID uuid.UUID,
	start time.Time,
	end time.Time,
	statusFilter []models.EntryStatus,
) ([]models.FinancialEntry, error) {
	if err := validatePeriod(start, end, maxReportPeriodDays); err != nil {
		return nil, err
	}
	return s.financial.ListByPeriod(ctx, userID, start, end, statusFilter)
}

func (s *FinancialService) Get(ctx context.Context, userID, entryID uuid.UUID) (*models.FinancialEntry, error) {
	return s.getOwned(ctx, userID, entryID)
}

func (s *FinancialService) MarkPaid(ctx context.Context, userID, entryID uuid.UUID) (*models.FinancialEntry, error) {
	entry, err := s.getOwned(ctx, userID, entryID)
	if err != nil {
		return nil, err
	}
	if err := entry.MarkPaid(); err != nil {
		return nil, err
	}
	if err := s.financial.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// MarkPending reverses a payment.
func (s *FinancialService) MarkPending(ctx context.Context, userID, entryID uuid.UUID) (*models.FinancialEntry, error) {
	entry, err := s.getOwned(ctx, userID, entryID)
	if err != nil {
		return nil, err
	}
	if err := entry.MarkPending(); err != nil {
		return nil, err
	}
	if err := s.financial.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *FinancialService) getOwned(ctx context.Context, userID, entryID uuid.UUID) (*models.FinancialEntry, error) {
	entry, err := s.financial.GetByID(ctx, userID, entryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &models.NotFoundError{Resource: "financial entry"}
		}
		return nil, err
	}
	return entry, nil
}

func validatePeriod(start, end time.Time, maxDays int) error {
	if start.After(end) {
		return &models.ValidationError{Field: "start_date", Message: "start date cannot be after end date"}
	}
	if end.Sub(start) > time.Duration(maxDays)*24*time.Hour {
		return &models.ValidationError{Field: "period", Message: fmt.Sprintf("period cannot exceed %d days", maxDays)}
	}
	return nil
}
