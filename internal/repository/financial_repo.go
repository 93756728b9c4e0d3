package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/mrodcosta/PsiPraticaBack/internal/models"
)

type FinancialEntryRepository struct {
	db DBTX
}

func NewFinancialEntryRepository(db DBTX) *FinancialEntryRepository {
	return &FinancialEntryRepository{db: db}
}

const entryColumns = "id, user_id, session_id, patient_id, amount, entry_date, description, status, created_at, paid_at"

func (r *FinancialEntryRepository) Create(ctx context.Context, entry *models.FinancialEntry) error {
	query := `
		INSERT INTO financial_entries (id, user_id, session_id, patient_id, amount, entry_date, description, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.Exec(ctx, query,
		entry.ID,
		entry.UserID,
		entry.SessionID,
		entry.PatientID,
		entry.Amount,
		entry.EntryDate,
		entry.Description,
		entry.Status,
		entry.CreatedAt,
	)
	return err
}

func (r *FinancialEntryRepository) GetByID(ctx context.Context, userID, entryID uuid.UUID) (*models.FinancialEntry, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM financial_entries
		WHERE id = $1 AND user_id = $2
	`, entryColumns)

	return r.queryEntry(ctx, query, entryID, userID)
}

func (r *FinancialEntryRepository) GetBySessionID(ctx context.Context, userID, sessionID uuid.UUID) (*models.FinancialEntry, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM financial_entries
		WHERE session_id = $1 AND user_id = $2
	`, entryColumns)

	return r.queryEntry(ctx, query, sessionID, userID)
}

func (r *FinancialEntryRepository) Update(ctx context.Context, entry *models.FinancialEntry) error {
	query := `
		UPDATE financial_entries
		SET amount = $3, entry_date = $4, description = $5, status = $6, paid_at = $7
		WHERE id = $1 AND user_id = $2
	`
	tag, err := r.db.Exec(ctx, query,
		entry.ID,
		entry.UserID,
		entry.Amount,
		entry.EntryDate,
		entry.Description,
		entry.Status,
		entry.PaidAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ListByPeriod returns entries with entry_date inside [start, end],
// optionally restricted to a set of statuses, newest first.
func (r *FinancialEntryRepository) ListByPeriod(
	ctx context.Context,
	userID uuid.UUID,
	start time.Time,
	end time.Time,
	statusFilter []models.EntryStatus,
) ([]models.FinancialEntry, error) {
	args := []any{userID, start, end}
	whereParts := []string{"user_id = $1", "entry_date >= $2", "entry_date <= $3"}

	if len(statusFilter) > 0 {
		statuses := make([]string, 0, len(statusFilter))
		for _, status := range statusFilter {
			statuses = append(statuses, string(status))
		}
		args = append(args, statuses)
		whereParts = append(whereParts, fmt.Sprintf("status = ANY($%d)", len(args)))
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM financial_entries
		WHERE %s
		ORDER BY entry_date DESC, id DESC
	`, entryColumns, strings.Join(whereParts, " AND "))

	return r.queryEntries(ctx, query, args...)
}

func (r *FinancialEntryRepository) ListPending(ctx context.Context, userID uuid.UUID) ([]models.FinancialEntry, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM financial_entries
		WHERE user_id = $1 AND status = $2
		ORDER BY entry_date ASC, id ASC
	`, entryColumns)

	return r.queryEntries(ctx, query, userID, models.EntryPending)
}

func (r *FinancialEntryRepository) queryEntry(ctx context.Context, query string, args ...any) (*models.FinancialEntry, error) {
	var entry models.FinancialEntry
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&entry.ID,
		&entry.UserID,
		&entry.SessionID,
		&entry.PatientID,
		&entry.Amount,
		&entry.EntryDate,
		&entry.Description,
		&entry.Status,
		&entry.CreatedAt,
		&entry.PaidAt,
	)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *FinancialEntryRepository) queryEntries(ctx context.Context, query string, args ...any) ([]models.FinancialEntry, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.FinancialEntry, 0)
	for rows.Next() {
		var entry models.FinancialEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.SessionID,
			&entry.PatientID,
			&entry.Amount,
			&entry.EntryDate,
			&entry.Description,
			&entry.Status,
			&entry.CreatedAt,
			&entry.PaidAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
