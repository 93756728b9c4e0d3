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

// SessionListFilter narrows owner-scoped session listings. From is
// inclusive, To exclusive.
type SessionListFilter struct {
	UserID    uuid.UUID
	PatientID *uuid.UUID
	Status    models.SessionStatus
	From      *time.Time
	To        *time.Time
	Limit     int
}

type SessionRepository struct {
	db DBTX
}

func NewSessionRepository(db DBTX) *SessionRepository {
	return &SessionRepository{db: db}
}

const sessionColumns = "id, user_id, patient_id, date_time, price, duration_minutes, status, notes, created_at, updated_at"

func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	query := `
		INSERT INTO sessions (id, user_id, patient_id, date_time, price, duration_minutes, status, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.Exec(ctx, query,
		session.ID,
		session.UserID,
		session.PatientID,
		session.DateTime,
		session.Price,
		session.DurationMinutes,
		session.Status,
		session.Notes,
		session.CreatedAt,
	)
	return err
}

func (r *SessionRepository) GetByID(ctx context.Context, userID, sessionID uuid.UUID) (*models.Session, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM sessions
		WHERE id = $1 AND user_id = $2
	`, sessionColumns)

	var session models.Session
	err := r.db.QueryRow(ctx, query, sessionID, userID).Scan(
		&session.ID,
		&session.UserID,
		&session.PatientID,
		&session.DateTime,
		&session.Price,
		&session.DurationMinutes,
		&session.Status,
		&session.Notes,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) Update(ctx context.Context, session *models.Session) error {
	query := `
		UPDATE sessions
		SET patient_id = $3, date_time = $4, price = $5, duration_minutes = $6,
		    status = $7, notes = $8, updated_at = $9
		WHERE id = $1 AND user_id = $2
	`
	tag, err := r.db.Exec(ctx, query,
		session.ID,
		session.UserID,
		session.PatientID,
		session.DateTime,
		session.Price,
		session.DurationMinutes,
		session.Status,
		session.Notes,
		session.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *SessionRepository) List(ctx context.Context, filter SessionListFilter) ([]models.Session, error) {
	args := []any{filter.UserID}
	whereParts := []string{"user_id = $1"}

	if filter.PatientID != nil {
		args = append(args, *filter.PatientID)
		whereParts = append(whereParts, fmt.Sprintf("patient_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		whereParts = append(whereParts, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		whereParts = append(whereParts, fmt.Sprintf("date_time >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		whereParts = append(whereParts, fmt.Sprintf("date_time < $%d", len(args)))
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM sessions
		WHERE %s
		ORDER BY date_time ASC, id ASC
	`, sessionColumns, strings.Join(whereParts, " AND "))

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	return r.querySessions(ctx, query, args...)
}

// ListRecent returns the most recently dated sessions of any status.
func (r *SessionRepository) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]models.Session, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM sessions
		WHERE user_id = $1
		ORDER BY date_time DESC, id DESC
		LIMIT $2
	`, sessionColumns)

	return r.querySessions(ctx, query, userID, limit)
}

func (r *SessionRepository) querySessions(ctx context.Context, query string, args ...any) ([]models.Session, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]models.Session, 0)
	for rows.Next() {
		var session models.Session
		if err := rows.Scan(
			&session.ID,
			&session.UserID,
			&session.PatientID,
			&session.DateTime,
			&session.Price,
			&session.DurationMinutes,
			&session.Status,
			&session.Notes,
			&session.CreatedAt,
			&session.UpdatedAt,
		); err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}
