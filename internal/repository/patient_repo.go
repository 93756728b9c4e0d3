package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/mrodcosta/PsiPraticaBack/internal/models"
)

type PatientRepository struct {
	db DBTX
}

func NewPatientRepository(db DBTX) *PatientRepository {
	return &PatientRepository{db: db}
}

func (r *PatientRepository) Create(ctx context.Context, patient *models.Patient) error {
	query := `
		INSERT INTO patients (id, user_id, name, email, phone, notes, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Exec(ctx, query,
		patient.ID,
		patient.UserID,
		patient.Name,
		patient.Email,
		patient.Phone,
		patient.Notes,
		patient.Active,
		patient.CreatedAt,
	)
	return err
}

func (r *PatientRepository) GetByID(ctx context.Context, userID, patientID uuid.UUID) (*models.Patient, error) {
	query := `
		SELECT id, user_id, name, email, phone, notes, active, created_at, updated_at
		FROM patients
		WHERE id = $1 AND user_id = $2
	`
	var patient models.Patient
	err := r.db.QueryRow(ctx, query, patientID, userID).Scan(
		&patient.ID,
		&patient.UserID,
		&patient.Name,
		&patient.Email,
		&patient.Phone,
		&patient.Notes,
		&patient.Active,
		&patient.CreatedAt,
		&patient.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *PatientRepository) List(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]models.Patient, error) {
	query := `
		SELECT id, user_id, name, email, phone, notes, active, created_at, updated_at
		FROM patients
		WHERE user_id = $1
	`
	if activeOnly {
		query += " AND active"
	}
	query += " ORDER BY name ASC, id ASC"

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	patients := make([]models.Patient, 0)
	for rows.Next() {
		var patient models.Patient
		if err := rows.Scan(
			&patient.ID,
			&patient.UserID,
			&patient.Name,
			&patient.Email,
			&patient.Phone,
			&patient.Notes,
			&patient.Active,
			&patient.CreatedAt,
			&patient.UpdatedAt,
		); err != nil {
			return nil, err
		}
		patients = append(patients, patient)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return patients, nil
}

func (r *PatientRepository) Update(ctx context.Context, patient *models.Patient) error {
	query := `
		UPDATE patients
		SET name = $3, email = $4, phone = $5, notes = $6, active = $7, updated_at = $8
		WHERE id = $1 AND user_id = $2
	`
	tag, err := r.db.Exec(ctx, query,
		patient.ID,
		patient.UserID,
		patient.Name,
		patient.Email,
		patient.Phone,
		patient.Notes,
		patient.Active,
		patient.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PatientRepository) GetStats(ctx context.Context, userID uuid.UUID) (*models.PatientStats, error) {
	query := `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE active)
		FROM patients
		WHERE user_id = $1
	`
	var stats models.PatientStats
	if err := r.db.QueryRow(ctx, query, userID).Scan(&stats.Total, &stats.Active); err != nil {
		return nil, err
	}
	stats.Inactive = stats.Total - stats.Active
	return &stats, nil
}
