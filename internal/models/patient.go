package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Patient struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	Name      string     `json:"name"`
	Email     *string    `json:"email"`
	Phone     *string    `json:"phone"`
	Notes     *string    `json:"notes"`
	Active    bool       `json:"active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type PatientStats struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
}

func NewPatient(userID uuid.UUID, name string, email, phone, notes *string) (*Patient, error) {
	patient := &Patient{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Email:     email,
		Phone:     phone,
		Notes:     notes,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
	if err := patient.Validate(); err != nil {
		return nil, err
	}
	return patient, nil
}

// Validate normalizes and checks identity data. Name is trimmed in place and
// phone is reduced to its digits.
func (p *Patient) Validate() error {
	p.Name = strings.TrimSpace(p.Name)
	if len(p.Name) < 2 {
		return &ValidationError{Field: "name", Message: "name must have at least 2 characters"}
	}
	if len(p.Name) > 200 {
		return &ValidationError{Field: "name", Message: "name must have at most 200 characters"}
	}
	if p.Email != nil {
		trimmed := strings.TrimSpace(*p.Email)
		p.Email = &trimmed
		if trimmed != "" {
			if err := validatePatientEmail(trimmed); err != nil {
				return err
			}
		}
	}
	if p.Phone != nil && strings.TrimSpace(*p.Phone) != "" {
		normalized, err := normalizePhone(*p.Phone)
		if err != nil {
			return err
		}
		p.Phone = &normalized
	}
	return nil
}

// Deactivate soft-deletes the patient. Records are never hard-removed here.
func (p *Patient) Deactivate() {
	p.Active = false
	p.touch()
}

func (p *Patient) Activate() {
	p.Active = true
	p.touch()
}

func (p *Patient) touch() {
	now := time.Now().UTC()
	p.UpdatedAt = &now
}

func validatePatientEmail(email string) error {
	if len(email) > 255 {
		return &ValidationError{Field: "email", Message: "email must have at most 255 characters"}
	}
	at := strings.Index(email, "@")
	if at <= 0 || at != strings.LastIndex(email, "@") {
		return &ValidationError{Field: "email", Message: "invalid email format"}
	}
	if !strings.Contains(email[at+1:], ".") {
		return &ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

func normalizePhone(phone string) (string, error) {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	normalized := digits.String()
	if len(normalized) < 10 || len(normalized) > 15 {
		return "", &ValidationError{Field: "phone", Message: "phone must have between 10 and 15 digits"}
	}
	return normalized, nil
}
