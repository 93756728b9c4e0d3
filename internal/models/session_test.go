package models

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func newScheduledSession(t *testing.T) *Session {
	t.Helper()
	session, err := NewSession(
		uuid.New(),
		uuid.New(),
		time.Date(2025, 12, 1, 10, 0, 0, 0, time.UTC),
		decimal.RequireFromString("150.00"),
		0,
		nil,
	)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return session
}

func TestNewSessionDefaultsDuration(t *testing.T) {
	session := newScheduledSession(t)

	if session.DurationMinutes != DefaultSessionDuration {
		t.Errorf("expected default duration %d, got %d", DefaultSessionDuration, session.DurationMinutes)
	}
	if session.Status != SessionScheduled {
		t.Errorf("expected status scheduled, got %q", session.Status)
	}
}

func TestNewSessionValidation(t *testing.T) {
	longNotes := strings.Repeat("a", 2001)

	tests := []struct {
		name     string
		price    string
		duration int
		notes    *string
		field    string
	}{
		{"negative price", "-1.00", 50, nil, "price"},
		{"price above cap", "10000.01", 50, nil, "price"},
		{"negative duration", "100.00", -1, nil, "duration_minutes"},
		{"duration above cap", "100.00", 481, nil, "duration_minutes"},
		{"notes too long", "100.00", 50, &longNotes, "notes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSession(uuid.New(), uuid.New(), time.Now(), decimal.RequireFromString(tt.price), tt.duration, tt.notes)

			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if validationErr.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, validationErr.Field)
			}
		})
	}
}

func TestSessionTransitionsFromScheduled(t *testing.T) {
	tests := []struct {
		name       string
		transition func(*Session) error
		want       SessionStatus
	}{
		{"complete", (*Session).Complete, SessionCompleted},
		{"cancel", (*Session).Cancel, SessionCancelled},
		{"no show", (*Session).MarkNoShow, SessionNoShow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := newScheduledSession(t)

			if err := tt.transition(session); err != nil {
				t.Fatalf("transition from scheduled: %v", err)
			}
			if session.Status != tt.want {
				t.Errorf("expected status %q, got %q", tt.want, session.Status)
			}
			if session.UpdatedAt == nil {
				t.Error("expected UpdatedAt to be set after transition")
			}
		})
	}
}

func TestSessionTerminalStatesRejectTransitions(t *testing.T) {
	terminal := []func(*Session) error{
		(*Session).Complete,
		(*Session).Cancel,
		(*Session).MarkNoShow,
	}

	for _, enter := range terminal {
		session := newScheduledSession(t)
		if err := enter(session); err != nil {
			t.Fatalf("entering terminal state: %v", err)
		}
		was := session.Status

		for _, attempt := range terminal {
			err := attempt(session)

			var ruleErr *BusinessRuleError
			if !errors.As(err, &ruleErr) {
				t.Fatalf("expected business rule error from %q, got %v", was, err)
			}
			if session.Status != was {
				t.Errorf("status changed from %q to %q on rejected transition", was, session.Status)
			}
		}
	}
}

func TestRescheduleMovesScheduledSession(t *testing.T) {
	session := newScheduledSession(t)
	newTime := session.DateTime.AddDate(0, 0, 7)

	if err := session.Reschedule(newTime); err != nil {
		t.Fatalf("Reschedule: %v", err)
	}
	if !session.DateTime.Equal(newTime) {
		t.Errorf("expected date %v, got %v", newTime, session.DateTime)
	}
}

func TestRescheduleRejectsClosedSession(t *testing.T) {
	session := newScheduledSession(t)
	if err := session.Complete(); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	err := session.Reschedule(time.Now().Add(time.Hour))

	var ruleErr *BusinessRuleError
	if !errors.As(err, &ruleErr) {
		t.Fatalf("expected business rule error, got %v", err)
	}
}

func TestRescheduleRejectsDistantPast(t *testing.T) {
	session := newScheduledSession(t)

	err := session.Reschedule(time.Now().UTC().AddDate(-1, 0, -1))

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if validationErr.Field != "date_time" {
		t.Errorf("expected field date_time, got %q", validationErr.Field)
	}
}
