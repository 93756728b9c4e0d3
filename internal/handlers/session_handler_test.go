package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/mrodcosta/PsiPraticaBack/internal/models"
	"github.com/mrodcosta/PsiPraticaBack/internal/repository"
	"github.com/mrodcosta/PsiPraticaBack/internal/services"
	"github.com/shopspring/decimal"
)

type stubSessionService struct {
	scheduleResult *models.Session
	scheduleErr    error
	statusResult   *services.StatusUpdateResult
	statusErr      error
	gotUserID      uuid.UUID
	gotSessionID   uuid.UUID
	gotStatus      models.SessionStatus
	gotInput       services.ScheduleSessionInput
}

func (s *stubSessionService) Schedule(_ context.Context, userID uuid.UUID, input services.ScheduleSessionInput) (*models.Session, error) {
	s.gotUserID = userID
	s.gotInput = input
	return s.scheduleResult, s.scheduleErr
}

func (s *stubSessionService) Update(_ context.Context, _, _ uuid.UUID, _ services.UpdateSessionInput) (*models.Session, error) {
	return nil, nil
}

func (s *stubSessionService) Get(_ context.Context, _, _ uuid.UUID) (*models.Session, error) {
	return nil, nil
}

func (s *stubSessionService) List(_ context.Context, _ repository.SessionListFilter) ([]models.Session, error) {
	return nil, nil
}

func (s *stubSessionService) UpdateStatus(_ context.Context, userID, sessionID uuid.UUID, newStatus models.SessionStatus, _ *string) (*services.StatusUpdateResult, error) {
	s.gotUserID = userID
	s.gotSessionID = sessionID
	s.gotStatus = newStatus
	return s.statusResult, s.statusErr
}

func newSessionTestApp(service *stubSessionService, userID uuid.UUID) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", userID.String())
		return c.Next()
	})
	handler := &SessionHandler{service: service}
	app.Post("/sessions", handler.Schedule)
	app.Put("/sessions/:id/status", handler.UpdateStatus)
	return app
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestScheduleSessionReturnsCreated(t *testing.T) {
	userID := uuid.New()
	patientID := uuid.New()
	session, err := models.NewSession(userID, patientID, time.Now().Add(24*time.Hour), decimal.RequireFromString("150.00"), 50, nil)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	service := &stubSessionService{scheduleResult: session}
	app := newSessionTestApp(service, userID)

	req := jsonRequest(t, http.MethodPost, "/sessions", fiber.Map{
		"patient_id": patientID.String(),
		"date_time":  session.DateTime.Format(time.RFC3339),
		"price":      "150.00",
	})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}

	if resp.StatusCode != fiber.StatusCreated {
		t.Errorf("expected 201, got %d", resp.StatusCode)
	}
	if service.gotUserID != userID {
		t.Error("handler did not pass the authenticated user")
	}
	if service.gotInput.PatientID != patientID {
		t.Error("handler did not pass the parsed patient id")
	}
}

func TestScheduleSessionRejectsBadPatientID(t *testing.T) {
	app := newSessionTestApp(&stubSessionService{}, uuid.New())

	req := jsonRequest(t, http.MethodPost, "/sessions", fiber.Map{
		"patient_id": "not-a-uuid",
		"date_time":  time.Now().Format(time.RFC3339),
	})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}

	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestUpdateStatusNormalizesAndForwards(t *testing.T) {
	userID := uuid.New()
	sessionID := uuid.New()
	entryID := uuid.New()
	amount := decimal.RequireFromString("150.00")
	service := &stubSessionService{statusResult: &services.StatusUpdateResult{
		SessionID:            sessionID,
		PreviousStatus:       models.SessionScheduled,
		NewStatus:            models.SessionCompleted,
		FinancialEntryID:     &entryID,
		FinancialEntryAmount: &amount,
	}}
	app := newSessionTestApp(service, userID)

	req := jsonRequest(t, http.MethodPut, "/sessions/"+sessionID.String()+"/status", fiber.Map{
		"status": "  Completed ",
	})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}

	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if service.gotStatus != models.SessionCompleted {
		t.Errorf("expected normalized status completed, got %q", service.gotStatus)
	}
	if service.gotSessionID != sessionID {
		t.Error("handler did not pass the session id")
	}

	var body struct {
		Result services.StatusUpdateResult `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Result.FinancialEntryID == nil || *body.Result.FinancialEntryID != entryID {
		t.Error("response missing the financial entry id")
	}
}

func TestUpdateStatusErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", &models.NotFoundError{Resource: "session"}, fiber.StatusNotFound},
		{"business rule", &models.BusinessRuleError{Rule: "closed"}, fiber.StatusConflict},
		{"validation", &models.ValidationError{Field: "status", Message: "unknown"}, fiber.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &stubSessionService{statusErr: tt.err}
			app := newSessionTestApp(service, uuid.New())

			req := jsonRequest(t, http.MethodPut, "/sessions/"+uuid.NewString()+"/status", fiber.Map{
				"status": "completed",
			})
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}

			if resp.StatusCode != tt.want {
				t.Errorf("expected %d, got %d", tt.want, resp.StatusCode)
			}
		})
	}
}

func TestUpdateStatusRejectsBadSessionID(t *testing.T) {
	app := newSessionTestApp(&stubSessionService{}, uuid.New())

	req := jsonRequest(t, http.MethodPut, "/sessions/nope/status", fiber.Map{"status": "completed"})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}

	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}
