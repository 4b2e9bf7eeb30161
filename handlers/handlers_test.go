package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"medibook/models"
	"medibook/services"
	"medibook/services/availability"
	"medibook/services/booking"
	"medibook/services/credits"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRespondErrorStatus(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"configuration", availability.NewConfigurationError(availability.CodeNotConfigured, "no window"), http.StatusPreconditionFailed},
		{"wrapped configuration", fmt.Errorf("slots: %w", availability.NewConfigurationError(availability.CodeUnavailable, "off")), http.StatusPreconditionFailed},
		{"validation", services.NewValidationError("field", "bad"), http.StatusBadRequest},
		{"invalid slot", fmt.Errorf("%w: misaligned", availability.ErrInvalidSlot), http.StatusBadRequest},
		{"bad signature", credits.ErrInvalidSignature, http.StatusBadRequest},
		{"not found", fmt.Errorf("%w: appointment", services.ErrNotFound), http.StatusNotFound},
		{"doctor not found", availability.ErrDoctorNotFound, http.StatusNotFound},
		{"forbidden", services.ErrForbidden, http.StatusForbidden},
		{"slot taken", booking.ErrSlotTaken, http.StatusConflict},
		{"conflict", fmt.Errorf("%w: %w", services.ErrConflict, booking.ErrNotFinished), http.StatusConflict},
		{"credits", services.ErrInsufficientCredits, http.StatusPaymentRequired},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			ctx, _ := gin.CreateTestContext(w)
			ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			respondError(ctx, c.err)
			if w.Code != c.status {
				t.Errorf("status = %d, want %d", w.Code, c.status)
			}
		})
	}
}

type stubAvailability struct {
	resp *models.DoctorSlotsResponse
	err  error
	days int
}

func (s *stubAvailability) DoctorSlots(_ context.Context, _ string, days int) (*models.DoctorSlotsResponse, error) {
	s.days = days
	return s.resp, s.err
}

func (s *stubAvailability) CheckSlot(context.Context, string, time.Time, time.Time) error { return nil }

func TestDoctorSlotsHandler(t *testing.T) {
	ok := &models.DoctorSlotsResponse{DoctorID: "doc-1", TimeZone: "UTC", Days: []models.DaySlots{}}
	cases := []struct {
		name     string
		query    string
		stub     *stubAvailability
		status   int
		wantDays int
		wantCode string
	}{
		{"default days", "", &stubAvailability{resp: ok}, http.StatusOK, 0, ""},
		{"explicit days", "?days=7", &stubAvailability{resp: ok}, http.StatusOK, 7, ""},
		{"bad days", "?days=abc", &stubAvailability{resp: ok}, http.StatusBadRequest, 0, ""},
		{"too many days", "?days=30", &stubAvailability{resp: ok}, http.StatusBadRequest, 0, ""},
		{"not configured", "", &stubAvailability{err: availability.NewConfigurationError(availability.CodeNotConfigured, "doctor has not set availability")}, http.StatusPreconditionFailed, 0, availability.CodeNotConfigured},
		{"unknown doctor", "", &stubAvailability{err: availability.ErrDoctorNotFound}, http.StatusNotFound, 0, ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := NewDoctorHandler(nil, c.stub)
			router := gin.New()
			router.GET("/api/doctors/:id/slots", h.DoctorSlotsHandler)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/doctors/doc-1/slots"+c.query, nil))
			if w.Code != c.status {
				t.Fatalf("status = %d, want %d: %s", w.Code, c.status, w.Body.String())
			}
			if c.status == http.StatusOK && c.stub.days != c.wantDays {
				t.Errorf("days = %d, want %d", c.stub.days, c.wantDays)
			}
			if c.wantCode != "" {
				var body struct {
					Code string `json:"code"`
				}
				_ = json.Unmarshal(w.Body.Bytes(), &body)
				if body.Code != c.wantCode {
					t.Errorf("code = %q, want %q", body.Code, c.wantCode)
				}
			}
		})
	}
}

type stubBookings struct {
	booking.BookingService
	err error
}

func (s *stubBookings) Book(_ context.Context, patientID string, req models.BookAppointmentRequest) (*models.Appointment, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.Appointment{ID: "appt-1", PatientID: patientID, DoctorID: req.DoctorID, StartTime: req.StartTime, EndTime: req.EndTime, Status: models.AppointmentScheduled}, nil
}

func TestBookAppointmentHandler(t *testing.T) {
	start := time.Date(2030, 1, 7, 9, 0, 0, 0, time.UTC)
	valid, _ := json.Marshal(models.BookAppointmentRequest{DoctorID: "doc-1", StartTime: start, EndTime: start.Add(30 * time.Minute)})
	cases := []struct {
		name   string
		body   []byte
		err    error
		status int
	}{
		{"booked", valid, nil, http.StatusCreated},
		{"malformed", []byte(`{"doctorId":`), nil, http.StatusBadRequest},
		{"taken", valid, booking.ErrSlotTaken, http.StatusConflict},
		{"broke", valid, services.ErrInsufficientCredits, http.StatusPaymentRequired},
		{"not configured", valid, availability.NewConfigurationError(availability.CodeNotConfigured, "none"), http.StatusPreconditionFailed},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := NewAppointmentHandler(&stubBookings{err: c.err})
			router := gin.New()
			router.POST("/api/appointments", func(ctx *gin.Context) {
				ctx.Set("user", &models.User{ID: "patient-1", Role: models.RolePatient})
			}, h.BookAppointmentHandler)

			req := httptest.NewRequest(http.MethodPost, "/api/appointments", bytes.NewReader(c.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != c.status {
				t.Fatalf("status = %d, want %d: %s", w.Code, c.status, w.Body.String())
			}
		})
	}
}

type stubCredits struct {
	credits.CreditService
	payload   []byte
	signature string
	err       error
}

func (s *stubCredits) HandleWebhook(_ context.Context, payload []byte, signature string) error {
	s.payload, s.signature = payload, signature
	return s.err
}

func TestWebhookHandlerPassesRawBody(t *testing.T) {
	for _, c := range []struct {
		err    error
		status int
	}{
		{nil, http.StatusOK},
		{fmt.Errorf("%w: bad", credits.ErrInvalidSignature), http.StatusBadRequest},
	} {
		stub := &stubCredits{err: c.err}
		router := gin.New()
		router.POST("/webhook", NewCreditHandler(stub).WebhookHandler)

		body := []byte(`{"id":"evt_1","type":"payment_intent.succeeded"}`)
		req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(body))
		req.Header.Set("Stripe-Signature", "t=1,v1=abc")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != c.status {
			t.Errorf("status = %d, want %d", w.Code, c.status)
		}
		if !bytes.Equal(stub.payload, body) || stub.signature != "t=1,v1=abc" {
			t.Errorf("handler must forward the raw body and signature, got %q %q", stub.payload, stub.signature)
		}
	}
}
