package bookinghandler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"gigmatch/internal/domain/auth"
	"gigmatch/internal/domain/booking"
)

type stubService struct {
	clockInResult  *booking.ClockInResult
	clockOutResult *booking.ClockOutResult
	booking        *booking.Booking
	err            error
}

func (s *stubService) ClockIn(_ context.Context, _ auth.Session, _ string, _ booking.Location, _ float64, _ string) (*booking.ClockInResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.clockInResult, nil
}

func (s *stubService) ClockOut(_ context.Context, _ auth.Session, _ string, _ *booking.Location) (*booking.ClockOutResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.clockOutResult, nil
}

func (s *stubService) GetBooking(_ context.Context, _ auth.Session, _ string) (*booking.Booking, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.booking, nil
}

func (s *stubService) GenerateReceiptPDF(_ context.Context, _ auth.Session, _ string) (string, error) {
	return "", s.err
}

func newRouter(svc Service) *chi.Mux {
	router := chi.NewRouter()
	NewHandler(svc, nil, nil).RegisterRoutes(router)
	return router
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body %s)", err, rec.Body.String())
	}
	return rec, env
}

func TestClockInSuccessResponse(t *testing.T) {
	svc := &stubService{clockInResult: &booking.ClockInResult{
		Booking:       booking.Booking{ID: "bk-1", Status: booking.StatusClockedIn},
		EarningsSoFar: 160000,
		Message:       "clocked in",
	}}
	rec, env := doJSON(t, newRouter(svc), http.MethodPost, "/bookings/bk-1/clock-in",
		map[string]any{"lat": 6.9271, "lng": 79.8612, "accuracy": 10.0})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	if !env.Success {
		t.Fatal("expected success envelope")
	}

	var result booking.ClockInResult
	if err := json.Unmarshal(env.Data, &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.EarningsSoFar != 160000 {
		t.Fatalf("expected earningsSoFar 160000, got %v", result.EarningsSoFar)
	}
}

func TestClockInInvalidCoordinates(t *testing.T) {
	rec, env := doJSON(t, newRouter(&stubService{}), http.MethodPost, "/bookings/bk-1/clock-in",
		map[string]any{"lat": 200.0, "lng": 79.8612})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if env.Error == nil || env.Error.Code != "validation_error" {
		t.Fatalf("expected validation_error, got %+v", env.Error)
	}
}

func TestBookingErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"no session", booking.ErrNoSession, http.StatusUnauthorized, "no_session"},
		{"not found", booking.ErrBookingNotFound, http.StatusNotFound, "booking_not_found"},
		{"already clocked in", booking.ErrAlreadyClockedIn, http.StatusConflict, "already_clocked_in"},
		{"already clocked out", booking.ErrAlreadyClockedOut, http.StatusConflict, "already_clocked_out"},
		{"not clocked in", booking.ErrNotClockedIn, http.StatusConflict, "not_clocked_in"},
		{"not confirmed", booking.ErrBookingNotConfirmed, http.StatusConflict, "booking_not_confirmed"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			router := newRouter(&stubService{err: tc.err})
			rec, env := doJSON(t, router, http.MethodPost, "/bookings/bk-1/clock-in",
				map[string]any{"lat": 6.9, "lng": 79.8})

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d", tc.wantStatus, rec.Code)
			}
			if env.Error == nil || env.Error.Code != tc.wantCode {
				t.Fatalf("expected code %s, got %+v", tc.wantCode, env.Error)
			}
		})
	}
}

func TestClockOutWithoutBody(t *testing.T) {
	svc := &stubService{clockOutResult: &booking.ClockOutResult{
		Booking:       booking.Booking{ID: "bk-1", Status: booking.StatusCompleted},
		FinalPayment:  160000,
		TotalEarnings: 160000,
		BonusPoints:   10,
	}}
	req := httptest.NewRequest(http.MethodPost, "/bookings/bk-1/clock-out", nil)
	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for bodyless clock-out, got %d (%s)", rec.Code, rec.Body.String())
	}
}

func TestClockOutNetworkErrorIsBadGateway(t *testing.T) {
	router := newRouter(&stubService{err: &booking.NetworkError{Message: "shift not found"}})
	rec, env := doJSON(t, router, http.MethodPost, "/bookings/bk-1/clock-out", map[string]any{})

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	if env.Error == nil || env.Error.Code != "network_error" {
		t.Fatalf("expected network_error, got %+v", env.Error)
	}
}

func TestGetBooking(t *testing.T) {
	svc := &stubService{booking: &booking.Booking{ID: "bk-1", Status: booking.StatusConfirmed}}
	req := httptest.NewRequest(http.MethodGet, "/bookings/bk-1", nil)
	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
