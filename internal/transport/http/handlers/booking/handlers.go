package bookinghandler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"gigmatch/internal/domain/audit"
	"gigmatch/internal/domain/auth"
	"gigmatch/internal/domain/booking"
	"gigmatch/internal/platform/metrics"
	"gigmatch/internal/transport/http/api"
	"gigmatch/internal/transport/http/middleware"
	"gigmatch/internal/transport/http/shared"
)

type Service interface {
	ClockIn(ctx context.Context, sess auth.Session, bookingID string, loc booking.Location, accuracy float64, proofImageRef string) (*booking.ClockInResult, error)
	ClockOut(ctx context.Context, sess auth.Session, bookingID string, loc *booking.Location) (*booking.ClockOutResult, error)
	GetBooking(ctx context.Context, sess auth.Session, bookingID string) (*booking.Booking, error)
	GenerateReceiptPDF(ctx context.Context, sess auth.Session, bookingID string) (string, error)
}

type Handler struct {
	Service Service
	Audit   *audit.Service
	Metrics *metrics.Collector
}

func NewHandler(service Service, auditSvc *audit.Service, collector *metrics.Collector) *Handler {
	return &Handler{Service: service, Audit: auditSvc, Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/bookings", func(r chi.Router) {
		r.Get("/{bookingID}", h.handleGet)
		r.Post("/{bookingID}/clock-in", h.handleClockIn)
		r.Post("/{bookingID}/clock-out", h.handleClockOut)
		r.Get("/{bookingID}/receipt", h.handleReceipt)
	})
}

type clockInPayload struct {
	Lat           float64 `json:"lat" validate:"latitude"`
	Lng           float64 `json:"lng" validate:"longitude"`
	Accuracy      float64 `json:"accuracy" validate:"gte=0"`
	ProofImageRef string  `json:"proofImageRef"`
}

type clockOutPayload struct {
	Lat *float64 `json:"lat,omitempty"`
	Lng *float64 `json:"lng,omitempty"`
}

func (h *Handler) handleClockIn(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	sess, _ := middleware.GetSession(r.Context())
	bookingID := chi.URLParam(r, "bookingID")

	var payload clockInPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	if shared.Reject(w, requestID, payload) {
		return
	}

	result, err := h.Service.ClockIn(r.Context(), sess, bookingID,
		booking.Location{Lat: payload.Lat, Lng: payload.Lng}, payload.Accuracy, payload.ProofImageRef)
	if err != nil {
		h.failBooking(w, err, requestID)
		return
	}

	if h.Metrics != nil {
		h.Metrics.RecordClockIn()
	}
	h.record(r, sess, "booking.clock_in", bookingID, map[string]any{
		"earningsSoFar": result.EarningsSoFar,
	})
	api.Success(w, result, requestID)
}

func (h *Handler) handleClockOut(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	sess, _ := middleware.GetSession(r.Context())
	bookingID := chi.URLParam(r, "bookingID")

	var payload clockOutPayload
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
			return
		}
	}

	var loc *booking.Location
	if payload.Lat != nil && payload.Lng != nil {
		loc = &booking.Location{Lat: *payload.Lat, Lng: *payload.Lng}
	}

	result, err := h.Service.ClockOut(r.Context(), sess, bookingID, loc)
	if err != nil {
		h.failBooking(w, err, requestID)
		return
	}

	if h.Metrics != nil {
		h.Metrics.RecordClockOut()
	}
	h.record(r, sess, "booking.clock_out", bookingID, map[string]any{
		"totalEarnings":    result.TotalEarnings,
		"bonusPoints":      result.BonusPoints,
		"locationVerified": result.Booking.LocationVerified,
	})
	api.Success(w, result, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	sess, _ := middleware.GetSession(r.Context())

	bk, err := h.Service.GetBooking(r.Context(), sess, chi.URLParam(r, "bookingID"))
	if err != nil {
		h.failBooking(w, err, requestID)
		return
	}
	api.Success(w, bk, requestID)
}

func (h *Handler) handleReceipt(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	sess, _ := middleware.GetSession(r.Context())

	path, err := h.Service.GenerateReceiptPDF(r.Context(), sess, chi.URLParam(r, "bookingID"))
	if errors.Is(err, booking.ErrReceiptNotReady) {
		api.Fail(w, http.StatusConflict, "receipt_not_ready", "booking is not completed", requestID)
		return
	}
	if err != nil {
		h.failBooking(w, err, requestID)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	http.ServeFile(w, r, path)
}

func (h *Handler) failBooking(w http.ResponseWriter, err error, requestID string) {
	switch {
	case errors.Is(err, booking.ErrNoSession):
		api.Fail(w, http.StatusUnauthorized, "no_session", "authentication required", requestID)
	case errors.Is(err, booking.ErrBookingNotFound):
		api.Fail(w, http.StatusNotFound, "booking_not_found", "booking not found", requestID)
	case errors.Is(err, booking.ErrAlreadyClockedIn):
		h.conflict(w, "already_clocked_in", "booking is already clocked in", requestID)
	case errors.Is(err, booking.ErrAlreadyClockedOut):
		h.conflict(w, "already_clocked_out", "booking is already clocked out", requestID)
	case errors.Is(err, booking.ErrNotClockedIn):
		h.conflict(w, "not_clocked_in", "booking has not been clocked in", requestID)
	case errors.Is(err, booking.ErrBookingNotConfirmed):
		h.conflict(w, "booking_not_confirmed", "booking is not confirmed", requestID)
	case booking.IsNetworkError(err):
		slog.Warn("booking operation failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusBadGateway, "network_error", "temporary failure, retry later", requestID)
	default:
		slog.Error("booking operation failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "booking_failed", "booking operation failed", requestID)
	}
}

func (h *Handler) conflict(w http.ResponseWriter, code, message, requestID string) {
	if h.Metrics != nil {
		h.Metrics.RecordClockConflict()
	}
	api.Fail(w, http.StatusConflict, code, message, requestID)
}

func (h *Handler) record(r *http.Request, sess auth.Session, action, bookingID string, details any) {
	if h.Audit == nil {
		return
	}
	requestID := middleware.GetRequestID(r.Context())
	if err := h.Audit.Record(r.Context(), sess.UserID, action, "booking", bookingID, requestID, middleware.ClientIP(r), details); err != nil {
		slog.Warn("audit record failed", "action", action, "err", err)
	}
}
