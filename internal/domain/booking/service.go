package booking

import (
	"context"
	"time"

	"gigmatch/internal/domain/auth"
	"gigmatch/internal/platform/geo"
)

const (
	// geofenceRadiusKm bounds how far a clock-out may be from the recorded
	// clock-in point and still count as location-verified.
	geofenceRadiusKm = 1.0
	// verifiedBonusPoints is awarded when the geofence check passes.
	verifiedBonusPoints = 10
)

// Service owns the booking lifecycle. All writes go through conditional
// updates in the store, so concurrent attempts on the same booking resolve
// to exactly one successful transition per type.
type Service struct {
	store           StoreAPI
	defaultLocation Location
	now             func() time.Time
}

func NewService(store StoreAPI, defaultLocation Location) *Service {
	return &Service{store: store, defaultLocation: defaultLocation, now: time.Now}
}

// ClockIn transitions a confirmed booking to clocked_in, recording the
// device position verbatim. No geofence is enforced here; the recorded point
// becomes the reference for the clock-out check.
func (s *Service) ClockIn(ctx context.Context, sess auth.Session, bookingID string, loc Location, accuracy float64, proofImageRef string) (*ClockInResult, error) {
	if !sess.Valid() {
		return nil, ErrNoSession
	}

	bk, err := s.store.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	switch bk.Status {
	case StatusConfirmed:
	case StatusClockedIn:
		return nil, ErrAlreadyClockedIn
	default:
		return nil, ErrBookingNotConfirmed
	}

	shift, err := s.store.GetShift(ctx, bk.ShiftID)
	if err != nil {
		return nil, networkError("shift not found", err)
	}

	earnings := ShiftEarnings(*shift)
	now := s.now().UTC()

	applied, err := s.store.ApplyClockIn(ctx, bookingID, now, loc, accuracy, proofImageRef, earnings)
	if err != nil {
		return nil, networkError("clock-in write failed", err)
	}
	if !applied {
		// Lost the race: another request moved the booking first. Re-read
		// to report the precise conflict.
		return nil, s.clockInConflict(ctx, bookingID)
	}

	updated, err := s.store.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, networkError("booking re-read failed", err)
	}

	return &ClockInResult{
		Booking:       *updated,
		EarningsSoFar: earnings,
		Message:       "clocked in",
	}, nil
}

// ClockOut completes a clocked-in booking. The current device location is
// optional; without one the configured default location stands in so the
// operation never fails on a missing fix. Earnings cover the shift's full
// scheduled hours, matching how bookings are priced per shift.
func (s *Service) ClockOut(ctx context.Context, sess auth.Session, bookingID string, loc *Location) (*ClockOutResult, error) {
	if !sess.Valid() {
		return nil, ErrNoSession
	}

	bk, err := s.store.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if bk.ClockInTime == nil {
		return nil, ErrNotClockedIn
	}
	if bk.ClockOutTime != nil {
		return nil, ErrAlreadyClockedOut
	}

	shift, err := s.store.GetShift(ctx, bk.ShiftID)
	if err != nil {
		return nil, networkError("shift not found", err)
	}

	current := s.defaultLocation
	if loc != nil {
		current = *loc
	}

	verified := false
	if bk.ClockInLocation != nil {
		distance := geo.DistanceKm(bk.ClockInLocation.Lat, bk.ClockInLocation.Lng, current.Lat, current.Lng)
		verified = distance <= geofenceRadiusKm
	}

	earnings := ShiftEarnings(*shift)
	bonus := 0
	if verified {
		bonus = verifiedBonusPoints
	}
	now := s.now().UTC()

	applied, err := s.store.ApplyClockOut(ctx, bookingID, now, current, verified, earnings, bonus)
	if err != nil {
		return nil, networkError("clock-out write failed", err)
	}
	if !applied {
		return nil, s.clockOutConflict(ctx, bookingID)
	}

	updated, err := s.store.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, networkError("booking re-read failed", err)
	}

	return &ClockOutResult{
		Booking:       *updated,
		FinalPayment:  earnings,
		BonusPoints:   bonus,
		TotalEarnings: earnings,
		Message:       "clocked out",
	}, nil
}

// GetBooking exposes the current booking record for display.
func (s *Service) GetBooking(ctx context.Context, sess auth.Session, bookingID string) (*Booking, error) {
	if !sess.Valid() {
		return nil, ErrNoSession
	}
	return s.store.GetBooking(ctx, bookingID)
}

func (s *Service) clockInConflict(ctx context.Context, bookingID string) error {
	bk, err := s.store.GetBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	if bk.Status == StatusClockedIn || bk.ClockInTime != nil {
		return ErrAlreadyClockedIn
	}
	return ErrBookingNotConfirmed
}

func (s *Service) clockOutConflict(ctx context.Context, bookingID string) error {
	bk, err := s.store.GetBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	if bk.ClockOutTime != nil {
		return ErrAlreadyClockedOut
	}
	if bk.ClockInTime == nil {
		return ErrNotClockedIn
	}
	return networkError("clock-out not applied", nil)
}
