package booking

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"gigmatch/internal/domain/auth"
)

const kmPerDegreeLat = 6371 * math.Pi / 180

var testSession = auth.Session{UserID: "user-1", Role: auth.RoleWorker, SubjectID: "worker-1"}

type fakeStore struct {
	mu       sync.Mutex
	booking  *Booking
	shift    *Shift
	shiftErr error
	writeErr error
}

func (f *fakeStore) GetBooking(_ context.Context, bookingID string) (*Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.booking == nil || f.booking.ID != bookingID {
		return nil, ErrBookingNotFound
	}
	copied := *f.booking
	return &copied, nil
}

func (f *fakeStore) GetShift(_ context.Context, _ string) (*Shift, error) {
	if f.shiftErr != nil {
		return nil, f.shiftErr
	}
	copied := *f.shift
	return &copied, nil
}

func (f *fakeStore) ApplyClockIn(_ context.Context, bookingID string, at time.Time, loc Location, accuracy float64, proofImageRef string, earnings float64) (bool, error) {
	if f.writeErr != nil {
		return false, f.writeErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.booking == nil || f.booking.ID != bookingID || f.booking.Status != StatusConfirmed {
		return false, nil
	}
	f.booking.Status = StatusClockedIn
	f.booking.ClockInTime = &at
	f.booking.ClockInLocation = &Location{Lat: loc.Lat, Lng: loc.Lng}
	f.booking.ClockInAccuracy = &accuracy
	f.booking.ProofImageRef = proofImageRef
	f.booking.TotalEarnings = earnings
	return true, nil
}

func (f *fakeStore) ApplyClockOut(_ context.Context, bookingID string, at time.Time, loc Location, verified bool, totalEarnings float64, bonusPoints int) (bool, error) {
	if f.writeErr != nil {
		return false, f.writeErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.booking == nil || f.booking.ID != bookingID || f.booking.ClockInTime == nil || f.booking.ClockOutTime != nil {
		return false, nil
	}
	f.booking.Status = StatusCompleted
	f.booking.ClockOutTime = &at
	f.booking.ClockOutLocation = &Location{Lat: loc.Lat, Lng: loc.Lng}
	f.booking.LocationVerified = verified
	f.booking.TotalEarnings = totalEarnings
	f.booking.BonusPoints = bonusPoints
	return true, nil
}

func (f *fakeStore) ReceiptData(_ context.Context, _ string) (ReceiptData, error) {
	return ReceiptData{}, errors.New("not implemented")
}

func confirmedBooking() *Booking {
	return &Booking{
		ID:         "bk-1",
		ShiftID:    "shift-1",
		WorkerID:   "worker-1",
		BusinessID: "biz-1",
		Status:     StatusConfirmed,
	}
}

func standardShift() *Shift {
	return &Shift{
		ID:          "shift-1",
		JobID:       "job-1",
		StartTime:   "09:00",
		EndTime:     "17:00",
		RatePerHour: 20000,
	}
}

func TestClockInSuccess(t *testing.T) {
	store := &fakeStore{booking: confirmedBooking(), shift: standardShift()}
	svc := NewService(store, Location{})

	result, err := svc.ClockIn(context.Background(), testSession, "bk-1", Location{Lat: 6.9, Lng: 79.8}, 12.5, "proof.jpg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Booking.Status != StatusClockedIn {
		t.Fatalf("expected clocked_in, got %s", result.Booking.Status)
	}
	if result.Booking.ClockInTime == nil {
		t.Fatal("expected clock-in time to be recorded")
	}
	if result.EarningsSoFar != 160000 {
		t.Fatalf("expected scheduled-duration earnings 160000, got %v", result.EarningsSoFar)
	}
	if result.Booking.ClockInAccuracy == nil || *result.Booking.ClockInAccuracy != 12.5 {
		t.Fatal("expected accuracy to be recorded verbatim")
	}
}

func TestClockInNoSession(t *testing.T) {
	svc := NewService(&fakeStore{booking: confirmedBooking(), shift: standardShift()}, Location{})
	if _, err := svc.ClockIn(context.Background(), auth.Session{}, "bk-1", Location{}, 0, ""); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestClockInBookingNotFound(t *testing.T) {
	svc := NewService(&fakeStore{shift: standardShift()}, Location{})
	if _, err := svc.ClockIn(context.Background(), testSession, "missing", Location{}, 0, ""); !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound, got %v", err)
	}
}

func TestClockInWrongStatus(t *testing.T) {
	for _, status := range []string{StatusPending, StatusCompleted, StatusCancelled, StatusNoShow, StatusBlocked} {
		bk := confirmedBooking()
		bk.Status = status
		svc := NewService(&fakeStore{booking: bk, shift: standardShift()}, Location{})
		if _, err := svc.ClockIn(context.Background(), testSession, "bk-1", Location{}, 0, ""); !errors.Is(err, ErrBookingNotConfirmed) {
			t.Fatalf("status %s: expected ErrBookingNotConfirmed, got %v", status, err)
		}
	}
}

func TestClockInTwiceYieldsAlreadyClockedIn(t *testing.T) {
	store := &fakeStore{booking: confirmedBooking(), shift: standardShift()}
	svc := NewService(store, Location{})

	if _, err := svc.ClockIn(context.Background(), testSession, "bk-1", Location{}, 0, ""); err != nil {
		t.Fatalf("first clock-in failed: %v", err)
	}
	if _, err := svc.ClockIn(context.Background(), testSession, "bk-1", Location{}, 0, ""); !errors.Is(err, ErrAlreadyClockedIn) {
		t.Fatalf("expected ErrAlreadyClockedIn, got %v", err)
	}
}

// Concurrent duplicate taps resolve through the conditional write: exactly
// one transition succeeds, every other attempt reports the conflict.
func TestClockInConcurrentSingleTransition(t *testing.T) {
	store := &fakeStore{booking: confirmedBooking(), shift: standardShift()}
	svc := NewService(store, Location{})

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			_, errs[slot] = svc.ClockIn(context.Background(), testSession, "bk-1", Location{}, 0, "")
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrAlreadyClockedIn):
		default:
			t.Fatalf("unexpected error kind: %v", err)
		}
	}
	if successes != 1 {
		t.Fatalf("expected exactly one successful transition, got %d", successes)
	}
	if store.booking.Status != StatusClockedIn {
		t.Fatalf("expected final status clocked_in, got %s", store.booking.Status)
	}
}

func TestClockInShiftResolveFailure(t *testing.T) {
	store := &fakeStore{booking: confirmedBooking(), shiftErr: errors.New("connection refused")}
	svc := NewService(store, Location{})

	_, err := svc.ClockIn(context.Background(), testSession, "bk-1", Location{}, 0, "")
	if !IsNetworkError(err) {
		t.Fatalf("expected a network error, got %v", err)
	}
}

func clockedInStore(clockInLoc Location) *fakeStore {
	bk := confirmedBooking()
	now := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	bk.Status = StatusClockedIn
	bk.ClockInTime = &now
	bk.ClockInLocation = &clockInLoc
	return &fakeStore{booking: bk, shift: standardShift()}
}

func TestClockOutSuccessWithinGeofence(t *testing.T) {
	store := clockedInStore(Location{Lat: 0, Lng: 0})
	svc := NewService(store, Location{})

	near := &Location{Lat: 0.999 / kmPerDegreeLat, Lng: 0}
	result, err := svc.ClockOut(context.Background(), testSession, "bk-1", near)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Booking.LocationVerified {
		t.Fatal("expected location to verify inside 1.0km")
	}
	if result.BonusPoints != 10 {
		t.Fatalf("expected 10 bonus points, got %d", result.BonusPoints)
	}
	if result.FinalPayment != 160000 || result.TotalEarnings != 160000 {
		t.Fatalf("expected scheduled earnings 160000, got %v/%v", result.FinalPayment, result.TotalEarnings)
	}
	if result.Booking.Status != StatusCompleted {
		t.Fatalf("expected completed, got %s", result.Booking.Status)
	}
}

func TestClockOutBeyondGeofence(t *testing.T) {
	store := clockedInStore(Location{Lat: 0, Lng: 0})
	svc := NewService(store, Location{})

	far := &Location{Lat: 1.01 / kmPerDegreeLat, Lng: 0}
	result, err := svc.ClockOut(context.Background(), testSession, "bk-1", far)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Booking.LocationVerified {
		t.Fatal("expected verification to fail beyond 1.0km")
	}
	if result.BonusPoints != 0 {
		t.Fatalf("expected no bonus, got %d", result.BonusPoints)
	}
}

func TestClockOutFallsBackToDefaultLocation(t *testing.T) {
	store := clockedInStore(Location{Lat: 6.9271, Lng: 79.8612})
	svc := NewService(store, Location{Lat: 6.9271, Lng: 79.8612})

	result, err := svc.ClockOut(context.Background(), testSession, "bk-1", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Booking.LocationVerified {
		t.Fatal("expected default location to verify against the clock-in point")
	}
}

func TestClockOutRequiresClockIn(t *testing.T) {
	for _, status := range []string{StatusPending, StatusConfirmed} {
		bk := confirmedBooking()
		bk.Status = status
		svc := NewService(&fakeStore{booking: bk, shift: standardShift()}, Location{})
		if _, err := svc.ClockOut(context.Background(), testSession, "bk-1", nil); !errors.Is(err, ErrNotClockedIn) {
			t.Fatalf("status %s: expected ErrNotClockedIn, got %v", status, err)
		}
	}
}

func TestClockOutTwiceYieldsAlreadyClockedOut(t *testing.T) {
	store := clockedInStore(Location{Lat: 0, Lng: 0})
	svc := NewService(store, Location{})

	if _, err := svc.ClockOut(context.Background(), testSession, "bk-1", &Location{}); err != nil {
		t.Fatalf("first clock-out failed: %v", err)
	}
	if _, err := svc.ClockOut(context.Background(), testSession, "bk-1", &Location{}); !errors.Is(err, ErrAlreadyClockedOut) {
		t.Fatalf("expected ErrAlreadyClockedOut, got %v", err)
	}
}

func TestClockOutNoSession(t *testing.T) {
	svc := NewService(clockedInStore(Location{}), Location{})
	if _, err := svc.ClockOut(context.Background(), auth.Session{}, "bk-1", nil); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestClockOutWriteFailureIsNetworkError(t *testing.T) {
	store := clockedInStore(Location{})
	store.writeErr = errors.New("connection reset")
	svc := NewService(store, Location{})

	_, err := svc.ClockOut(context.Background(), testSession, "bk-1", &Location{})
	if !IsNetworkError(err) {
		t.Fatalf("expected a network error, got %v", err)
	}
}
