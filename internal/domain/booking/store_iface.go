package booking

import (
	"context"
	"time"
)

type StoreAPI interface {
	GetBooking(ctx context.Context, bookingID string) (*Booking, error)
	GetShift(ctx context.Context, shiftID string) (*Shift, error)

	// ApplyClockIn performs the conditional clocked_in transition. It
	// returns false without error when the booking was not in confirmed
	// state at write time, leaving the row untouched.
	ApplyClockIn(ctx context.Context, bookingID string, at time.Time, loc Location, accuracy float64, proofImageRef string, earnings float64) (bool, error)

	// ApplyClockOut performs the conditional completed transition, guarded
	// on a recorded clock-in and no prior clock-out.
	ApplyClockOut(ctx context.Context, bookingID string, at time.Time, loc Location, verified bool, totalEarnings float64, bonusPoints int) (bool, error)

	ReceiptData(ctx context.Context, bookingID string) (ReceiptData, error)
}
