package booking

import "time"

const (
	StatusPending    = "pending"
	StatusConfirmed  = "confirmed"
	StatusClockedIn  = "clocked_in"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
	StatusNoShow     = "no_show"
	StatusBlocked    = "blocked"
)

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Booking tracks a single worker's assignment to a shift through the
// clock-in/clock-out lifecycle. Rows are never deleted, only transitioned.
type Booking struct {
	ID               string     `json:"id"`
	ShiftID          string     `json:"shiftId"`
	WorkerID         string     `json:"workerId"`
	BusinessID       string     `json:"businessId"`
	Status           string     `json:"status"`
	ClockInTime      *time.Time `json:"clockInTime,omitempty"`
	ClockOutTime     *time.Time `json:"clockOutTime,omitempty"`
	ClockInLocation  *Location  `json:"clockInLocation,omitempty"`
	ClockOutLocation *Location  `json:"clockOutLocation,omitempty"`
	ClockInAccuracy  *float64   `json:"clockInAccuracy,omitempty"`
	LocationVerified bool       `json:"locationVerified"`
	ProofImageRef    string     `json:"proofImageRef,omitempty"`
	TotalEarnings    float64    `json:"totalEarnings"`
	BonusPoints      int        `json:"bonusPoints"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// Shift is the immutable time/rate template a booking is instantiated
// against. StartTime/EndTime are "HH:MM" times of day.
type Shift struct {
	ID              string    `json:"id"`
	JobID           string    `json:"jobId"`
	Date            time.Time `json:"date"`
	StartTime       string    `json:"startTime"`
	EndTime         string    `json:"endTime"`
	RatePerHour     float64   `json:"ratePerHour"`
	RequiredWorkers int       `json:"requiredWorkers"`
	FilledWorkers   int       `json:"filledWorkers"`
	UrgencyLevel    string    `json:"urgencyLevel"`
	Status          string    `json:"status"`
}

type ClockInResult struct {
	Booking       Booking `json:"booking"`
	EarningsSoFar float64 `json:"earningsSoFar"`
	Message       string  `json:"message"`
}

type ClockOutResult struct {
	Booking       Booking `json:"booking"`
	FinalPayment  float64 `json:"finalPayment"`
	BonusPoints   int     `json:"bonusPoints"`
	TotalEarnings float64 `json:"totalEarnings"`
	Message       string  `json:"message"`
}
