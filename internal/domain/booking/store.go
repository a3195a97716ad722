package booking

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) GetBooking(ctx context.Context, bookingID string) (*Booking, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT id, shift_id, worker_id, business_id, status,
           clock_in_time, clock_out_time,
           clock_in_lat, clock_in_lng, clock_in_accuracy,
           clock_out_lat, clock_out_lng,
           location_verified,
           COALESCE(proof_image_ref, ''),
           total_earnings, bonus_points,
           created_at, updated_at
    FROM bookings
    WHERE id = $1
  `, bookingID)

	var bk Booking
	var inLat, inLng, outLat, outLng *float64
	err := row.Scan(
		&bk.ID, &bk.ShiftID, &bk.WorkerID, &bk.BusinessID, &bk.Status,
		&bk.ClockInTime, &bk.ClockOutTime,
		&inLat, &inLng, &bk.ClockInAccuracy,
		&outLat, &outLng,
		&bk.LocationVerified,
		&bk.ProofImageRef,
		&bk.TotalEarnings, &bk.BonusPoints,
		&bk.CreatedAt, &bk.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, networkError("booking lookup failed", err)
	}
	if inLat != nil && inLng != nil {
		bk.ClockInLocation = &Location{Lat: *inLat, Lng: *inLng}
	}
	if outLat != nil && outLng != nil {
		bk.ClockOutLocation = &Location{Lat: *outLat, Lng: *outLng}
	}
	return &bk, nil
}

func (s *Store) GetShift(ctx context.Context, shiftID string) (*Shift, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT id, job_id, shift_date, start_time, end_time, rate_per_hour,
           required_workers, filled_workers, COALESCE(urgency_level, ''), status
    FROM shifts
    WHERE id = $1
  `, shiftID)

	var shift Shift
	if err := row.Scan(
		&shift.ID, &shift.JobID, &shift.Date, &shift.StartTime, &shift.EndTime,
		&shift.RatePerHour, &shift.RequiredWorkers, &shift.FilledWorkers,
		&shift.UrgencyLevel, &shift.Status,
	); err != nil {
		return nil, err
	}
	return &shift, nil
}

// ApplyClockIn writes the clocked_in transition as a single conditional
// update. The status guard makes check-then-write atomic: of two racing
// requests only one sees rows affected.
func (s *Store) ApplyClockIn(ctx context.Context, bookingID string, at time.Time, loc Location, accuracy float64, proofImageRef string, earnings float64) (bool, error) {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE bookings
    SET status = $1,
        clock_in_time = $2,
        clock_in_lat = $3,
        clock_in_lng = $4,
        clock_in_accuracy = $5,
        proof_image_ref = $6,
        total_earnings = $7,
        updated_at = now()
    WHERE id = $8 AND status = $9
  `, StatusClockedIn, at, loc.Lat, loc.Lng, accuracy, nullIfEmpty(proofImageRef), earnings, bookingID, StatusConfirmed)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

// ApplyClockOut completes the booking, guarded on an existing clock-in and
// the absence of a prior clock-out.
func (s *Store) ApplyClockOut(ctx context.Context, bookingID string, at time.Time, loc Location, verified bool, totalEarnings float64, bonusPoints int) (bool, error) {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE bookings
    SET status = $1,
        clock_out_time = $2,
        clock_out_lat = $3,
        clock_out_lng = $4,
        location_verified = $5,
        total_earnings = $6,
        bonus_points = $7,
        updated_at = now()
    WHERE id = $8 AND clock_in_time IS NOT NULL AND clock_out_time IS NULL
  `, StatusCompleted, at, loc.Lat, loc.Lng, verified, totalEarnings, bonusPoints, bookingID)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (s *Store) ReceiptData(ctx context.Context, bookingID string) (ReceiptData, error) {
	var data ReceiptData
	err := s.DB.QueryRow(ctx, `
    SELECT b.id, w.full_name, j.title, s.shift_date, s.start_time, s.end_time,
           s.rate_per_hour, b.total_earnings, b.bonus_points, b.location_verified, b.status
    FROM bookings b
    JOIN shifts s ON b.shift_id = s.id
    JOIN jobs j ON s.job_id = j.id
    JOIN workers w ON b.worker_id = w.id
    WHERE b.id = $1
  `, bookingID).Scan(
		&data.BookingID, &data.WorkerName, &data.JobTitle, &data.ShiftDate,
		&data.StartTime, &data.EndTime, &data.RatePerHour, &data.TotalEarnings,
		&data.BonusPoints, &data.LocationVerified, &data.Status,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return ReceiptData{}, ErrBookingNotFound
	}
	if err != nil {
		return ReceiptData{}, err
	}
	return data, nil
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
