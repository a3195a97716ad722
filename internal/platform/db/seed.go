package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"gigmatch/internal/domain/auth"
)

// Seed inserts a demo business, worker, jobs and a confirmed booking for
// today's shift so the API is exercisable on a fresh database. Idempotent:
// reruns find the existing rows by their natural keys.
func Seed(ctx context.Context, pool *pgxpool.Pool) error {
	businessID, err := ensureBusiness(ctx, pool, "Harbor Cafe", 6.9271, 79.8612)
	if err != nil {
		return err
	}

	workerID, err := ensureWorker(ctx, pool, "Demo Worker", []string{"barista", "waiter"}, 4.6, 0.92)
	if err != nil {
		return err
	}

	if err := ensureUser(ctx, pool, "business@gigmatch.local", "ChangeMe123!", auth.RoleBusiness, businessID); err != nil {
		return err
	}
	if err := ensureUser(ctx, pool, "worker@gigmatch.local", "ChangeMe123!", auth.RoleWorker, workerID); err != nil {
		return err
	}

	jobID, err := ensureJob(ctx, pool, businessID, "Morning barista", "hospitality", 20000, true, 6.9271, 79.8612)
	if err != nil {
		return err
	}
	if _, err := ensureJob(ctx, pool, businessID, "Evening waiter", "hospitality", 18000, false, 6.9350, 79.8500); err != nil {
		return err
	}

	shiftID, err := ensureShift(ctx, pool, jobID, time.Now().UTC().Truncate(24*time.Hour), "09:00", "17:00", 20000)
	if err != nil {
		return err
	}

	return ensureBooking(ctx, pool, shiftID, workerID, businessID)
}

func ensureBusiness(ctx context.Context, pool *pgxpool.Pool, name string, lat, lng float64) (string, error) {
	var id string
	err := pool.QueryRow(ctx, `SELECT id FROM businesses WHERE name = $1`, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	err = pool.QueryRow(ctx, `
    INSERT INTO businesses (name, lat, lng)
    VALUES ($1, $2, $3)
    RETURNING id
  `, name, lat, lng).Scan(&id)
	return id, err
}

func ensureWorker(ctx context.Context, pool *pgxpool.Pool, name string, skills []string, rating, reliability float64) (string, error) {
	var id string
	err := pool.QueryRow(ctx, `SELECT id FROM workers WHERE full_name = $1`, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	err = pool.QueryRow(ctx, `
    INSERT INTO workers (full_name, skills, rating, reliability, status)
    VALUES ($1, $2, $3, $4, 'active')
    RETURNING id
  `, name, skills, rating, reliability).Scan(&id)
	return id, err
}

func ensureUser(ctx context.Context, pool *pgxpool.Pool, email, password, role, subjectID string) error {
	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(1) FROM users WHERE email = $1`, email).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, `
    INSERT INTO users (email, password_hash, role, subject_id, status)
    VALUES ($1, $2, $3, $4, 'active')
  `, email, hash, role, subjectID)
	return err
}

func ensureJob(ctx context.Context, pool *pgxpool.Pool, businessID, title, category string, wage float64, urgent bool, lat, lng float64) (string, error) {
	var id string
	err := pool.QueryRow(ctx, `SELECT id FROM jobs WHERE business_id = $1 AND title = $2`, businessID, title).Scan(&id)
	if err == nil {
		return id, nil
	}
	err = pool.QueryRow(ctx, `
    INSERT INTO jobs (business_id, title, category, wage_amount, wage_type, required_workers, is_urgent, lat, lng, status)
    VALUES ($1, $2, $3, $4, 'per_hour', 1, $5, $6, $7, 'open')
    RETURNING id
  `, businessID, title, category, wage, urgent, lat, lng).Scan(&id)
	return id, err
}

func ensureShift(ctx context.Context, pool *pgxpool.Pool, jobID string, date time.Time, start, end string, rate float64) (string, error) {
	var id string
	err := pool.QueryRow(ctx, `SELECT id FROM shifts WHERE job_id = $1 AND shift_date = $2`, jobID, date).Scan(&id)
	if err == nil {
		return id, nil
	}
	err = pool.QueryRow(ctx, `
    INSERT INTO shifts (job_id, shift_date, start_time, end_time, rate_per_hour, required_workers, filled_workers, status)
    VALUES ($1, $2, $3, $4, $5, 1, 1, 'scheduled')
    RETURNING id
  `, jobID, date, start, end, rate).Scan(&id)
	return id, err
}

func ensureBooking(ctx context.Context, pool *pgxpool.Pool, shiftID, workerID, businessID string) error {
	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(1) FROM bookings WHERE shift_id = $1 AND worker_id = $2`, shiftID, workerID).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	_, err := pool.Exec(ctx, `
    INSERT INTO bookings (shift_id, worker_id, business_id, status)
    VALUES ($1, $2, $3, 'confirmed')
  `, shiftID, workerID, businessID)
	return err
}
