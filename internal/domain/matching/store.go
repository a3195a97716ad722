package matching

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) GetWorker(ctx context.Context, workerID string) (*Worker, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT id, full_name,
           COALESCE(skills, '{}'),
           rating, reliability,
           lat, lng,
           COALESCE(home_address, ''),
           status, created_at
    FROM workers
    WHERE id = $1
  `, workerID)

	var worker Worker
	var lat, lng *float64
	err := row.Scan(
		&worker.ID, &worker.FullName, &worker.Skills, &worker.Rating, &worker.Reliability,
		&lat, &lng, &worker.HomeAddress, &worker.Status, &worker.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrWorkerNotFound
	}
	if err != nil {
		return nil, err
	}
	if lat != nil && lng != nil {
		worker.Location = &Coordinates{Lat: *lat, Lng: *lng}
	}
	return &worker, nil
}

func (s *Store) GetJob(ctx context.Context, jobID string) (*Job, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT id, business_id, title, COALESCE(category, ''),
           wage_amount, wage_type, required_workers, is_urgent,
           COALESCE(location, ''), lat, lng, status, created_at
    FROM jobs
    WHERE id = $1
  `, jobID)

	job, err := scanJob(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, err
	}
	return job, nil
}

func (s *Store) ListOpenJobs(ctx context.Context) ([]Job, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, business_id, title, COALESCE(category, ''),
           wage_amount, wage_type, required_workers, is_urgent,
           COALESCE(location, ''), lat, lng, status, created_at
    FROM jobs
    WHERE status = $1
    ORDER BY created_at DESC
  `, JobStatusOpen)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *job)
	}
	return out, rows.Err()
}

func (s *Store) ListWorkerHistory(ctx context.Context, workerID string) ([]WorkHistoryEntry, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT a.id, a.job_id, a.business_id, a.worker_id, a.status, a.started_at, a.completed_at
    FROM job_applications a
    WHERE a.worker_id = $1
    ORDER BY a.started_at DESC NULLS LAST
  `, workerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []WorkHistoryEntry
	for rows.Next() {
		var entry WorkHistoryEntry
		if err := rows.Scan(
			&entry.ID, &entry.JobID, &entry.BusinessID, &entry.WorkerID,
			&entry.Status, &entry.StartedAt, &entry.CompletedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

func (s *Store) ListAvailableWorkers(ctx context.Context) ([]Worker, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, full_name,
           COALESCE(skills, '{}'),
           rating, reliability,
           lat, lng,
           COALESCE(home_address, ''),
           status, created_at
    FROM workers
    WHERE status = 'active'
    ORDER BY created_at
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Worker
	for rows.Next() {
		var worker Worker
		var lat, lng *float64
		if err := rows.Scan(
			&worker.ID, &worker.FullName, &worker.Skills, &worker.Rating, &worker.Reliability,
			&lat, &lng, &worker.HomeAddress, &worker.Status, &worker.CreatedAt,
		); err != nil {
			return nil, err
		}
		if lat != nil && lng != nil {
			worker.Location = &Coordinates{Lat: *lat, Lng: *lng}
		}
		out = append(out, worker)
	}
	return out, rows.Err()
}

func scanJob(row pgx.Row) (*Job, error) {
	var job Job
	var lat, lng *float64
	if err := row.Scan(
		&job.ID, &job.BusinessID, &job.Title, &job.Category,
		&job.WageAmount, &job.WageType, &job.RequiredWorkers, &job.IsUrgent,
		&job.Location, &lat, &lng, &job.Status, &job.CreatedAt,
	); err != nil {
		return nil, err
	}
	if lat != nil && lng != nil {
		job.Coordinates = &Coordinates{Lat: *lat, Lng: *lng}
	}
	return &job, nil
}
