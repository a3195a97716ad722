package matching

import (
	"context"
	"time"
)

// Service orchestrates ranking over fresh store snapshots. It holds no
// mutable state of its own, so concurrent requests need no coordination.
type Service struct {
	store StoreAPI
	now   func() time.Time
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store, now: time.Now}
}

// RankJobsForWorker returns the open jobs the worker is compliant for,
// ordered by match score. The caller's live location is optional; without it
// the distance factor scores zero for every job.
func (s *Service) RankJobsForWorker(ctx context.Context, workerID string, workerLocation *Coordinates) ([]RankedJob, error) {
	worker, err := s.store.GetWorker(ctx, workerID)
	if err != nil {
		return nil, err
	}

	jobs, err := s.store.ListOpenJobs(ctx)
	if err != nil {
		return nil, err
	}

	history, err := s.store.ListWorkerHistory(ctx, workerID)
	if err != nil {
		return nil, err
	}

	if workerLocation == nil {
		workerLocation = worker.Location
	}
	return RankJobs(jobs, *worker, history, workerLocation, s.now().UTC()), nil
}

// RankWorkersForJob returns active workers ordered by the business-facing
// reciprocal score for the given job.
func (s *Service) RankWorkersForJob(ctx context.Context, jobID string) ([]RankedWorker, error) {
	job, err := s.store.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	workers, err := s.store.ListAvailableWorkers(ctx)
	if err != nil {
		return nil, err
	}
	return RankWorkers(workers, *job), nil
}
