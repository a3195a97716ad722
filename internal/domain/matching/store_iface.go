package matching

import "context"

type StoreAPI interface {
	GetWorker(ctx context.Context, workerID string) (*Worker, error)
	GetJob(ctx context.Context, jobID string) (*Job, error)
	ListOpenJobs(ctx context.Context) ([]Job, error)
	ListWorkerHistory(ctx context.Context, workerID string) ([]WorkHistoryEntry, error)
	ListAvailableWorkers(ctx context.Context) ([]Worker, error)
}
