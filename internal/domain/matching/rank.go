package matching

import (
	"sort"
	"time"
)

// RankJobs filters jobs through the compliance rule, scores the survivors
// for the worker and returns them ordered by total score, highest first.
// Non-compliant jobs are dropped, never surfaced. Ties keep input order.
func RankJobs(jobs []Job, worker Worker, history []WorkHistoryEntry, workerLocation *Coordinates, now time.Time) []RankedJob {
	ranked := make([]RankedJob, 0, len(jobs))
	for _, job := range jobs {
		if !IsCompliant(job, history, now) {
			continue
		}
		ranked = append(ranked, RankedJob{
			Job:       job,
			Score:     ScoreJob(job, worker, workerLocation),
			Compliant: true,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score.Total > ranked[j].Score.Total
	})
	return ranked
}

// RankWorkers scores every candidate worker for the job and returns them
// ordered by total score, highest first. Ties keep input order.
func RankWorkers(workers []Worker, job Job) []RankedWorker {
	ranked := make([]RankedWorker, 0, len(workers))
	for _, worker := range workers {
		ranked = append(ranked, RankedWorker{
			Worker: worker,
			Score:  ScoreWorker(worker, job),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score.Total > ranked[j].Score.Total
	})
	return ranked
}
