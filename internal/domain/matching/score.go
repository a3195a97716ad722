package matching

import "gigmatch/internal/platform/geo"

// Job-score caps (worker-facing ranking, totals out of 100).
const (
	jobDistanceCap    = 30.0
	jobSkillCap       = 25.0
	jobRatingCap      = 20.0
	jobReliabilityCap = 15.0
	jobUrgencyCap     = 10.0
)

// Worker-score caps (business-facing ranking, totals out of 80).
const (
	workerDistanceCap     = 20.0
	workerSkillCap        = 25.0
	workerRatingCap       = 15.0
	workerReliabilityCap  = 12.0
	workerAvailabilityCap = 8.0
)

type ScoreBreakdown struct {
	Distance    float64 `json:"distance"`
	Skill       float64 `json:"skill"`
	Rating      float64 `json:"rating"`
	Reliability float64 `json:"reliability"`
	Urgency     float64 `json:"urgency"`
}

type MatchScore struct {
	Total     float64        `json:"total"`
	Breakdown ScoreBreakdown `json:"breakdown"`
}

type WorkerScoreBreakdown struct {
	Distance     float64 `json:"distance"`
	Skill        float64 `json:"skill"`
	Rating       float64 `json:"rating"`
	Reliability  float64 `json:"reliability"`
	Availability float64 `json:"availability"`
}

type WorkerScore struct {
	Total     float64              `json:"total"`
	Breakdown WorkerScoreBreakdown `json:"breakdown"`
}

// ScoreJob computes the worker-facing match score for a job. workerLocation
// may be nil, in which case the distance component scores zero.
func ScoreJob(job Job, worker Worker, workerLocation *Coordinates) MatchScore {
	breakdown := ScoreBreakdown{
		Distance:    jobDistanceScore(job, workerLocation),
		Skill:       skillScore(worker, job, jobSkillCap),
		Rating:      ratingScore(worker, jobRatingCap),
		Reliability: reliabilityScore(worker, jobReliabilityCap),
	}
	if job.IsUrgent {
		breakdown.Urgency = jobUrgencyCap
	}

	total := breakdown.Distance + breakdown.Skill + breakdown.Rating +
		breakdown.Reliability + breakdown.Urgency
	return MatchScore{Total: total, Breakdown: breakdown}
}

// ScoreWorker computes the business-facing reciprocal score for a worker
// against a job. Distance uses the worker's current location when known.
func ScoreWorker(worker Worker, job Job) WorkerScore {
	breakdown := WorkerScoreBreakdown{
		Distance:     workerDistanceScore(worker, job),
		Skill:        skillScore(worker, job, workerSkillCap),
		Rating:       ratingScore(worker, workerRatingCap),
		Reliability:  reliabilityScore(worker, workerReliabilityCap),
		Availability: availabilityScore(worker),
	}

	total := breakdown.Distance + breakdown.Skill + breakdown.Rating +
		breakdown.Reliability + breakdown.Availability
	return WorkerScore{Total: total, Breakdown: breakdown}
}

func jobDistanceScore(job Job, workerLocation *Coordinates) float64 {
	if workerLocation == nil || job.Coordinates == nil {
		return 0
	}
	km := geo.DistanceKm(workerLocation.Lat, workerLocation.Lng, job.Coordinates.Lat, job.Coordinates.Lng)
	switch {
	case km < 2:
		return 30
	case km < 5:
		return 25
	case km < 10:
		return 15
	case km < 20:
		return 5
	case km < 30:
		return 2
	default:
		return 0
	}
}

func workerDistanceScore(worker Worker, job Job) float64 {
	if worker.Location == nil || job.Coordinates == nil {
		return 0
	}
	km := geo.DistanceKm(worker.Location.Lat, worker.Location.Lng, job.Coordinates.Lat, job.Coordinates.Lng)
	switch {
	case km < 2:
		return 20
	case km < 5:
		return 16
	case km < 10:
		return 10
	case km < 20:
		return 4
	case km < 30:
		return 1
	default:
		return 0
	}
}

// The remaining components award full credit regardless of the worker's
// profile. The source system shipped with these as fixed constants; keeping
// the behavior but routing it through per-factor funcs so a real
// skill-overlap or rating curve can slot in without touching the callers.

func skillScore(_ Worker, _ Job, cap float64) float64 {
	return cap
}

func ratingScore(_ Worker, cap float64) float64 {
	return cap
}

func reliabilityScore(_ Worker, cap float64) float64 {
	return cap
}

func availabilityScore(_ Worker) float64 {
	return workerAvailabilityCap
}
