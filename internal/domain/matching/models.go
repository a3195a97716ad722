package matching

import "time"

const (
	JobStatusOpen   = "open"
	JobStatusFilled = "filled"
	JobStatusClosed = "closed"
)

const (
	ApplicationStatusPending    = "pending"
	ApplicationStatusAccepted   = "accepted"
	ApplicationStatusInProgress = "in_progress"
	ApplicationStatusCompleted  = "completed"
	ApplicationStatusCancelled  = "cancelled"
)

const (
	WageTypePerShift = "per_shift"
	WageTypePerHour  = "per_hour"
)

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Worker struct {
	ID          string       `json:"id"`
	FullName    string       `json:"fullName"`
	Skills      []string     `json:"skills"`
	Rating      float64      `json:"rating"`
	Reliability float64      `json:"reliability"`
	Location    *Coordinates `json:"location,omitempty"`
	HomeAddress string       `json:"homeAddress"`
	Status      string       `json:"status"`
	CreatedAt   time.Time    `json:"createdAt"`
}

type Job struct {
	ID              string       `json:"id"`
	BusinessID      string       `json:"businessId"`
	Title           string       `json:"title"`
	Category        string       `json:"category"`
	WageAmount      float64      `json:"wageAmount"`
	WageType        string       `json:"wageType"`
	RequiredWorkers int          `json:"requiredWorkers"`
	IsUrgent        bool         `json:"isUrgent"`
	Location        string       `json:"location"`
	Coordinates     *Coordinates `json:"coordinates,omitempty"`
	Status          string       `json:"status"`
	CreatedAt       time.Time    `json:"createdAt"`
}

// WorkHistoryEntry is one row of the append-only engagement log consumed by
// the compliance filter. StartedAt is nil when the engagement never started
// or the source record carried an unparseable timestamp.
type WorkHistoryEntry struct {
	ID          string     `json:"id"`
	JobID       string     `json:"jobId"`
	BusinessID  string     `json:"businessId"`
	WorkerID    string     `json:"workerId"`
	Status      string     `json:"status"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

type RankedJob struct {
	Job       Job        `json:"job"`
	Score     MatchScore `json:"score"`
	Compliant bool       `json:"compliant"`
}

type RankedWorker struct {
	Worker Worker      `json:"worker"`
	Score  WorkerScore `json:"score"`
}
