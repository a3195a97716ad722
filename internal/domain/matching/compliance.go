package matching

import "time"

const (
	// complianceWindow is the trailing window inspected by the 21 Days Rule.
	complianceWindow = 30 * 24 * time.Hour
	// maxEngagementsPerBusiness is the highest engagement count within the
	// window that still leaves a worker matchable for the same business.
	maxEngagementsPerBusiness = 20
)

// IsCompliant reports whether a worker may be matched to job under the
// 21 Days Rule: at most 20 completed or in-progress engagements with the
// job's business started strictly inside the trailing 30-day window.
// Entries without a start timestamp do not contribute to the count.
func IsCompliant(job Job, history []WorkHistoryEntry, now time.Time) bool {
	cutoff := now.Add(-complianceWindow)

	count := 0
	for _, entry := range history {
		if entry.BusinessID != job.BusinessID {
			continue
		}
		if entry.Status != ApplicationStatusCompleted && entry.Status != ApplicationStatusInProgress {
			continue
		}
		if entry.StartedAt == nil || entry.StartedAt.IsZero() {
			continue
		}
		// Strictly after the cutoff: an engagement exactly 30 days old is
		// outside the window.
		if entry.StartedAt.After(cutoff) {
			count++
		}
	}
	return count <= maxEngagementsPerBusiness
}
