package workflow

import (
	"math"
	"time"

	"ventnav/lib/models"
)

// CaptureWindowStart computes the instant from which capture is allowed:
// the scheduled start time when present, else the legacy scheduled date at
// local midnight, else nil meaning no window exists and capture is
// forbidden.
func CaptureWindowStart(job *models.Job) *time.Time {
	if job.ScheduledStartTime != nil {
		return job.ScheduledStartTime
	}
	if job.ScheduledDate != nil {
		midnight := truncateToDate(*job.ScheduledDate)
		return &midnight
	}
	return nil
}

// ValidateCapture decides whether an image write for (job, capture, side)
// is permitted at the given instant for the given actor. Rules run in
// order: approved jobs are immutable, the capture window must be open,
// post requires pre, and only the assigned engineer may capture.
func ValidateCapture(job *models.Job, capture *models.WorkCapture, side string, actorID int64, now time.Time) error {
	if job.Status == models.JobStatusApproved {
		return NewConflictError("approved jobs cannot be modified")
	}

	windowStart := CaptureWindowStart(job)
	if windowStart == nil {
		return NewValidationError("job has no scheduled capture window")
	}
	if now.Before(*windowStart) {
		return NewValidationError("capture window has not opened yet")
	}

	if side == models.CaptureSidePost && !capture.HasPreImage() {
		return NewValidationError("pre image required before post")
	}

	if job.EngineerID == nil || *job.EngineerID != actorID {
		return NewAuthorizationError("only the assigned engineer can capture images")
	}

	return nil
}

// StatusAfterCapture advances an assigned job to in_progress on its first
// capture write; any other status is left alone.
func StatusAfterCapture(current string) string {
	if current == models.JobStatusAssigned {
		return models.JobStatusInProgress
	}
	return current
}

// CompletionPercentage is the fraction of captures holding a post image,
// as a rounded percentage. A job with no captures reports 0.
func CompletionPercentage(captures []models.WorkCapture) int {
	if len(captures) == 0 {
		return 0
	}

	done := 0
	for i := range captures {
		if captures[i].HasPostImage() {
			done++
		}
	}

	return int(math.Round(100 * float64(done) / float64(len(captures))))
}

// IsCompleteForReview reports whether every capture has both pre and post
// images. Used as the submission guard.
func IsCompleteForReview(captures []models.WorkCapture) bool {
	if len(captures) == 0 {
		return false
	}
	for i := range captures {
		if !captures[i].HasPreImage() || !captures[i].HasPostImage() {
			return false
		}
	}
	return true
}
