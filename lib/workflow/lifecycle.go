package workflow

import (
	"strings"

	"ventnav/lib/models"
)

// InitialStatus returns the status of a newly created job: assigned when an
// engineer is attached (the schedule must already have passed
// ValidateSchedule), draft otherwise.
func InitialStatus(engineerID *int64) string {
	if engineerID != nil {
		return models.JobStatusAssigned
	}
	return models.JobStatusDraft
}

// IsTerminal reports whether a status ends the review step
func IsTerminal(status string) bool {
	return status == models.JobStatusApproved || status == models.JobStatusRejected
}

// ValidateStatusChange validates an explicit status set through the generic
// update endpoint. hasEngineer is whether the job holds an engineer after
// the update; capturesComplete is whether every capture of the job has
// both images; reviewerRole is whether the caller may manage/review jobs.
//
// approved and rejected are reachable only through the review operations;
// rejected may be re-opened to assigned by a reviewer role, which is the
// single way out of a terminal status.
func ValidateStatusChange(current, next string, hasEngineer, capturesComplete, reviewerRole bool) error {
	if current == next {
		return nil
	}

	switch next {
	case models.JobStatusDraft:
		if current != models.JobStatusAssigned {
			return NewConflictError("job cannot revert to draft from " + current)
		}
	case models.JobStatusAssigned:
		switch current {
		case models.JobStatusDraft, models.JobStatusInProgress:
		case models.JobStatusRejected:
			if !reviewerRole {
				return NewAuthorizationError("only a reviewer can re-open a rejected job")
			}
		default:
			return NewConflictError("job cannot be assigned from " + current)
		}
		// schedule validity is checked by ValidateSchedule once the
		// engineer is known to be present
		if !hasEngineer {
			return NewValidationError("engineer required to assign a job")
		}
	case models.JobStatusInProgress:
		if current != models.JobStatusAssigned {
			return NewConflictError("job cannot start from " + current)
		}
	case models.JobStatusSubmitted:
		return ValidateSubmit(current, capturesComplete)
	case models.JobStatusApproved, models.JobStatusRejected:
		return NewConflictError("review outcomes must go through the approve and reject operations")
	default:
		return NewValidationError("unknown job status: " + next)
	}

	return nil
}

// ValidateSubmit guards the assigned/in_progress -> submitted transition.
// Every capture of the job must hold both a pre and a post image.
func ValidateSubmit(current string, capturesComplete bool) error {
	switch current {
	case models.JobStatusAssigned, models.JobStatusInProgress:
	default:
		return NewConflictError("job cannot be submitted from " + current)
	}

	if !capturesComplete {
		return NewValidationError("all areas must have pre and post images")
	}

	return nil
}

// ValidateReview guards the submitted -> approved/rejected transitions.
// Both fail on any other current status rather than silently no-opping,
// so retries must check status first.
func ValidateReview(current string) error {
	if current != models.JobStatusSubmitted {
		return NewConflictError("job not awaiting review")
	}
	return nil
}

// ValidateRejectReason checks the mandatory rejection reason and returns it
// trimmed.
func ValidateRejectReason(reason *string) (string, error) {
	if reason == nil {
		return "", NewValidationError("rejection reason required")
	}
	trimmed := strings.TrimSpace(*reason)
	if trimmed == "" {
		return "", NewValidationError("rejection reason required")
	}
	return trimmed, nil
}

// StatusAfterEngineerCleared returns the status a job takes when its
// engineer reference is cleared (explicitly, or because the engineer was
// deactivated). Unstarted and in-flight work reverts to draft; submitted
// and reviewed jobs keep their status so review history survives staffing
// changes.
func StatusAfterEngineerCleared(current string) string {
	switch current {
	case models.JobStatusAssigned, models.JobStatusInProgress:
		return models.JobStatusDraft
	default:
		return current
	}
}
