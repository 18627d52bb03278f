package workflow

import (
	"time"
)

// Schedule is the proposed scheduling state of a job after a create or
// update operation. The same rules apply on both.
type Schedule struct {
	EngineerID         *int64
	ScheduledDate      *time.Time // date-only legacy field
	ScheduledStartTime *time.Time
	ScheduledEndTime   *time.Time
}

// ValidateSchedule validates the (engineer, schedule window) tuple against
// the given instant. It must run before any persistence write.
//
// Rules:
//   - scheduled_date, when set, must not be earlier than today (date-only
//     comparison).
//   - assigning an engineer requires both start and end time, with the
//     start not before now.
//   - whenever both times are present the end must be strictly after the
//     start.
//   - with no engineer the window fields are optional and unconstrained
//     relative to now, so an unassigned draft may carry no schedule at all.
func ValidateSchedule(s Schedule, now time.Time) error {
	if s.ScheduledDate != nil {
		if truncateToDate(*s.ScheduledDate).Before(truncateToDate(now)) {
			return NewValidationError("scheduled date cannot be in the past")
		}
	}

	if s.EngineerID != nil {
		if s.ScheduledStartTime == nil || s.ScheduledEndTime == nil {
			return NewValidationError("start and end time required when assigning an engineer")
		}
		if s.ScheduledStartTime.Before(now) {
			return NewValidationError("start time cannot be before now")
		}
	}

	if s.ScheduledStartTime != nil && s.ScheduledEndTime != nil {
		if !s.ScheduledEndTime.After(*s.ScheduledStartTime) {
			return NewValidationError("end time must be after start time")
		}
	}

	return nil
}

func truncateToDate(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
