package workflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func int64Ptr(v int64) *int64 {
	return &v
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func Test_ValidateSchedule_EmptyScheduleWithoutEngineer(t *testing.T) {
	//Arrange
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	//Act
	err := ValidateSchedule(Schedule{}, now)

	//Assert
	assert.NoError(t, err)
}

func Test_ValidateSchedule_PastDate(t *testing.T) {
	//Arrange
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)

	//Act
	err := ValidateSchedule(Schedule{ScheduledDate: timePtr(yesterday)}, now)

	//Assert
	assert.EqualError(t, err, "scheduled date cannot be in the past")
	assert.IsType(t, &ValidationError{}, err)
}

func Test_ValidateSchedule_TodayDateAllowed(t *testing.T) {
	//Arrange
	// Later on the same day: date-only comparison must not reject today
	now := time.Date(2026, 3, 10, 23, 30, 0, 0, time.UTC)
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	//Act
	err := ValidateSchedule(Schedule{ScheduledDate: timePtr(today)}, now)

	//Assert
	assert.NoError(t, err)
}

func Test_ValidateSchedule_EngineerWithoutWindow(t *testing.T) {
	//Arrange
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	//Act
	err := ValidateSchedule(Schedule{EngineerID: int64Ptr(7)}, now)

	//Assert
	assert.EqualError(t, err, "start and end time required when assigning an engineer")
}

func Test_ValidateSchedule_EngineerWithStartOnly(t *testing.T) {
	//Arrange
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	s := Schedule{
		EngineerID:         int64Ptr(7),
		ScheduledStartTime: timePtr(now.Add(time.Hour)),
	}

	//Act
	err := ValidateSchedule(s, now)

	//Assert
	assert.EqualError(t, err, "start and end time required when assigning an engineer")
}

func Test_ValidateSchedule_EngineerStartInPast(t *testing.T) {
	//Arrange
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	s := Schedule{
		EngineerID:         int64Ptr(7),
		ScheduledStartTime: timePtr(now.Add(-time.Minute)),
		ScheduledEndTime:   timePtr(now.Add(time.Hour)),
	}

	//Act
	err := ValidateSchedule(s, now)

	//Assert
	assert.EqualError(t, err, "start time cannot be before now")
}

func Test_ValidateSchedule_EndNotAfterStart(t *testing.T) {
	//Arrange
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	start := now.Add(2 * time.Hour)
	s := Schedule{
		ScheduledStartTime: timePtr(start),
		ScheduledEndTime:   timePtr(start),
	}

	//Act
	err := ValidateSchedule(s, now)

	//Assert
	assert.EqualError(t, err, "end time must be after start time")
}

func Test_ValidateSchedule_EndAfterStartWithoutEngineer(t *testing.T) {
	//Arrange
	// Window times without an engineer are allowed even in the past
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	start := now.Add(-3 * time.Hour)
	s := Schedule{
		ScheduledStartTime: timePtr(start),
		ScheduledEndTime:   timePtr(start.Add(time.Hour)),
	}

	//Act
	err := ValidateSchedule(s, now)

	//Assert
	assert.NoError(t, err)
}

func Test_ValidateSchedule_ValidAssignment(t *testing.T) {
	//Arrange
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	s := Schedule{
		EngineerID:         int64Ptr(7),
		ScheduledDate:      timePtr(now.AddDate(0, 0, 1)),
		ScheduledStartTime: timePtr(now.Add(24 * time.Hour)),
		ScheduledEndTime:   timePtr(now.Add(26 * time.Hour)),
	}

	//Act
	err := ValidateSchedule(s, now)

	//Assert
	assert.NoError(t, err)
}
