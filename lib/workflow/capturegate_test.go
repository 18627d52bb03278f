package workflow

import (
	"testing"
	"time"

	"ventnav/lib/models"

	"github.com/stretchr/testify/assert"
)

func stringPtr(v string) *string {
	return &v
}

func scheduledJob(engineerID int64, start time.Time) *models.Job {
	end := start.Add(2 * time.Hour)
	return &models.Job{
		ID:                 1,
		Status:             models.JobStatusAssigned,
		EngineerID:         &engineerID,
		ScheduledStartTime: &start,
		ScheduledEndTime:   &end,
	}
}

func Test_CaptureWindowStart_PrefersStartTime(t *testing.T) {
	//Arrange
	start := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	date := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)
	job := &models.Job{ScheduledStartTime: &start, ScheduledDate: &date}

	//Act
	window := CaptureWindowStart(job)

	//Assert
	assert.Equal(t, start, *window)
}

func Test_CaptureWindowStart_FallsBackToDateMidnight(t *testing.T) {
	//Arrange
	date := time.Date(2026, 3, 11, 14, 30, 0, 0, time.UTC)
	job := &models.Job{ScheduledDate: &date}

	//Act
	window := CaptureWindowStart(job)

	//Assert
	assert.Equal(t, time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), *window)
}

func Test_CaptureWindowStart_NoSchedule(t *testing.T) {
	assert.Nil(t, CaptureWindowStart(&models.Job{}))
}

func Test_ValidateCapture_ApprovedJobImmutable(t *testing.T) {
	//Arrange
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	job := scheduledJob(7, now.Add(-time.Hour))
	job.Status = models.JobStatusApproved

	//Act
	err := ValidateCapture(job, &models.WorkCapture{}, models.CaptureSidePre, 7, now)

	//Assert
	assert.EqualError(t, err, "approved jobs cannot be modified")
	assert.IsType(t, &ConflictError{}, err)
}

func Test_ValidateCapture_NoWindow(t *testing.T) {
	//Arrange
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	engineerID := int64(7)
	job := &models.Job{Status: models.JobStatusAssigned, EngineerID: &engineerID}

	//Act
	err := ValidateCapture(job, &models.WorkCapture{}, models.CaptureSidePre, 7, now)

	//Assert
	assert.EqualError(t, err, "job has no scheduled capture window")
	assert.IsType(t, &ValidationError{}, err)
}

func Test_ValidateCapture_WindowNotOpen(t *testing.T) {
	//Arrange
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	job := scheduledJob(7, now.Add(time.Hour))

	//Act
	err := ValidateCapture(job, &models.WorkCapture{}, models.CaptureSidePre, 7, now)

	//Assert
	assert.EqualError(t, err, "capture window has not opened yet")
}

func Test_ValidateCapture_PostBeforePre(t *testing.T) {
	//Arrange
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	job := scheduledJob(7, now.Add(-time.Hour))

	//Act
	err := ValidateCapture(job, &models.WorkCapture{}, models.CaptureSidePost, 7, now)

	//Assert
	assert.EqualError(t, err, "pre image required before post")
}

func Test_ValidateCapture_WrongEngineer(t *testing.T) {
	//Arrange
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	job := scheduledJob(7, now.Add(-time.Hour))

	//Act
	err := ValidateCapture(job, &models.WorkCapture{}, models.CaptureSidePre, 8, now)

	//Assert
	assert.EqualError(t, err, "only the assigned engineer can capture images")
	assert.IsType(t, &AuthorizationError{}, err)
}

func Test_ValidateCapture_PostAfterPre(t *testing.T) {
	//Arrange
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	job := scheduledJob(7, now.Add(-time.Hour))
	capture := &models.WorkCapture{PreImageURL: stringPtr("jobs/1/areas/2/pre/a.jpg")}

	//Act
	err := ValidateCapture(job, capture, models.CaptureSidePost, 7, now)

	//Assert
	assert.NoError(t, err)
}

func Test_StatusAfterCapture(t *testing.T) {
	assert.Equal(t, models.JobStatusInProgress, StatusAfterCapture(models.JobStatusAssigned))
	assert.Equal(t, models.JobStatusInProgress, StatusAfterCapture(models.JobStatusInProgress))
	assert.Equal(t, models.JobStatusRejected, StatusAfterCapture(models.JobStatusRejected))
}

func Test_CompletionPercentage_Empty(t *testing.T) {
	assert.Equal(t, 0, CompletionPercentage(nil))
	assert.Equal(t, 0, CompletionPercentage([]models.WorkCapture{}))
}

func Test_CompletionPercentage_TwoOfThree(t *testing.T) {
	//Arrange
	captures := []models.WorkCapture{
		{PostImageURL: stringPtr("a")},
		{PostImageURL: stringPtr("b")},
		{},
	}

	//Act
	pct := CompletionPercentage(captures)

	//Assert
	assert.Equal(t, 67, pct)
}

func Test_CompletionPercentage_AllDone(t *testing.T) {
	//Arrange
	captures := []models.WorkCapture{
		{PostImageURL: stringPtr("a")},
		{PostImageURL: stringPtr("b")},
	}

	//Act + Assert
	assert.Equal(t, 100, CompletionPercentage(captures))
}

func Test_IsCompleteForReview(t *testing.T) {
	//Arrange
	complete := []models.WorkCapture{
		{PreImageURL: stringPtr("a"), PostImageURL: stringPtr("b")},
	}
	postOnly := []models.WorkCapture{
		{PostImageURL: stringPtr("b")},
	}

	//Assert
	assert.False(t, IsCompleteForReview(nil))
	assert.True(t, IsCompleteForReview(complete))
	assert.False(t, IsCompleteForReview(postOnly))
}

// Walks a job through the full engineer day: first pre capture starts the
// job, post captures complete areas, completion climbs, and submission only
// opens once every area holds both images.
func Test_CaptureFlow_EndToEnd(t *testing.T) {
	//Arrange
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	job := scheduledJob(7, now.Add(-time.Hour))
	captures := []models.WorkCapture{
		{ID: 1, JobID: 1},
		{ID: 2, JobID: 1},
	}

	//Act + Assert
	assert.NoError(t, ValidateCapture(job, &captures[0], models.CaptureSidePre, 7, now))
	captures[0].PreImageURL = stringPtr("jobs/1/areas/1/pre/a.jpg")
	job.Status = StatusAfterCapture(job.Status)
	assert.Equal(t, models.JobStatusInProgress, job.Status)

	assert.NoError(t, ValidateCapture(job, &captures[0], models.CaptureSidePost, 7, now))
	captures[0].PostImageURL = stringPtr("jobs/1/areas/1/post/a.jpg")
	assert.Equal(t, 50, CompletionPercentage(captures))

	// Second area still missing its post image
	assert.EqualError(t, ValidateSubmit(job.Status, IsCompleteForReview(captures)),
		"all areas must have pre and post images")

	captures[1].PreImageURL = stringPtr("jobs/1/areas/2/pre/b.jpg")
	captures[1].PostImageURL = stringPtr("jobs/1/areas/2/post/b.jpg")
	assert.Equal(t, 100, CompletionPercentage(captures))
	assert.NoError(t, ValidateSubmit(job.Status, IsCompleteForReview(captures)))

	assert.NoError(t, ValidateReview(models.JobStatusSubmitted))
}
